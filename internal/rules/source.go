package rules

// EventSource is the opaque handle to an instrumentation provider. The
// analyzer only requires a stable identity, a display name, and the ability
// to produce the provider's manifest on demand; it threads the handle through
// to rules unexamined.
type EventSource interface {
	// ID returns a stable unique identifier for the provider. It keys the
	// schema cache.
	ID() string

	// Name returns the provider's display name for reports.
	Name() string

	// Manifest returns the provider's instrumentation manifest XML.
	Manifest() (string, error)
}

// PayloadIntrospector is an optional EventSource capability. Sources that can
// report the parameter names of the writer behind an event expose it, and
// payload-correspondence rules query for it; sources without it are simply
// not checked against their writers.
type PayloadIntrospector interface {
	// WriterParameters returns the ordered parameter names of the writer for
	// the given event identifier, and whether the writer is known.
	WriterParameters(eventID int) ([]string, bool)
}
