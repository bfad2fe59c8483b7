package schema

import "fmt"

// Level is the severity level of an event.
type Level int

// Well-known severity levels in manifest order.
const (
	LevelLogAlways Level = iota
	LevelCritical
	LevelError
	LevelWarning
	LevelInformational
	LevelVerbose
)

// levelNames maps defined levels to their display names.
var levelNames = map[Level]string{
	LevelLogAlways:     "LogAlways",
	LevelCritical:      "Critical",
	LevelError:         "Error",
	LevelWarning:       "Warning",
	LevelInformational: "Informational",
	LevelVerbose:       "Verbose",
}

// IsDefined reports whether the level is one of the six well-known severities.
func (l Level) IsDefined() bool {
	_, ok := levelNames[l]

	return ok
}

// String returns the level's display name.
func (l Level) String() string {
	name, ok := levelNames[l]
	if !ok {
		return fmt.Sprintf("level(%d)", int(l))
	}

	return name
}
