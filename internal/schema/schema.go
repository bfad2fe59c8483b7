// Package schema defines the immutable, queryable model of an event
// provider's self-describing manifest: the provider identity, its events,
// and the sub-vocabulary (levels, opcodes, keywords, tasks, payload field
// names) each event references. Instances are created by the manifest
// package and are never mutated afterwards.
package schema

import "errors"

// ErrEventsAlreadyAssigned is returned when a provider's event sequence is assigned twice.
var ErrEventsAlreadyAssigned = errors.New("provider event sequence already assigned")

// ProviderSchema describes one event provider: a globally unique identifier,
// a human-readable name, and the ordered sequence of events the provider
// declares. The event sequence preserves manifest document order.
type ProviderSchema struct {
	id     string
	name   string
	events []*EventSchema
	sealed bool
}

// NewProviderSchema creates a provider schema with the given identity.
// The event sequence is assigned separately, exactly once, via AssignEvents.
func NewProviderSchema(id, name string) *ProviderSchema {
	return &ProviderSchema{
		id:   id,
		name: name,
	}
}

// ID returns the provider's globally unique identifier.
func (p *ProviderSchema) ID() string {
	return p.id
}

// Name returns the provider's human-readable name.
func (p *ProviderSchema) Name() string {
	return p.name
}

// Events returns the provider's events in manifest document order.
func (p *ProviderSchema) Events() []*EventSchema {
	events := make([]*EventSchema, len(p.events))
	copy(events, p.events)

	return events
}

// EventCount returns the number of events the provider declares.
func (p *ProviderSchema) EventCount() int {
	return len(p.events)
}

// AssignEvents sets the provider's event sequence and links every event back
// to its owning provider. The assignment must happen exactly once; a second
// call returns ErrEventsAlreadyAssigned and leaves the schema unchanged.
func (p *ProviderSchema) AssignEvents(events []*EventSchema) error {
	if p.sealed {
		return ErrEventsAlreadyAssigned
	}

	p.events = make([]*EventSchema, len(events))
	copy(p.events, events)

	for _, event := range p.events {
		event.provider = p
	}

	p.sealed = true

	return nil
}

// EventConfig carries the attributes resolved for one manifest event entry.
// It exists only to construct EventSchema values; the schema itself stays
// immutable behind accessors.
type EventConfig struct {
	ID       int
	Symbol   string
	Level    Level
	TaskName string
	TaskID   int
	Keywords uint64
	Opcode   Opcode
	Version  int
	Payload  []string
}

// EventSchema describes one event of a provider. The back-reference to the
// owning provider is non-owning and is used by rules for cross-checks only.
type EventSchema struct {
	provider *ProviderSchema
	id       int
	symbol   string
	level    Level
	taskName string
	taskID   int
	keywords uint64
	opcode   Opcode
	version  int
	payload  []string
}

// NewEventSchema creates an event schema from resolved manifest attributes.
func NewEventSchema(cfg EventConfig) *EventSchema {
	payload := make([]string, len(cfg.Payload))
	copy(payload, cfg.Payload)

	return &EventSchema{
		id:       cfg.ID,
		symbol:   cfg.Symbol,
		level:    cfg.Level,
		taskName: cfg.TaskName,
		taskID:   cfg.TaskID,
		keywords: cfg.Keywords,
		opcode:   cfg.Opcode,
		version:  cfg.Version,
		payload:  payload,
	}
}

// Provider returns the owning provider schema, or nil when the event has not
// been assigned to a provider yet.
func (e *EventSchema) Provider() *ProviderSchema {
	return e.provider
}

// ID returns the numeric event identifier. Identifiers are strictly positive;
// manifest entries with non-positive identifiers are filtered during parsing.
func (e *EventSchema) ID() int {
	return e.id
}

// Symbol returns the event's symbolic name.
func (e *EventSchema) Symbol() string {
	return e.symbol
}

// Level returns the event's severity level.
func (e *EventSchema) Level() Level {
	return e.level
}

// TaskName returns the declared task name, or the empty string when the event
// declares no task.
func (e *EventSchema) TaskName() string {
	return e.taskName
}

// TaskID returns the numeric task identifier, or 0 when the event declares no
// task or the declared task does not resolve on the provider.
func (e *EventSchema) TaskID() int {
	return e.taskID
}

// HasTask reports whether the event declares a task name.
func (e *EventSchema) HasTask() bool {
	return e.taskName != ""
}

// Keywords returns the event's keyword bitmask. The mask is 0 when the event
// declares no keywords or none of the declared tokens resolve.
func (e *EventSchema) Keywords() uint64 {
	return e.keywords
}

// Opcode returns the event's opcode.
func (e *EventSchema) Opcode() Opcode {
	return e.opcode
}

// Version returns the event's version number, defaulting to 0.
func (e *EventSchema) Version() int {
	return e.version
}

// Payload returns the event's payload field names in template declaration
// order. The sequence is empty when the event references no template.
func (e *EventSchema) Payload() []string {
	payload := make([]string, len(e.payload))
	copy(payload, e.payload)

	return payload
}
