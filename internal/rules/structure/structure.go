// Package structure holds the required structural rules. A provider failing
// any of these is broken at runtime: consumers see wrong events, dropped
// payload fields, or tasks that resolve to nothing.
package structure

import (
	"fmt"

	"github.com/ChilliCream/EventSourceAnalyzer/internal/rules"
	"github.com/ChilliCream/EventSourceAnalyzer/internal/schema"
)

// SetName is the name of the required rule set.
const SetName = "structure"

// Rules returns the structural rules in their canonical order.
func Rules() []rules.Rule {
	return []rules.Rule{
		uniqueEventIDs{},
		resolvedTask{},
		uniquePayloadNames{},
		payloadMatchesWriter{},
	}
}

// NewSet assembles the required rule set.
func NewSet() (*rules.Set, error) {
	return rules.NewSet(SetName, Rules()...)
}

// uniqueEventIDs flags providers that declare the same event identifier more
// than once. Consumers demultiplex on the identifier; a collision makes the
// colliding events indistinguishable on the wire.
type uniqueEventIDs struct{}

func (uniqueEventIDs) ID() string { return "structure/unique-event-ids" }

func (uniqueEventIDs) Description() string {
	return "Event identifiers must be unique within the provider."
}

func (r uniqueEventIDs) CheckProvider(provider *schema.ProviderSchema, _ rules.EventSource) rules.Result {
	seen := make(map[int]int)
	for _, event := range provider.Events() {
		seen[event.ID()]++
	}

	var details []rules.Detail

	for _, event := range provider.Events() {
		if seen[event.ID()] > 1 {
			details = append(details, rules.Detail{
				Key:         fmt.Sprintf("event %d", event.ID()),
				Description: fmt.Sprintf("identifier declared %d times", seen[event.ID()]),
			})

			// Report each colliding identifier once.
			seen[event.ID()] = 0
		}
	}

	if len(details) > 0 {
		return rules.NewError(r, "duplicate event identifiers", details...)
	}

	return rules.NewSuccess(r, "event identifiers are unique")
}

// resolvedTask flags events whose task attribute named a task the provider
// never declared. The parser keeps the dangling name with identifier zero.
type resolvedTask struct{}

func (resolvedTask) ID() string { return "structure/resolved-task" }

func (resolvedTask) Description() string {
	return "An event's task must be declared by the provider."
}

func (r resolvedTask) CheckEvent(event *schema.EventSchema, _ rules.EventSource) rules.Result {
	if !event.HasTask() {
		return rules.NewSuccess(r, "event declares no task")
	}

	if event.TaskID() == 0 {
		return rules.NewError(r, fmt.Sprintf("task %q is not declared by the provider", event.TaskName()))
	}

	return rules.NewSuccess(r, fmt.Sprintf("task %q resolves", event.TaskName()))
}

// uniquePayloadNames flags events whose payload declares the same field name
// twice. Structured consumers key on field names; a duplicate shadows the
// earlier value.
type uniquePayloadNames struct{}

func (uniquePayloadNames) ID() string { return "structure/unique-payload-names" }

func (uniquePayloadNames) Description() string {
	return "Payload field names must be unique within an event."
}

func (r uniquePayloadNames) CheckEvent(event *schema.EventSchema, _ rules.EventSource) rules.Result {
	seen := make(map[string]int)
	for _, name := range event.Payload() {
		seen[name]++
	}

	var details []rules.Detail

	for _, name := range event.Payload() {
		if seen[name] > 1 {
			details = append(details, rules.Detail{
				Key:         name,
				Description: fmt.Sprintf("field name declared %d times", seen[name]),
			})

			seen[name] = 0
		}
	}

	if len(details) > 0 {
		return rules.NewError(r, "duplicate payload field names", details...)
	}

	return rules.NewSuccess(r, "payload field names are unique")
}

// payloadMatchesWriter compares an event's declared payload against the
// parameter names of the writer behind it, when the source can introspect its
// writers. A mismatch means the manifest promises fields the writer never
// supplies, or in a different order.
type payloadMatchesWriter struct{}

func (payloadMatchesWriter) ID() string { return "structure/payload-matches-writer" }

func (payloadMatchesWriter) Description() string {
	return "An event's payload must match its writer's parameters in name and order."
}

func (r payloadMatchesWriter) CheckEvent(event *schema.EventSchema, src rules.EventSource) rules.Result {
	introspector, ok := src.(rules.PayloadIntrospector)
	if !ok {
		return rules.NewSuccess(r, "source does not expose writer information")
	}

	parameters, known := introspector.WriterParameters(event.ID())
	if !known {
		return rules.NewSuccess(r, "no writer known for this event")
	}

	payload := event.Payload()
	if len(payload) != len(parameters) {
		return rules.NewError(r, fmt.Sprintf("payload declares %d fields, writer supplies %d", len(payload), len(parameters)))
	}

	for i, name := range payload {
		if name != parameters[i] {
			return rules.NewError(r, "payload fields diverge from writer parameters",
				rules.Detail{
					Key:         fmt.Sprintf("position %d", i),
					Description: fmt.Sprintf("manifest declares %q, writer supplies %q", name, parameters[i]),
				})
		}
	}

	return rules.NewSuccess(r, "payload matches writer parameters")
}
