// Package rules defines the contract every validation rule implements, the
// Result values rules produce, and the named, ordered rule sets the analyzer
// executes. Concrete rules live in the structure and practice subpackages.
package rules

import (
	"github.com/ChilliCream/EventSourceAnalyzer/internal/schema"
)

// Rule carries the identity shared by both rule granularities. A rule must be
// a pure function of its inputs plus whatever metadata it reads from the
// event source handle; it must not mutate the schema or the handle.
type Rule interface {
	// ID returns the stable rule identifier (set-qualified, e.g.
	// "structure/unique-event-ids").
	ID() string

	// Description returns a one-line description of what the rule checks.
	Description() string
}

// ProviderRule is evaluated once per provider. The engine dispatches on this
// capability; a rule implements exactly one of ProviderRule and EventRule.
type ProviderRule interface {
	Rule

	// CheckProvider evaluates the rule against the whole provider schema and
	// returns exactly one result.
	CheckProvider(provider *schema.ProviderSchema, src EventSource) Result
}

// EventRule is evaluated once per event, in schema order.
type EventRule interface {
	Rule

	// CheckEvent evaluates the rule against one event and returns exactly one
	// result. Cross-checks against the provider go through the event's
	// back-reference.
	CheckEvent(event *schema.EventSchema, src EventSource) Result
}
