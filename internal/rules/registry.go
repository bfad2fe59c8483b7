package rules

import (
	"errors"
	"fmt"
)

// ErrUnknownRuleID is returned when a registry lookup fails.
var ErrUnknownRuleID = errors.New("unknown rule id")

// ErrDuplicateRuleID is returned when the registry receives duplicate IDs.
var ErrDuplicateRuleID = errors.New("duplicate rule id")

// Registry stores the known rules with deterministic ordering. It backs rule
// listing and the assembly of caller-defined rule sets from configuration.
type Registry struct {
	ordered []Rule
	index   map[string]Rule
}

// NewRegistry creates a registry from the given rules.
func NewRegistry(known []Rule) (*Registry, error) {
	ordered := make([]Rule, 0, len(known))
	index := make(map[string]Rule, len(known))

	for _, rule := range known {
		if rule == nil {
			return nil, ErrNilRule
		}

		if _, exists := index[rule.ID()]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRuleID, rule.ID())
		}

		index[rule.ID()] = rule
		ordered = append(ordered, rule)
	}

	return &Registry{
		ordered: ordered,
		index:   index,
	}, nil
}

// All returns all registered rules in registration order.
func (r *Registry) All() []Rule {
	rulesCopy := make([]Rule, len(r.ordered))
	copy(rulesCopy, r.ordered)

	return rulesCopy
}

// Get returns the rule registered under the given ID.
func (r *Registry) Get(id string) (Rule, bool) {
	rule, ok := r.index[id]

	return rule, ok
}

// Select resolves rule IDs to rules while preserving the requested order.
func (r *Registry) Select(ids []string) ([]Rule, error) {
	selected := make([]Rule, 0, len(ids))

	for _, id := range ids {
		rule, ok := r.index[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownRuleID, id)
		}

		selected = append(selected, rule)
	}

	return selected, nil
}
