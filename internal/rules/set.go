package rules

import "errors"

// ErrNilRule is returned when a rule set is constructed with a nil rule.
var ErrNilRule = errors.New("nil rule")

// ErrEmptySetName is returned when a rule set is constructed without a name.
var ErrEmptySetName = errors.New("rule set name must not be empty")

// Set is a named, ordered collection of rules. Sets are configuration
// objects assembled before analysis; the engine never mutates them. There is
// no uniqueness constraint on rule identity within a set.
type Set struct {
	name  string
	rules []Rule
}

// NewSet creates a rule set with the given name and rules, in order.
func NewSet(name string, setRules ...Rule) (*Set, error) {
	if name == "" {
		return nil, ErrEmptySetName
	}

	for _, rule := range setRules {
		if rule == nil {
			return nil, ErrNilRule
		}
	}

	rulesCopy := make([]Rule, len(setRules))
	copy(rulesCopy, setRules)

	return &Set{
		name:  name,
		rules: rulesCopy,
	}, nil
}

// Name returns the rule set's name.
func (s *Set) Name() string {
	return s.name
}

// Rules returns the rules in configuration order.
func (s *Set) Rules() []Rule {
	rulesCopy := make([]Rule, len(s.rules))
	copy(rulesCopy, s.rules)

	return rulesCopy
}

// Len returns the number of rules in the set.
func (s *Set) Len() int {
	return len(s.rules)
}
