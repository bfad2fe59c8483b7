// Package report defines the aggregate, queryable outcome of one analysis
// run and its renderers. A report is created once per Inspect call and never
// mutated after return.
package report

import (
	"github.com/ChilliCream/EventSourceAnalyzer/internal/rules"
)

// Report aggregates the provider name, the rule sets that were executed, and
// the full ordered result list. Results are ordered per rule set in
// configuration order: provider-granularity results first, then per event in
// schema order all event-granularity results.
type Report struct {
	provider string
	sets     []*rules.Set
	results  []rules.Result
}

// New creates a report over the given results. The rule sets are referenced
// unmodified; the result slice is copied.
func New(provider string, sets []*rules.Set, results []rules.Result) *Report {
	setsCopy := make([]*rules.Set, len(sets))
	copy(setsCopy, sets)

	resultsCopy := make([]rules.Result, len(results))
	copy(resultsCopy, results)

	return &Report{
		provider: provider,
		sets:     setsCopy,
		results:  resultsCopy,
	}
}

// Provider returns the display name of the inspected provider.
func (r *Report) Provider() string {
	return r.provider
}

// Sets returns the executed rule sets in configuration order.
func (r *Report) Sets() []*rules.Set {
	setsCopy := make([]*rules.Set, len(r.sets))
	copy(setsCopy, r.sets)

	return setsCopy
}

// Results returns all results in execution order.
func (r *Report) Results() []rules.Result {
	resultsCopy := make([]rules.Result, len(r.results))
	copy(resultsCopy, r.results)

	return resultsCopy
}

// ResultsForSet returns the results produced under the named rule set, in
// execution order.
func (r *Report) ResultsForSet(name string) []rules.Result {
	matched := make([]rules.Result, 0, len(r.results))

	for _, result := range r.results {
		if result.RuleSet == name {
			matched = append(matched, result)
		}
	}

	return matched
}

// ByKind returns the results of the given kind, in execution order.
func (r *Report) ByKind(kind rules.Kind) []rules.Result {
	matched := make([]rules.Result, 0, len(r.results))

	for _, result := range r.results {
		if result.Kind == kind {
			matched = append(matched, result)
		}
	}

	return matched
}

// CountByKind returns the number of results of the given kind.
func (r *Report) CountByKind(kind rules.Kind) int {
	count := 0

	for _, result := range r.results {
		if result.Kind == kind {
			count++
		}
	}

	return count
}

// Errors returns all error results.
func (r *Report) Errors() []rules.Result {
	return r.ByKind(rules.KindError)
}

// Warnings returns all warning results.
func (r *Report) Warnings() []rules.Result {
	return r.ByKind(rules.KindWarning)
}

// Successes returns all passing results.
func (r *Report) Successes() []rules.Result {
	return r.ByKind(rules.KindSuccess)
}

// HasErrors reports whether any rule produced an error result.
func (r *Report) HasErrors() bool {
	return r.CountByKind(rules.KindError) > 0
}

// HasWarnings reports whether any rule produced a warning result.
func (r *Report) HasWarnings() bool {
	return r.CountByKind(rules.KindWarning) > 0
}
