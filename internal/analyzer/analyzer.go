// Package analyzer runs configured rule sets over an event source's parsed
// schema and assembles the report. It owns the schema cache: a source's
// manifest is parsed at most once per cache lifetime, concurrent first
// inspections race and the loser discards its parse.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ChilliCream/EventSourceAnalyzer/internal/manifest"
	"github.com/ChilliCream/EventSourceAnalyzer/internal/observability"
	"github.com/ChilliCream/EventSourceAnalyzer/internal/report"
	"github.com/ChilliCream/EventSourceAnalyzer/internal/rules"
	"github.com/ChilliCream/EventSourceAnalyzer/internal/schema"
)

// ErrNilEventSource is returned when Inspect receives a nil source.
var ErrNilEventSource = errors.New("nil event source")

// ErrNilRuleSet is returned when the analyzer is constructed with a nil set.
var ErrNilRuleSet = errors.New("nil rule set")

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithCache shares an existing schema cache across analyzers.
func WithCache(cache *schema.Cache) Option {
	return func(a *Analyzer) {
		if cache != nil {
			a.cache = cache
		}
	}
}

// WithMetrics attaches inspection metrics. Without it the analyzer records
// nothing.
func WithMetrics(metrics *observability.InspectionMetrics) Option {
	return func(a *Analyzer) {
		a.metrics = metrics
	}
}

// Analyzer evaluates rule sets against event sources. It is safe for
// concurrent use; the rule sets are fixed at construction.
type Analyzer struct {
	cache   *schema.Cache
	sets    []*rules.Set
	metrics *observability.InspectionMetrics
}

// New creates an analyzer over the given rule sets, in order. An empty set
// list is valid and produces empty reports.
func New(sets []*rules.Set, opts ...Option) (*Analyzer, error) {
	for _, set := range sets {
		if set == nil {
			return nil, ErrNilRuleSet
		}
	}

	setsCopy := make([]*rules.Set, len(sets))
	copy(setsCopy, sets)

	analyzer := &Analyzer{
		cache: schema.NewCache(),
		sets:  setsCopy,
	}

	for _, opt := range opts {
		opt(analyzer)
	}

	return analyzer, nil
}

// Cache exposes the analyzer's schema cache for statistics.
func (a *Analyzer) Cache() *schema.Cache {
	return a.cache
}

// Inspect resolves the source's schema and evaluates every configured rule
// set against it. Results follow a fixed order: per rule set in configuration
// order, provider-granularity rules first in rule order, then for each event
// in schema order all event-granularity rules in rule order. A rule that
// panics aborts the inspection; nothing is recovered on its behalf.
func (a *Analyzer) Inspect(src rules.EventSource) (*report.Report, error) {
	if src == nil {
		return nil, ErrNilEventSource
	}

	var stats observability.InspectionStats

	provider, err := a.resolveSchema(src, &stats)
	if err != nil {
		return nil, err
	}

	results := a.evaluate(provider, src, &stats)
	a.metrics.RecordInspection(context.Background(), stats)

	return report.New(provider.Name(), a.sets, results), nil
}

// resolveSchema returns the source's schema, parsing its manifest only on a
// cache miss.
func (a *Analyzer) resolveSchema(src rules.EventSource, stats *observability.InspectionStats) (*schema.ProviderSchema, error) {
	if provider, ok := a.cache.TryGet(src.ID()); ok {
		stats.CacheHit = true

		return provider, nil
	}

	manifestXML, readErr := src.Manifest()
	if readErr != nil {
		return nil, fmt.Errorf("read manifest for %s: %w", src.ID(), readErr)
	}

	start := time.Now()

	provider, parseErr := manifest.Read(manifestXML)
	if parseErr != nil {
		return nil, fmt.Errorf("parse manifest for %s: %w", src.ID(), parseErr)
	}

	stats.ParseDuration = time.Since(start)

	if !a.cache.TryAdd(src.ID(), provider) {
		// Lost a concurrent first-inspection race; use the winner's schema.
		if winner, ok := a.cache.TryGet(src.ID()); ok {
			provider = winner
		}
	}

	return provider, nil
}

// evaluate runs every configured rule set and stamps each result with the
// name of the set it ran under.
func (a *Analyzer) evaluate(provider *schema.ProviderSchema, src rules.EventSource, stats *observability.InspectionStats) []rules.Result {
	var results []rules.Result

	record := func(result rules.Result, setName string) {
		result.RuleSet = setName
		results = append(results, result)

		stats.RuleEvaluations++

		switch result.Kind {
		case rules.KindSuccess:
			stats.Successes++
		case rules.KindWarning:
			stats.Warnings++
		case rules.KindError:
			stats.Errors++
		}
	}

	for _, set := range a.sets {
		setRules := set.Rules()

		for _, rule := range setRules {
			if providerRule, ok := rule.(rules.ProviderRule); ok {
				record(providerRule.CheckProvider(provider, src), set.Name())
			}
		}

		for _, event := range provider.Events() {
			for _, rule := range setRules {
				if eventRule, ok := rule.(rules.EventRule); ok {
					record(eventRule.CheckEvent(event, src), set.Name())
				}
			}
		}
	}

	return results
}
