package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricInspectionsTotal = "esa.inspections.total"
	metricRulesTotal       = "esa.rules.evaluated.total"
	metricResultsTotal     = "esa.results.total"
	metricCacheHitsTotal   = "esa.schema.cache.hits.total"
	metricCacheMissesTotal = "esa.schema.cache.misses.total"
	metricParseDuration    = "esa.manifest.parse.duration.seconds"

	attrKind = "kind"
)

// parseBucketBoundaries covers 1ms to 10s. Manifest parsing is usually
// sub-millisecond, but pathological manifests with thousands of events land in
// the upper buckets.
var parseBucketBoundaries = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

// InspectionMetrics holds OTel instruments for inspection runs.
type InspectionMetrics struct {
	inspectionsTotal metric.Int64Counter
	rulesTotal       metric.Int64Counter
	resultsTotal     metric.Int64Counter
	cacheHits        metric.Int64Counter
	cacheMisses      metric.Int64Counter
	parseDuration    metric.Float64Histogram
}

// InspectionStats holds the statistics for a single inspection run.
type InspectionStats struct {
	RuleEvaluations int64
	Successes       int64
	Warnings        int64
	Errors          int64
	CacheHit        bool
	ParseDuration   time.Duration
}

// NewInspectionMetrics creates inspection metric instruments from the given meter.
func NewInspectionMetrics(mt metric.Meter) (*InspectionMetrics, error) {
	b := newMetricBuilder(mt)

	im := &InspectionMetrics{
		inspectionsTotal: b.counter(metricInspectionsTotal, "Total inspection runs", "{inspection}"),
		rulesTotal:       b.counter(metricRulesTotal, "Total rule evaluations", "{evaluation}"),
		resultsTotal:     b.counter(metricResultsTotal, "Rule results by kind", "{result}"),
		cacheHits:        b.counter(metricCacheHitsTotal, "Schema cache hits", "{hit}"),
		cacheMisses:      b.counter(metricCacheMissesTotal, "Schema cache misses", "{miss}"),
		parseDuration:    b.histogram(metricParseDuration, "Manifest parse duration in seconds", "s", parseBucketBoundaries...),
	}

	if b.err != nil {
		return nil, b.err
	}

	return im, nil
}

// RecordInspection records the statistics of a completed inspection run.
// Safe to call on a nil receiver (no-op).
func (im *InspectionMetrics) RecordInspection(ctx context.Context, stats InspectionStats) {
	if im == nil {
		return
	}

	im.inspectionsTotal.Add(ctx, 1)
	im.rulesTotal.Add(ctx, stats.RuleEvaluations)

	im.resultsTotal.Add(ctx, stats.Successes, metric.WithAttributes(attribute.String(attrKind, "success")))
	im.resultsTotal.Add(ctx, stats.Warnings, metric.WithAttributes(attribute.String(attrKind, "warning")))
	im.resultsTotal.Add(ctx, stats.Errors, metric.WithAttributes(attribute.String(attrKind, "error")))

	if stats.CacheHit {
		im.cacheHits.Add(ctx, 1)
	} else {
		im.cacheMisses.Add(ctx, 1)
		im.parseDuration.Record(ctx, stats.ParseDuration.Seconds())
	}
}
