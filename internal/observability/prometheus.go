package observability

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// PrometheusEndpoint couples a meter with the handler that exposes its
// instruments for scraping.
type PrometheusEndpoint struct {
	Meter   metric.Meter
	Handler http.Handler
}

// NewPrometheusEndpoint creates a Prometheus metrics exporter backed by an
// OTel MeterProvider and returns the meter to register instruments on plus an
// [http.Handler] that serves the /metrics scrape endpoint. Each call creates
// an independent Prometheus registry to avoid collector conflicts when called
// multiple times.
func NewPrometheusEndpoint(meterName string) (*PrometheusEndpoint, error) {
	registry := prometheus.NewRegistry()

	exporter, err := promexporter.New(
		promexporter.WithRegisterer(registry),
	)
	if err != nil {
		return nil, fmt.Errorf("create prometheus exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))

	return &PrometheusEndpoint{
		Meter:   provider.Meter(meterName),
		Handler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	}, nil
}
