// Package metrics wires Prometheus instrumentation for the travel search API.
// A Collector owns its own registry so tests can construct as many as they
// like without duplicate-registration panics. All record methods are safe on
// a nil receiver, so components can be wired without metrics entirely.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for upstream request counters.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
	OutcomeEmpty = "empty"
)

type Collector struct {
	reg *prometheus.Registry

	// UpstreamRequests counts calls to external services by service name
	// ("geocoder", "planner") and outcome.
	UpstreamRequests *prometheus.CounterVec

	// SearchDuration observes end-to-end search latency, upstream included.
	SearchDuration prometheus.Histogram

	// LedgerEntries tracks the current number of entries in the itinerary ledger.
	LedgerEntries prometheus.Gauge
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "travelsearch_upstream_requests_total",
			Help: "Requests to external services by service and outcome.",
		}, []string{"service", "outcome"}),
		SearchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "travelsearch_search_duration_seconds",
			Help:    "End-to-end itinerary search duration.",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
		}),
		LedgerEntries: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "travelsearch_ledger_entries",
			Help: "Current number of entries in the itinerary ledger.",
		}),
	}

	reg.MustRegister(c.UpstreamRequests, c.SearchDuration, c.LedgerEntries)
	return c
}

// Upstream records one external request outcome.
func (c *Collector) Upstream(service, outcome string) {
	if c == nil {
		return
	}
	c.UpstreamRequests.WithLabelValues(service, outcome).Inc()
}

// ObserveSearch records one search duration in seconds.
func (c *Collector) ObserveSearch(seconds float64) {
	if c == nil {
		return
	}
	c.SearchDuration.Observe(seconds)
}

// SetLedgerSize updates the ledger size gauge.
func (c *Collector) SetLedgerSize(n int) {
	if c == nil {
		return
	}
	c.LedgerEntries.Set(float64(n))
}

// Handler exposes the collector's registry in Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
}
