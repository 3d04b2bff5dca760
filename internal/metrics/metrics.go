package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the analysis service's Prometheus collectors.
type Metrics struct {
	// AnalysesTotal counts engine runs.
	// Labels: kind (variance, optimization, budget), outcome (ok, error)
	AnalysesTotal *prometheus.CounterVec

	// MissingComparables counts budget segments that had no counterpart.
	// Labels: side (budget, actual)
	MissingComparables *prometheus.CounterVec

	// CachedResults tracks how many analysis results are retrievable by ID.
	CachedResults prometheus.Gauge

	// RequestDuration tracks HTTP handler latency.
	// Labels: route, status
	RequestDuration *prometheus.HistogramVec
}

// New registers all collectors on registry (the default registerer when nil).
func New(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registry)

	return &Metrics{
		AnalysesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coop_analyses_total",
				Help: "Total number of analysis runs by kind and outcome",
			},
			[]string{"kind", "outcome"},
		),
		MissingComparables: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coop_missing_comparables_total",
				Help: "Budget/actual segments present on one side only",
			},
			[]string{"side"},
		),
		CachedResults: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "coop_cached_results",
				Help: "Number of analysis results held in the result cache",
			},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "coop_http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route", "status"},
		),
	}
}

// ObserveAnalysis records one engine run.
func (m *Metrics) ObserveAnalysis(kind string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.AnalysesTotal.WithLabelValues(kind, outcome).Inc()
}
