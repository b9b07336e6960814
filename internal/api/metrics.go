package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "corpus"

// Metrics holds the HTTP and engine metrics exported on /metrics
type Metrics struct {
	// RequestsTotal counts requests by route and status code
	RequestsTotal *prometheus.CounterVec

	// RequestDuration observes request latency by route
	RequestDuration *prometheus.HistogramVec

	// CalculationDuration observes engine latency by operation
	CalculationDuration *prometheus.HistogramVec

	// RateLimitedTotal counts rejected requests
	RateLimitedTotal prometheus.Counter
}

// NewMetrics creates and registers the metrics with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total HTTP requests by route and status",
			},
			[]string{"route", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request latency by route",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		CalculationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: "engine",
				Name:      "calculation_duration_seconds",
				Help:      "Engine run latency by operation",
				Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5},
			},
			[]string{"operation"},
		),
		RateLimitedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "http",
				Name:      "rate_limited_total",
				Help:      "Requests rejected by the rate limiter",
			},
		),
	}
}
