// Package observability provides metrics and tracing for the signup server.
//
// Metrics are exposed on /metrics through promhttp. Tracing is opt-in and
// only starts when an OTLP endpoint is configured.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "signup"

// Submission outcomes used as the "outcome" label
const (
	OutcomeSuccess       = "success"
	OutcomeValidation    = "validation_error"
	OutcomeConfiguration = "configuration_error"
	OutcomeProvider      = "provider_error"
	OutcomeTransport     = "transport_error"
)

// Metrics holds the Prometheus collectors for signup traffic.
type Metrics struct {
	// SubmissionsTotal counts signup submissions by outcome.
	SubmissionsTotal *prometheus.CounterVec

	// ProviderDuration measures the contact registration call.
	// Labels: status (HTTP status or "transport")
	ProviderDuration *prometheus.HistogramVec

	// ContentFetchesTotal counts content provider reads by result.
	ContentFetchesTotal *prometheus.CounterVec

	// RateLimitedTotal counts requests rejected by the rate limiter.
	RateLimitedTotal prometheus.Counter
}

// NewMetrics creates and registers all collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SubmissionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "submissions_total",
				Help:      "Signup submissions by outcome",
			},
			[]string{"outcome"},
		),
		ProviderDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "provider_request_duration_seconds",
				Help:      "Duration of contact registration calls",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"status"},
		),
		ContentFetchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "content_fetches_total",
				Help:      "Page content reads by result",
			},
			[]string{"result"},
		),
		RateLimitedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "rate_limited_total",
				Help:      "Requests rejected by the rate limiter",
			},
		),
	}
}

// NewTestMetrics returns metrics bound to a throwaway registry
func NewTestMetrics() *Metrics {
	return NewMetrics(prometheus.NewRegistry())
}
