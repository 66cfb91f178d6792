package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the API
	Registry = prometheus.NewRegistry()
	// HTTPRequests counts requests by method, route pattern, and status
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	// HTTPDuration records request durations in seconds
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)

	// FatigueAssessments counts classifier verdicts by level
	FatigueAssessments = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "fatigue_assessments_total", Help: "Fatigue assessments by level."},
		[]string{"level"},
	)
	// ProviderCalls counts generative provider calls by mode and outcome
	ProviderCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "recommendation_provider_calls_total", Help: "Generative provider calls by mode and outcome."},
		[]string{"mode", "outcome"},
	)
	// ProviderLatency tracks provider call latency in seconds
	ProviderLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "recommendation_provider_latency_seconds", Help: "Generative provider latency in seconds.", Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40, 60}},
		[]string{"mode"},
	)
	// AlertsPublished counts fatigue alerts by outcome (published, deduplicated, failed)
	AlertsPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "fatigue_alerts_total", Help: "Fatigue alerts by level and outcome."},
		[]string{"level", "outcome"},
	)
	// RateLimited counts requests rejected by the rate limiter
	RateLimited = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "http_rate_limited_total", Help: "Requests rejected with 429."},
	)
)

// Provider call outcomes.
const (
	OutcomeSuccess  = "success"
	OutcomeDegraded = "degraded"
	OutcomeError    = "error"
)

// RegisterDefault registers collectors to the service registry.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(FatigueAssessments)
		Registry.MustRegister(ProviderCalls)
		Registry.MustRegister(ProviderLatency)
		Registry.MustRegister(AlertsPublished)
		Registry.MustRegister(RateLimited)
		// Go/process collectors on our registry
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

var regOnce sync.Once
