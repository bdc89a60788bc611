// Package metrics exposes Prometheus instrumentation for the media API.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for upstream API calls.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Result labels for media cache lookups.
const (
	CacheHit  = "hit"
	CacheMiss = "miss"
)

var (
	upstreamCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "media_upstream_calls_total",
		Help: "Calls made to the video platform API, by endpoint and outcome.",
	}, []string{"endpoint", "outcome"})

	fallbackSteps = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "media_resolver_fallback_steps_total",
		Help: "Lookup strategies attempted by the resolver, by operation and step.",
	}, []string{"operation", "step"})

	cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "media_cache_lookups_total",
		Help: "Media cache lookups, by operation and result.",
	}, []string{"operation", "result"})
)

// UpstreamCall records one upstream API call.
func UpstreamCall(endpoint, outcome string) {
	upstreamCalls.WithLabelValues(endpoint, outcome).Inc()
}

// FallbackStep records one attempted resolver strategy.
func FallbackStep(operation, step string) {
	fallbackSteps.WithLabelValues(operation, step).Inc()
}

// CacheLookup records one media cache lookup.
func CacheLookup(operation, result string) {
	cacheLookups.WithLabelValues(operation, result).Inc()
}

// Handler serves the default Prometheus registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
