// Package observability defines the Prometheus metric families for the service.
package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~20s
		},
		[]string{"method", "route", "status"},
	)

	upstreamLatencySeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_latency_seconds",
			Help:    "Latency of EIA API calls in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
		},
		[]string{"kind"},
	)

	searchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "searches_total",
			Help: "Search invocations by terminal outcome.",
		},
		[]string{"outcome"},
	)

	routeResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "route_resolutions_total",
			Help: "Route resolver outcomes by route id.",
		},
		[]string{"route"},
	)

	cacheResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_results_total",
			Help: "Metadata cache results by outcome.",
		},
		[]string{"outcome"},
	)

	cacheOpSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cache_op_seconds",
			Help:    "Latency of metadata cache store operations.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		},
		[]string{"op", "result"},
	)

	invalidationLagSeconds = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "invalidation_lag_seconds",
			Help: "Approximate lag of the last invalidation event: now - event timestamp.",
		},
	)

	routeInvalidatedAt = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "route_invalidated_timestamp_seconds",
			Help: "Unix time of the last applied invalidation per route.",
		},
		[]string{"route"},
	)

	buildInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_build_info",
			Help: "Build information for the binary.",
		},
		[]string{"version"},
	)
)

func ObserveHTTP(method, route string, status int, durationSeconds float64) {
	st := strconv.Itoa(status)
	httpRequestsTotal.WithLabelValues(method, route, st).Inc()
	httpRequestDurationSeconds.WithLabelValues(method, route, st).Observe(durationSeconds)
}

// ObserveUpstreamLatency records one EIA call; kind is "data" or "metadata".
func ObserveUpstreamLatency(kind string, durationSeconds float64) {
	upstreamLatencySeconds.WithLabelValues(kind).Observe(durationSeconds)
}

// ObserveSearch records the terminal outcome of one search invocation
// (ok, no_route, validation_error, api_error, transport_error, empty).
func ObserveSearch(outcome string) {
	searchesTotal.WithLabelValues(outcome).Inc()
}

func ObserveRouteResolution(route string) {
	if route == "" {
		route = "none"
	}
	routeResolutionsTotal.WithLabelValues(route).Inc()
}

func IncCacheHit()  { cacheResults.WithLabelValues("hit").Inc() }
func IncCacheMiss() { cacheResults.WithLabelValues("miss").Inc() }

func ObserveCacheOp(op string, err error, durationSeconds float64) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	cacheOpSeconds.WithLabelValues(op, result).Observe(durationSeconds)
}

func SetInvalidationLagSeconds(lag float64) {
	invalidationLagSeconds.Set(lag)
}

func SetRouteInvalidatedAt(route string, ts time.Time) {
	if route == "" || ts.IsZero() {
		return
	}
	routeInvalidatedAt.WithLabelValues(route).Set(float64(ts.Unix()))
}

func ExposeBuildInfo(version string) {
	if version == "" {
		version = "dev"
	}
	buildInfo.WithLabelValues(version).Set(1)
}
