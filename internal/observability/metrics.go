// Package observability holds Prometheus collectors and OpenTelemetry setup.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "criminaldiaries_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// CacheRequests counts cache-aside lookups by key prefix and outcome (hit/miss).
	CacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "criminaldiaries_cache_requests_total",
		Help: "Total cache-aside lookups by key prefix and outcome",
	}, []string{"prefix", "outcome"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "criminaldiaries_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// StoryEvents counts story lifecycle events (created/updated/deleted/like_toggled).
	StoryEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "criminaldiaries_story_events_total",
		Help: "Total story lifecycle events by type",
	}, []string{"event"})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
