// Package observability holds Prometheus collectors shared across layers.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bmxhive_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bmxhive_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// LikeToggles counts toggle-like outcomes.
	LikeToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bmxhive_like_toggles_total",
		Help: "Total number of like toggles by resulting state",
	}, []string{"state"})

	// ModerationActions counts admin moderation operations.
	ModerationActions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bmxhive_moderation_actions_total",
		Help: "Total number of moderation actions by kind",
	}, []string{"action"})
)

// ObserveQuery records the latency of a database query.
func ObserveQuery(operation, table string, start time.Time) {
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
}
