package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Request metrics
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dockhand_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dockhand_request_duration_seconds",
			Help:    "Request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Response cache metrics
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dockhand_cache_hits_total",
			Help: "Total number of response cache hits",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dockhand_cache_misses_total",
			Help: "Total number of response cache misses",
		},
	)

	// Recreation metrics
	RecreationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dockhand_recreations_total",
			Help: "Total number of container recreations by outcome",
		},
		[]string{"outcome"},
	)

	ReattachFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dockhand_network_reattach_failures_total",
			Help: "Total number of failed network reattachments after a recreation",
		},
	)
)
