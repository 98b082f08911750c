package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smart_parking_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "smart_parking_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	SensorEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smart_parking_sensor_events_total",
			Help: "Space sensor events by outcome (applied, malformed, error)",
		},
		[]string{"outcome"},
	)

	RateResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smart_parking_rate_resolutions_total",
			Help: "Rate resolver lookups by outcome (resolved, not_configured, error)",
		},
		[]string{"outcome"},
	)
)
