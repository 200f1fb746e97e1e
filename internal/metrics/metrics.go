package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobboard_http_requests_total",
			Help: "Total number of HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "jobboard_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	FileUploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobboard_file_uploads_total",
			Help: "Total number of file uploads to object storage",
		},
		[]string{"folder", "outcome"},
	)

	// IntegrityViolationsTotal counts two-step writes whose compensation failed,
	// leaving a dangling reference behind.
	IntegrityViolationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobboard_integrity_violations_total",
			Help: "Reference updates left partially applied",
		},
		[]string{"relation"},
	)
)
