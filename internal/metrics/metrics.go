package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blog_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "blog_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	HTTPRequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "blog_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	RegistrationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blog_registrations_total",
			Help: "Total number of registration attempts by result",
		},
		[]string{"result"},
	)

	LoginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blog_logins_total",
			Help: "Total number of login attempts by result",
		},
		[]string{"result"},
	)

	SessionsResolvedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blog_sessions_resolved_total",
			Help: "Total number of bearer token resolutions by result",
		},
		[]string{"result"},
	)

	BlogMutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blog_mutations_total",
			Help: "Total number of blog mutations by action and result",
		},
		[]string{"action", "result"},
	)

	ImageUploadsPresigned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "blog_image_uploads_presigned_total",
			Help: "Total number of presigned image upload URLs issued",
		},
	)

	FeedSubscribers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "blog_feed_subscribers",
			Help: "Number of connected live feed subscribers",
		},
	)
)
