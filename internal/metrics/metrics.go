// Package metrics holds the Prometheus collectors of the registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Lookup results.
const (
	ResultHit      = "hit"
	ResultFallback = "fallback"
	ResultMissing  = "missing"
)

// UnknownNamespace labels lookups for namespaces the registry does not declare.
const UnknownNamespace = "unknown"

var (
	// Lookups counts Get/GetNamespace calls by namespace and outcome.
	Lookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "localereg_lookups_total",
			Help: "Translation lookups by namespace and result (hit, fallback, missing).",
		},
		[]string{"namespace", "result"},
	)

	// Reloads counts registry loads by status.
	Reloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "localereg_reloads_total",
			Help: "Registry loads by status (ok, error).",
		},
		[]string{"status"},
	)

	// Keys reports the number of keys per locale in the published registry.
	Keys = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "localereg_keys",
			Help: "Translation keys per locale in the published registry.",
		},
		[]string{"locale"},
	)

	// LoadDuration observes how long a full registry load takes.
	LoadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "localereg_load_duration_seconds",
			Help:    "Duration of a full registry load in seconds.",
			Buckets: prometheus.DefBuckets,
		},
	)
)

var (
	// HTTPRequests counts API requests by method, route pattern and status.
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "localereg_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPDuration observes request durations by method and route pattern.
	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "localereg_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds by method and route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)
