// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookrec_recommend_requests_total",
			Help: "Recommendations served, by chosen strategy",
		},
		[]string{"strategy"}, // "title", "genre", "hybrid", "embedding", "none"
	)

	RecommendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bookrec_recommend_duration_seconds",
			Help:    "Time spent producing a recommendation",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"strategy"},
	)

	RecommendErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bookrec_recommend_errors_total",
			Help: "Recommendations that failed, usually because embedding failed",
		},
	)

	IndexBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bookrec_index_build_duration_seconds",
			Help:    "Time spent embedding and normalizing the catalog",
			Buckets: []float64{.05, .1, .5, 1, 5, 10, 30, 60, 120},
		},
	)

	IndexBuilds = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookrec_index_builds_total",
			Help: "Corpus index build attempts",
		},
		[]string{"result"}, // "success", "error"
	)

	IndexRows = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bookrec_index_rows",
			Help: "Rows in the corpus index",
		},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookrec_http_requests_total",
			Help: "HTTP requests handled",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bookrec_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)
