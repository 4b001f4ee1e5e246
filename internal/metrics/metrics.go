// Package metrics exposes prometheus instrumentation for the HTTP layer and
// the search pipeline.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "blog_search",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "blog_search",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	searchesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "blog_search",
			Name:      "searches_total",
			Help:      "Total number of executed search queries",
		},
	)

	zeroResultSearchesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "blog_search",
			Name:      "zero_result_searches_total",
			Help:      "Search queries that returned no results",
		},
	)

	budgetExhaustedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "blog_search",
			Name:      "budget_exhausted_total",
			Help:      "Search queries degraded to partial results by the comparison budget",
		},
	)

	suggestionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "blog_search",
			Name:      "suggestions_total",
			Help:      "Total number of executed suggestion queries",
		},
	)

	snapshotDocuments = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "blog_search",
			Name:      "snapshot_documents",
			Help:      "Documents in the currently installed corpus snapshot",
		},
	)

	snapshotBuildDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "blog_search",
			Name:      "snapshot_build_duration_seconds",
			Help:      "Corpus snapshot build duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)
)

func init() {
	prometheus.MustRegister(
		httpRequestDuration,
		httpRequestsTotal,
		searchesTotal,
		zeroResultSearchesTotal,
		budgetExhaustedTotal,
		suggestionsTotal,
		snapshotDocuments,
		snapshotBuildDuration,
	)
}

// Middleware records request duration and count per route pattern.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		path := c.FullPath()
		if path == "" {
			path = "unknown"
		}
		method := c.Request.Method

		httpRequestDuration.WithLabelValues(method, path, status).Observe(time.Since(start).Seconds())
		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	}
}

// ObserveSearch records one executed search query.
func ObserveSearch(resultCount int, partial bool) {
	searchesTotal.Inc()
	if resultCount == 0 {
		zeroResultSearchesTotal.Inc()
	}
	if partial {
		budgetExhaustedTotal.Inc()
	}
}

// ObserveSuggestion records one executed suggestion query.
func ObserveSuggestion() {
	suggestionsTotal.Inc()
}

// ObserveSnapshot records an installed snapshot's size and build time.
func ObserveSnapshot(documents int, buildTime time.Duration) {
	snapshotDocuments.Set(float64(documents))
	snapshotBuildDuration.Observe(buildTime.Seconds())
}
