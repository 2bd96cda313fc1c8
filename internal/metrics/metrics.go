// Package metrics registers the process-wide Prometheus collectors.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPRequestSize     *prometheus.HistogramVec
	HTTPResponseSize    *prometheus.HistogramVec
	HTTPActiveRequests  *prometheus.GaugeVec

	// Metadata memo cache
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec

	// TMDB gateway
	MetadataAttemptsTotal *prometheus.CounterVec
	MetadataFetchesTotal  *prometheus.CounterVec
	MetadataFetchDuration *prometheus.HistogramVec

	// Recommendations
	RecommendationsTotal  *prometheus.CounterVec
	RecommendationResults *prometheus.HistogramVec
	CatalogMovies         prometheus.Gauge

	// Sessions
	ActiveSessions  prometheus.Gauge
	WatchlistEvents *prometheus.CounterVec

	RateLimitExceededTotal *prometheus.CounterVec
	ErrorsTotal            *prometheus.CounterVec
}

var (
	instance *Metrics
	once     sync.Once
)

// Initialize creates and registers all Prometheus metrics with the default
// registry. Later calls return the same instance.
func Initialize() *Metrics {
	once.Do(func() {
		instance = &Metrics{
			HTTPRequestsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "http_requests_total",
					Help: "Total number of HTTP requests",
				},
				[]string{"method", "path", "status"},
			),
			HTTPRequestDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "http_request_duration_seconds",
					Help:    "HTTP request latency in seconds",
					Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
				},
				[]string{"method", "path", "status"},
			),
			HTTPRequestSize: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "http_request_size_bytes",
					Help:    "HTTP request body size in bytes",
					Buckets: prometheus.ExponentialBuckets(100, 10, 7),
				},
				[]string{"method", "path"},
			),
			HTTPResponseSize: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "http_response_size_bytes",
					Help:    "HTTP response size in bytes",
					Buckets: prometheus.ExponentialBuckets(100, 10, 7),
				},
				[]string{"method", "path", "status"},
			),
			HTTPActiveRequests: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Name: "http_active_requests",
					Help: "Number of in-flight HTTP requests",
				},
				[]string{"method", "path"},
			),

			CacheHitsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "cache_hits_total",
					Help: "Total number of cache hits",
				},
				[]string{"cache_name"},
			),
			CacheMissesTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "cache_misses_total",
					Help: "Total number of cache misses",
				},
				[]string{"cache_name"},
			),

			MetadataAttemptsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "tmdb_attempts_total",
					Help: "HTTP attempts made against TMDB, including retries",
				},
				[]string{"operation"},
			),
			MetadataFetchesTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "tmdb_fetches_total",
					Help: "Completed TMDB lookups by outcome (found, absent)",
				},
				[]string{"operation", "outcome"},
			),
			MetadataFetchDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "tmdb_fetch_duration_seconds",
					Help:    "TMDB lookup latency including retries",
					Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 20},
				},
				[]string{"operation"},
			),

			RecommendationsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "recommendations_total",
					Help: "Recommendation queries answered",
				},
				[]string{"mode"},
			),
			RecommendationResults: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "recommendation_results",
					Help:    "Number of movies returned per recommendation query",
					Buckets: []float64{0, 1, 2, 5, 8, 10},
				},
				[]string{"mode"},
			),
			CatalogMovies: promauto.NewGauge(
				prometheus.GaugeOpts{
					Name: "catalog_movies",
					Help: "Number of movies in the loaded catalog",
				},
			),

			ActiveSessions: promauto.NewGauge(
				prometheus.GaugeOpts{
					Name: "sessions_active",
					Help: "Number of live sessions",
				},
			),
			WatchlistEvents: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "watchlist_events_total",
					Help: "Watchlist changes by action (add, duplicate, remove)",
				},
				[]string{"action"},
			),

			RateLimitExceededTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "rate_limit_exceeded_total",
					Help: "Total number of rate limit violations",
				},
				[]string{"endpoint", "method"},
			),
			ErrorsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "errors_total",
					Help: "Total number of errors by type",
				},
				[]string{"error_type", "endpoint"},
			),
		}
	})
	return instance
}

// Get returns the global metrics instance
func Get() *Metrics {
	return Initialize()
}

// RecordCache counts a memo cache lookup.
func (m *Metrics) RecordCache(name string, hit bool) {
	if hit {
		m.CacheHitsTotal.WithLabelValues(name).Inc()
		return
	}
	m.CacheMissesTotal.WithLabelValues(name).Inc()
}

// RecordMetadataFetch counts a finished TMDB lookup.
func (m *Metrics) RecordMetadataFetch(operation string, found bool, seconds float64) {
	outcome := "absent"
	if found {
		outcome = "found"
	}
	m.MetadataFetchesTotal.WithLabelValues(operation, outcome).Inc()
	m.MetadataFetchDuration.WithLabelValues(operation).Observe(seconds)
}

// RecordRecommendation counts an answered query and its result size.
func (m *Metrics) RecordRecommendation(mode string, results int) {
	m.RecommendationsTotal.WithLabelValues(mode).Inc()
	m.RecommendationResults.WithLabelValues(mode).Observe(float64(results))
}
