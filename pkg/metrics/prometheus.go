// Package metrics provides Prometheus metrics for the Mingle recommendation service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Recommendation kind labels.
const (
	KindActivity = "activity"
	KindEvent    = "event"
	KindFriend   = "friend"
)

// Manager manages all Prometheus metrics for the Mingle service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Core Business Metrics - What really matters for a recommender
	recommendationsServed *prometheus.CounterVec
	recommendationLatency *prometheus.HistogramVec
	recommendationResults *prometheus.HistogramVec
	emptyRecommendations  *prometheus.CounterVec
	recommendationErrors  *prometheus.CounterVec

	// Directory Metrics - Snapshot store size and performance
	directoryAccounts      prometheus.Gauge
	directoryActivities    prometheus.Gauge
	directoryEvents        prometheus.Gauge
	directoryUpserts       *prometheus.CounterVec
	directoryUpsertLatency prometheus.Histogram

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Enhanced Error Metrics - Detailed error tracking
	errorRateByEndpoint *prometheus.CounterVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "mingle",
		subsystem:        "recommender",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		metricPrefix:     "",
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	// Initialize metrics
	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	// Ensure metrics are registered on the configured registry (custom by default)
	auto := promauto.With(m.registry)

	// Core Business Metrics - Focus on recommendation quality and throughput
	m.recommendationsServed = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "recommendations_served_total",
			Help:      "Total number of recommendation lists served, by kind",
		},
		[]string{"kind"},
	)

	m.recommendationLatency = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "recommendation_latency_milliseconds",
			Help:      "Histogram of recommendation computation latency in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"kind"},
	)

	m.recommendationResults = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "recommendation_result_count",
			Help:      "Histogram of result list sizes per recommendation",
			Buckets:   []float64{0, 1, 2, 3, 4, 5, 10, 15},
		},
		[]string{"kind"},
	)

	m.emptyRecommendations = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "recommendations_empty_total",
			Help:      "Total number of recommendations that returned no results (candidate scarcity indicator)",
		},
		[]string{"kind"},
	)

	m.recommendationErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "recommendation_errors_total",
			Help:      "Total number of recommendation failures, by kind",
		},
		[]string{"kind"},
	)

	// Directory Metrics - Snapshot store scale indicators
	m.directoryAccounts = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "directory_accounts",
		Help:      "Number of accounts currently in the directory",
	})

	m.directoryActivities = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "directory_activities",
		Help:      "Number of activities currently in the directory",
	})

	m.directoryEvents = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "directory_events",
		Help:      "Number of events currently in the directory",
	})

	m.directoryUpserts = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "directory_upserts_total",
			Help:      "Total number of entities written to the directory, by entity type",
		},
		[]string{"entity"},
	)

	m.directoryUpsertLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "directory_upsert_latency_milliseconds",
		Help:      "Directory upsert operation latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	// HTTP Performance Metrics - User experience indicators
	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds (user experience)",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	// Enhanced Error Metrics - Detailed error tracking
	m.errorRateByEndpoint = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_endpoint_total",
			Help:      "Total number of errors by endpoint",
		},
		[]string{"endpoint", "method", "error_type"},
	)

	// System Performance Metrics
	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_usage_bytes",
		Help:      "System memory usage in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutine_count",
		Help:      "Number of goroutines",
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_gc_pause_time_milliseconds",
		Help:      "GC pause time in milliseconds",
		Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
	})
}

// RecordRecommendation records a served recommendation with its latency and size.
func RecordRecommendation(kind string, latencyMs float64, resultCount int) {
	globalManager.recommendationsServed.WithLabelValues(kind).Inc()
	globalManager.recommendationLatency.WithLabelValues(kind).Observe(latencyMs)
	globalManager.recommendationResults.WithLabelValues(kind).Observe(float64(resultCount))
	if resultCount == 0 {
		globalManager.emptyRecommendations.WithLabelValues(kind).Inc()
	}
}

// RecordRecommendationError increments the failure counter for a kind.
func RecordRecommendationError(kind string) {
	globalManager.recommendationErrors.WithLabelValues(kind).Inc()
}

// UpdateDirectorySizes sets the current directory entity counts.
func UpdateDirectorySizes(accounts, activities, events int) {
	globalManager.directoryAccounts.Set(float64(accounts))
	globalManager.directoryActivities.Set(float64(activities))
	globalManager.directoryEvents.Set(float64(events))
}

// RecordDirectoryUpsert records a batch write to the directory.
func RecordDirectoryUpsert(entity string, count int, latencyMs float64) {
	globalManager.directoryUpserts.WithLabelValues(entity).Add(float64(count))
	globalManager.directoryUpsertLatency.Observe(latencyMs)
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// System Performance Metrics Functions.

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
