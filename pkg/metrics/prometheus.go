// Package metrics provides Prometheus metrics for the joust ranking service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus instruments for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Engine metrics - session lifecycle and vote flow
	sessionsStarted   *prometheus.CounterVec
	sessionsCompleted prometheus.Counter
	sessionsFinalized prometheus.Counter
	votesProcessed    prometheus.Counter
	voteFailures      *prometheus.CounterVec
	voteRetries       prometheus.Counter
	voteLatency       prometheus.Histogram
	poolsCreated      prometheus.Counter

	// Operational gauges - fed periodically from service stats
	sessionsStored prometheus.Gauge
	catalogItems   prometheus.Gauge

	// Store metrics
	storeOpLatency *prometheus.HistogramVec
	storeConflicts prometheus.Counter

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers all instruments.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "joust",
		subsystem:        "ranking",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.sessionsStarted = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "sessions_started_total",
			Help:      "Total number of ranking sessions started, by pool size",
		},
		[]string{"pool_size"},
	)

	m.sessionsCompleted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sessions_completed_total",
		Help:      "Total number of sessions that reached completion",
	})

	m.sessionsFinalized = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sessions_finalized_total",
		Help:      "Total number of explicit finalize calls",
	})

	m.votesProcessed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "votes_total",
		Help:      "Total number of votes applied",
	})

	m.voteFailures = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "vote_failures_total",
			Help:      "Total number of rejected votes, by reason",
		},
		[]string{"reason"},
	)

	m.voteRetries = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "vote_retries_total",
		Help:      "Total number of read-modify-write retries after store conflicts",
	})

	m.voteLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "vote_latency_milliseconds",
		Help:      "Histogram of vote application latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.poolsCreated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "custom_pools_created_total",
		Help:      "Total number of custom pools created",
	})

	m.sessionsStored = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sessions_stored",
		Help:      "Number of sessions currently held by the store",
	})

	m.catalogItems = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "catalog_items",
		Help:      "Number of items in the loaded catalog",
	})

	m.storeOpLatency = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "store_op_latency_milliseconds",
			Help:      "Store operation latency in milliseconds, by operation",
			Buckets:   m.histogramBuckets,
		},
		[]string{"op"},
	)

	m.storeConflicts = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_conflicts_total",
		Help:      "Total number of optimistic version conflicts seen by the store",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint, method and status",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)
}

// RecordSessionStarted increments the started-sessions counter for a pool size.
func RecordSessionStarted(poolSize string) {
	globalManager.sessionsStarted.WithLabelValues(poolSize).Inc()
}

// RecordSessionCompleted increments the completed-sessions counter.
func RecordSessionCompleted() {
	globalManager.sessionsCompleted.Inc()
}

// RecordSessionFinalized increments the finalize counter.
func RecordSessionFinalized() {
	globalManager.sessionsFinalized.Inc()
}

// RecordVote increments the applied-votes counter.
func RecordVote() {
	globalManager.votesProcessed.Inc()
}

// RecordVoteFailure increments the rejected-votes counter for a reason.
func RecordVoteFailure(reason string) {
	globalManager.voteFailures.WithLabelValues(reason).Inc()
}

// RecordVoteRetry increments the conflict-retry counter.
func RecordVoteRetry() {
	globalManager.voteRetries.Inc()
}

// RecordVoteLatency records vote application latency in milliseconds.
func RecordVoteLatency(latencyMs float64) {
	globalManager.voteLatency.Observe(latencyMs)
}

// RecordPoolCreated increments the custom-pools counter.
func RecordPoolCreated() {
	globalManager.poolsCreated.Inc()
}

// UpdateSessionsStored sets the stored-sessions gauge.
func UpdateSessionsStored(count int) {
	globalManager.sessionsStored.Set(float64(count))
}

// UpdateCatalogItems sets the catalog size gauge.
func UpdateCatalogItems(count int) {
	globalManager.catalogItems.Set(float64(count))
}

// RecordStoreOpLatency records one store operation's latency in milliseconds.
func RecordStoreOpLatency(op string, latencyMs float64) {
	globalManager.storeOpLatency.WithLabelValues(op).Observe(latencyMs)
}

// RecordStoreConflict increments the version-conflict counter.
func RecordStoreConflict() {
	globalManager.storeConflicts.Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
