// Package metrics provides Prometheus metrics for the fairdraw service.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the fairdraw service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Draw pipeline metrics
	drawsGenerated      prometheus.Counter
	drawErrors          *prometheus.CounterVec
	drawLatency         prometheus.Histogram
	drawRecoveries      *prometheus.CounterVec
	forcedRepeats       prometheus.Counter
	matchesPerDraw      prometheus.Histogram
	participantsPerDraw prometheus.Histogram

	// Repository metrics
	storedDraws             prometheus.Gauge
	repositoryUpdateLatency prometheus.Histogram
	repositoryQueryLatency  prometheus.Histogram

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error metrics
	errorRateByComponent *prometheus.CounterVec
	errorRateByType      *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec
	errorLatency         *prometheus.HistogramVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "fairdraw",
		subsystem:        "draw",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) name(n string) string { return m.metricPrefix + n }

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		Buckets:     buckets,
		ConstLabels: m.customLabels,
	}
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)

	m.drawsGenerated = auto.NewCounter(m.counterOpts("draws_generated_total",
		"Total number of draws generated"))
	m.drawErrors = auto.NewCounterVec(m.counterOpts("draw_errors_total",
		"Total number of draws that failed, by error kind"), []string{"kind"})
	m.drawLatency = auto.NewHistogram(m.histogramOpts("draw_latency_milliseconds",
		"Time to compute a full draw in milliseconds", m.histogramBuckets))
	m.drawRecoveries = auto.NewCounterVec(m.counterOpts("draw_recoveries_total",
		"Units moved by recovery steps while building draws"), []string{"step"})
	m.forcedRepeats = auto.NewCounter(m.counterOpts("draw_forced_repeats_total",
		"Total number of back-to-back appearances the sequencer could not avoid"))
	m.matchesPerDraw = auto.NewHistogram(m.histogramOpts("matches_per_draw",
		"Number of matches per generated draw", prometheus.ExponentialBuckets(1, 2, 12)))
	m.participantsPerDraw = auto.NewHistogram(m.histogramOpts("participants_per_draw",
		"Number of participants per generated draw", prometheus.ExponentialBuckets(1, 2, 10)))

	m.storedDraws = auto.NewGauge(m.gaugeOpts("stored_draws",
		"Number of draws held by the store"))
	m.repositoryUpdateLatency = auto.NewHistogram(m.histogramOpts("repository_update_latency_milliseconds",
		"Repository update operation latency in milliseconds", m.histogramBuckets))
	m.repositoryQueryLatency = auto.NewHistogram(m.histogramOpts("repository_query_latency_milliseconds",
		"Repository query operation latency in milliseconds", m.histogramBuckets))

	m.httpRequests = auto.NewCounterVec(m.counterOpts("http_requests_total",
		"Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(m.histogramOpts("http_request_duration_milliseconds",
		"HTTP request duration in milliseconds", m.histogramBuckets),
		[]string{"endpoint", "method", "status_code"})

	m.errorRateByComponent = auto.NewCounterVec(m.counterOpts("errors_by_component_total",
		"Total number of errors by component"), []string{"component", "error_type"})
	m.errorRateByType = auto.NewCounterVec(m.counterOpts("errors_by_type_total",
		"Total number of errors by type"), []string{"error_type", "severity"})
	m.errorRateByEndpoint = auto.NewCounterVec(m.counterOpts("errors_by_endpoint_total",
		"Total number of errors by endpoint"), []string{"endpoint", "method", "error_type"})
	m.errorLatency = auto.NewHistogramVec(m.histogramOpts("error_latency_milliseconds",
		"Latency of operations that resulted in errors", m.histogramBuckets),
		[]string{"component", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_usage_bytes",
		"System memory usage in bytes"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutine_count",
		"Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(m.histogramOpts("system_gc_pause_time_milliseconds",
		"GC pause time in milliseconds", []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000}))
}

// RecordDraw records a successfully generated draw.
func (m *Manager) RecordDraw(participants, matches int, latencyMs float64) {
	if !m.enabled {
		return
	}
	m.drawsGenerated.Inc()
	m.participantsPerDraw.Observe(float64(participants))
	m.matchesPerDraw.Observe(float64(matches))
	m.drawLatency.Observe(latencyMs)
}

// RecordDrawError counts a failed draw by error kind.
func (m *Manager) RecordDrawError(kind string) {
	if !m.enabled {
		return
	}
	m.drawErrors.WithLabelValues(kind).Inc()
}

// RecordRecovery adds n units moved by the named recovery step. Zero is a
// no-op so callers can report every step unconditionally.
func (m *Manager) RecordRecovery(step string, n int) {
	if !m.enabled || n <= 0 {
		return
	}
	m.drawRecoveries.WithLabelValues(step).Add(float64(n))
}

// RecordForcedRepeats adds n unavoidable back-to-back appearances.
func (m *Manager) RecordForcedRepeats(n int) {
	if !m.enabled || n <= 0 {
		return
	}
	m.forcedRepeats.Add(float64(n))
}

// UpdateStoredDraws sets the stored draw gauge.
func (m *Manager) UpdateStoredDraws(count int) {
	if !m.enabled {
		return
	}
	m.storedDraws.Set(float64(count))
}

// RecordRepositoryUpdateLatency records a store write latency in milliseconds.
func (m *Manager) RecordRepositoryUpdateLatency(latencyMs float64) {
	if !m.enabled {
		return
	}
	m.repositoryUpdateLatency.Observe(latencyMs)
}

// RecordRepositoryQueryLatency records a store read latency in milliseconds.
func (m *Manager) RecordRepositoryQueryLatency(latencyMs float64) {
	if !m.enabled {
		return
	}
	m.repositoryQueryLatency.Observe(latencyMs)
}

// RecordHTTPRequest counts an HTTP request.
func (m *Manager) RecordHTTPRequest(endpoint, method string, statusCode int) {
	if !m.enabled {
		return
	}
	m.httpRequests.WithLabelValues(endpoint, method, strconv.Itoa(statusCode)).Inc()
}

// RecordHTTPRequestDuration records an HTTP request duration in milliseconds.
func (m *Manager) RecordHTTPRequestDuration(endpoint, method string, statusCode int, durationMs float64) {
	if !m.enabled {
		return
	}
	m.httpRequestDuration.WithLabelValues(endpoint, method, strconv.Itoa(statusCode)).Observe(durationMs)
}

// RecordErrorByComponent counts an error raised by a component.
func (m *Manager) RecordErrorByComponent(component, errorType string) {
	if !m.enabled {
		return
	}
	m.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByType counts an error by type and severity.
func (m *Manager) RecordErrorByType(errorType, severity string) {
	if !m.enabled {
		return
	}
	m.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint counts an error returned by an HTTP endpoint.
func (m *Manager) RecordErrorByEndpoint(endpoint, method, errorType string) {
	if !m.enabled {
		return
	}
	m.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorLatency records the latency of a failed operation.
func (m *Manager) RecordErrorLatency(component, errorType string, latencyMs float64) {
	if !m.enabled {
		return
	}
	m.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// UpdateSystemMemoryUsage sets the memory gauge.
func (m *Manager) UpdateSystemMemoryUsage(bytes uint64) {
	if !m.enabled {
		return
	}
	m.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine gauge.
func (m *Manager) UpdateSystemGoroutineCount(count int) {
	if !m.enabled {
		return
	}
	m.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func (m *Manager) RecordSystemGCPauseTime(pauseMs float64) {
	if !m.enabled {
		return
	}
	m.systemGCPauseTime.Observe(pauseMs)
}

// Package-level helpers record on the global manager.

// RecordDraw records a successfully generated draw.
func RecordDraw(participants, matches int, latencyMs float64) {
	globalManager.RecordDraw(participants, matches, latencyMs)
}

// RecordDrawError counts a failed draw by error kind.
func RecordDrawError(kind string) { globalManager.RecordDrawError(kind) }

// RecordRecovery adds n units moved by the named recovery step.
func RecordRecovery(step string, n int) { globalManager.RecordRecovery(step, n) }

// RecordForcedRepeats adds n unavoidable back-to-back appearances.
func RecordForcedRepeats(n int) { globalManager.RecordForcedRepeats(n) }

// UpdateStoredDraws sets the stored draw gauge.
func UpdateStoredDraws(count int) { globalManager.UpdateStoredDraws(count) }

// RecordRepositoryUpdateLatency records a store write latency in milliseconds.
func RecordRepositoryUpdateLatency(latencyMs float64) {
	globalManager.RecordRepositoryUpdateLatency(latencyMs)
}

// RecordRepositoryQueryLatency records a store read latency in milliseconds.
func RecordRepositoryQueryLatency(latencyMs float64) {
	globalManager.RecordRepositoryQueryLatency(latencyMs)
}

// RecordHTTPRequest counts an HTTP request.
func RecordHTTPRequest(endpoint, method string, statusCode int) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode)
}

// RecordHTTPRequestDuration records an HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method string, statusCode int, durationMs float64) {
	globalManager.RecordHTTPRequestDuration(endpoint, method, statusCode, durationMs)
}

// RecordErrorByComponent counts an error raised by a component.
func RecordErrorByComponent(component, errorType string) {
	globalManager.RecordErrorByComponent(component, errorType)
}

// RecordErrorByType counts an error by type and severity.
func RecordErrorByType(errorType, severity string) {
	globalManager.RecordErrorByType(errorType, severity)
}

// RecordErrorByEndpoint counts an error returned by an HTTP endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.RecordErrorByEndpoint(endpoint, method, errorType)
}

// RecordErrorLatency records the latency of a failed operation.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	globalManager.RecordErrorLatency(component, errorType, latencyMs)
}

// UpdateSystemMemoryUsage sets the memory gauge.
func UpdateSystemMemoryUsage(bytes uint64) { globalManager.UpdateSystemMemoryUsage(bytes) }

// UpdateSystemGoroutineCount sets the goroutine gauge.
func UpdateSystemGoroutineCount(count int) { globalManager.UpdateSystemGoroutineCount(count) }

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) { globalManager.RecordSystemGCPauseTime(pauseMs) }

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
