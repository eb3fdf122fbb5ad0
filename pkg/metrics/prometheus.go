// Package metrics provides Prometheus metrics for spfanalyzer runs.
package metrics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Source labels.
const (
	SourceCurricular      = "curricular"
	SourceExtracurricular = "extracurricular"
)

// Run outcome labels.
const (
	OutcomeSuccess     = "success"
	OutcomeFileOpen    = "file_open"
	OutcomeInvalidTask = "invalid_task"
	OutcomeCanceled    = "canceled"
	OutcomeInternal    = "internal"
)

// Manager manages all Prometheus metrics for an analyzer run.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Input metrics
	recordsRead    *prometheus.CounterVec
	parseFallbacks *prometheus.CounterVec

	// Report metrics
	correlationLookups *prometheus.CounterVec
	rowsWritten        *prometheus.CounterVec

	// Run metrics
	runs          *prometheus.CounterVec
	runDuration   prometheus.Histogram
	lastRunUnixTS prometheus.Gauge
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
		namespace:        "spf",
		subsystem:        "analyzer",
		histogramBuckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.recordsRead = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "records_read_total",
			Help:      "Total number of records read per input source",
		},
		[]string{"source"},
	)

	m.parseFallbacks = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "parse_fallbacks_total",
			Help:      "Numeric fields that did not parse and were recorded as zero",
		},
		[]string{"source", "field"},
	)

	m.correlationLookups = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "correlation_lookups_total",
			Help:      "Extracurricular lookups by record id, by result",
		},
		[]string{"result"},
	)

	m.rowsWritten = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "rows_written_total",
			Help:      "Report rows written, excluding the header",
		},
		[]string{"task"},
	)

	m.runs = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "runs_total",
			Help:      "Analyzer runs by outcome",
		},
		[]string{"outcome"},
	)

	m.runDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "run_duration_seconds",
		Help:      "Wall time of a full analyzer run",
		Buckets:   m.histogramBuckets,
	})

	m.lastRunUnixTS = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "last_run_timestamp_seconds",
		Help:      "Unix time at which the last run finished",
	})
}

// RecordRecordsRead adds n to the records read from source.
func (m *Manager) RecordRecordsRead(source string, n int) {
	m.recordsRead.WithLabelValues(source).Add(float64(n))
}

// RecordParseFallback counts one zero-valued numeric field.
func (m *Manager) RecordParseFallback(source, field string) {
	m.parseFallbacks.WithLabelValues(source, field).Inc()
}

// RecordCorrelationLookup counts one lookup by record id.
func (m *Manager) RecordCorrelationLookup(found bool) {
	result := "miss"
	if found {
		result = "hit"
	}
	m.correlationLookups.WithLabelValues(result).Inc()
}

// RecordRowsWritten adds n to the rows written for task.
func (m *Manager) RecordRowsWritten(task, n int) {
	m.rowsWritten.WithLabelValues(strconv.Itoa(task)).Add(float64(n))
}

// RecordRun records the outcome and duration of a run.
func (m *Manager) RecordRun(outcome string, d time.Duration) {
	m.runs.WithLabelValues(outcome).Inc()
	m.runDuration.Observe(d.Seconds())
	m.lastRunUnixTS.SetToCurrentTime()
}

// RecordRecordsRead adds n to the records read from source.
func RecordRecordsRead(source string, n int) {
	globalManager.RecordRecordsRead(source, n)
}

// RecordParseFallback counts one zero-valued numeric field.
func RecordParseFallback(source, field string) {
	globalManager.RecordParseFallback(source, field)
}

// RecordCorrelationLookup counts one lookup by record id.
func RecordCorrelationLookup(found bool) {
	globalManager.RecordCorrelationLookup(found)
}

// RecordRowsWritten adds n to the rows written for task.
func RecordRowsWritten(task, n int) {
	globalManager.RecordRowsWritten(task, n)
}

// RecordRun records the outcome and duration of a run.
func RecordRun(outcome string, d time.Duration) {
	globalManager.RecordRun(outcome, d)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// WriteTextfile writes the current metrics in the Prometheus text format,
// suitable for the node exporter textfile collector.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, customRegistry); err != nil {
		return fmt.Errorf("%w: %w", ErrExportFailed, err)
	}
	return nil
}
