package metrics

import (
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

// Store operation outcomes.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// resultBuckets covers the usual top-N sizes.
var resultBuckets = []float64{0, 1, 2, 5, 10, 20, 50, 100} //nolint:gochecknoglobals // fixed bucket layout

// Manager owns the jobmatch metric set.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         *prometheus.Registry

	// Engine
	registrations *prometheus.CounterVec
	queries       *prometheus.CounterVec
	queryLatency  *prometheus.HistogramVec
	queryResults  *prometheus.HistogramVec

	// Index sizes
	jobs      prometheus.Gauge
	users     prometheus.Gauge
	titles    prometheus.Gauge
	skills    prometheus.Gauge
	locations prometheus.Gauge

	// Batch recommendation pool
	batchWorkers  prometheus.Gauge
	batchDuration prometheus.Histogram

	// Persistence
	storeOps     *prometheus.CounterVec
	storeLatency *prometheus.HistogramVec

	errorsByComponent *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager. Without WithPrometheusRegistry the
// manager gets a fresh registry of its own.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "jobmatch",
		subsystem:        "engine",
		histogramBuckets: prometheus.DefBuckets,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
		Buckets:     buckets,
	}
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.registrations = auto.NewCounterVec(
		m.counterOpts("registrations_total", "Total number of registered entities by kind"),
		[]string{"kind"},
	)
	m.queries = auto.NewCounterVec(
		m.counterOpts("queries_total", "Total number of engine queries by operation"),
		[]string{"operation"},
	)
	m.queryLatency = auto.NewHistogramVec(
		m.histogramOpts("query_latency_milliseconds", "Engine query latency in milliseconds", m.histogramBuckets),
		[]string{"operation"},
	)
	m.queryResults = auto.NewHistogramVec(
		m.histogramOpts("query_results", "Number of results returned per query", resultBuckets),
		[]string{"operation"},
	)

	m.jobs = auto.NewGauge(m.gaugeOpts("jobs", "Number of registered jobs"))
	m.users = auto.NewGauge(m.gaugeOpts("users", "Number of registered users"))
	m.titles = auto.NewGauge(m.gaugeOpts("unique_titles", "Distinct titles in the title index"))
	m.skills = auto.NewGauge(m.gaugeOpts("unique_skills", "Distinct skills in the skill index"))
	m.locations = auto.NewGauge(m.gaugeOpts("locations", "Number of locations in the graph"))

	m.batchWorkers = auto.NewGauge(m.gaugeOpts("batch_workers", "Workers used by the last batch recommendation run"))
	m.batchDuration = auto.NewHistogram(
		m.histogramOpts("batch_duration_milliseconds", "Batch recommendation run duration in milliseconds", m.histogramBuckets),
	)

	m.storeOps = auto.NewCounterVec(
		m.counterOpts("store_operations_total", "Snapshot store operations by operation and status"),
		[]string{"operation", "status"},
	)
	m.storeLatency = auto.NewHistogramVec(
		m.histogramOpts("store_latency_milliseconds", "Snapshot store latency in milliseconds", m.histogramBuckets),
		[]string{"operation"},
	)

	m.errorsByComponent = auto.NewCounterVec(
		m.counterOpts("errors_by_component_total", "Total number of errors by component"),
		[]string{"component", "error_type"},
	)
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// RecordRegistration counts a registered job, user, location or road.
func (m *Manager) RecordRegistration(kind string) {
	m.registrations.WithLabelValues(kind).Inc()
}

// RecordQuery counts a query and observes its latency and result size.
func (m *Manager) RecordQuery(operation string, elapsed time.Duration, results int) {
	m.queries.WithLabelValues(operation).Inc()
	m.queryLatency.WithLabelValues(operation).Observe(millis(elapsed))
	m.queryResults.WithLabelValues(operation).Observe(float64(results))
}

// UpdateIndexSizes sets the index size gauges.
func (m *Manager) UpdateIndexSizes(jobs, users, titles, skills, locations int) {
	m.jobs.Set(float64(jobs))
	m.users.Set(float64(users))
	m.titles.Set(float64(titles))
	m.skills.Set(float64(skills))
	m.locations.Set(float64(locations))
}

// RecordBatch records a batch recommendation run.
func (m *Manager) RecordBatch(workers int, elapsed time.Duration) {
	m.batchWorkers.Set(float64(workers))
	m.batchDuration.Observe(millis(elapsed))
}

// RecordStoreOp records a snapshot store operation; err selects the status label.
func (m *Manager) RecordStoreOp(operation string, elapsed time.Duration, err error) {
	status := StatusOK
	if err != nil {
		status = StatusError
	}
	m.storeOps.WithLabelValues(operation, status).Inc()
	m.storeLatency.WithLabelValues(operation).Observe(millis(elapsed))
}

// RecordError records an error with component and type labels.
func (m *Manager) RecordError(component, errorType string) {
	m.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// Registry returns the registry the manager's metrics live on.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// WriteText renders every gathered metric family in the Prometheus text format.
func (m *Manager) WriteText(w io.Writer) error {
	families, err := m.registry.Gather()
	if err != nil {
		return fmt.Errorf("%w: gather: %w", ErrWriteFailed, err)
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("%w: encode %s: %w", ErrWriteFailed, mf.GetName(), err)
		}
	}
	return nil
}

// Default returns the process-wide manager.
func Default() *Manager {
	return globalManager
}
