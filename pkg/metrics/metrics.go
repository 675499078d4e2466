package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	Namespace = "charity_indexer"

	// Status label values for success/error metrics
	StatusSuccess = "success"
	StatusError   = "error"
)

// Labels holds constant labels applied to all metrics. These distinguish
// metrics from multiple indexer instances scraping into one Prometheus.
type Labels struct {
	ProcessorName string // checkpoint processor name (e.g., "main_indexer")
	Environment   string // deployment environment (e.g., "production", "staging")
}

// toPrometheusLabels converts Labels to prometheus.Labels map.
// Only non-empty labels are included to avoid empty label values.
func (l Labels) toPrometheusLabels() prometheus.Labels {
	labels := prometheus.Labels{}
	if l.ProcessorName != "" {
		labels["processor_name"] = l.ProcessorName
	}
	if l.Environment != "" {
		labels["environment"] = l.Environment
	}
	return labels
}

type Metrics struct {
	// Sync pass lifecycle
	passes       *prometheus.CounterVec
	passDuration prometheus.Histogram

	// Event flow
	eventsFetched *prometheus.CounterVec
	fetchErrors   *prometheus.CounterVec
	eventsApplied *prometheus.CounterVec

	// Checkpoint state
	checkpointVersion prometheus.Gauge
	checkpointWrites  *prometheus.CounterVec
}

// New creates a new Metrics instance and registers all metrics with the provided registerer.
// Returns an error if any metric registration fails.
// For metrics with constant labels (e.g., processor_name), use NewWithLabels instead.
func New(reg prometheus.Registerer) (*Metrics, error) {
	return NewWithLabels(reg, Labels{})
}

// NewWithLabels creates a new Metrics instance with constant labels applied to all metrics.
func NewWithLabels(reg prometheus.Registerer, labels Labels) (*Metrics, error) {
	promLabels := labels.toPrometheusLabels()
	if len(promLabels) > 0 {
		reg = prometheus.WrapRegistererWith(promLabels, reg)
	}

	return newMetrics(reg)
}

func newMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		passes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "passes_total",
			Help:      "Total number of sync passes by status",
		}, []string{"status"}),
		passDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "pass_duration_seconds",
			Help:      "Time to run a single sync pass end-to-end",
			Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		}),
		eventsFetched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "events_fetched_total",
			Help:      "Total events fetched from the event source by kind",
		}, []string{"kind"}),
		fetchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "fetch_errors_total",
			Help:      "Total event fetch failures by kind",
		}, []string{"kind"}),
		eventsApplied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "events_applied_total",
			Help:      "Total events handed to transformers by kind and status",
		}, []string{"kind", "status"}),
		checkpointVersion: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "checkpoint_version",
			Help:      "Last processed transaction version recorded in the checkpoint",
		}),
		checkpointWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "checkpoint_writes_total",
			Help:      "Total checkpoint write attempts by status",
		}, []string{"status"}),
	}

	err := errors.Join(
		reg.Register(m.passes),
		reg.Register(m.passDuration),
		reg.Register(m.eventsFetched),
		reg.Register(m.fetchErrors),
		reg.Register(m.eventsApplied),
		reg.Register(m.checkpointVersion),
		reg.Register(m.checkpointWrites),
	)
	if err != nil {
		return nil, err
	}

	return m, nil
}

// RecordPass records the outcome and duration of one sync pass.
func (m *Metrics) RecordPass(err error, durationSeconds float64) {
	if m == nil {
		return
	}
	status := StatusSuccess
	if err != nil {
		status = StatusError
	}
	m.passes.WithLabelValues(status).Inc()
	m.passDuration.Observe(durationSeconds)
}

// AddEventsFetched increments the fetched counter for a kind.
func (m *Metrics) AddEventsFetched(kind string, count int) {
	if m == nil {
		return
	}
	m.eventsFetched.WithLabelValues(kind).Add(float64(count))
}

// IncFetchError increments the fetch failure counter for a kind.
func (m *Metrics) IncFetchError(kind string) {
	if m == nil {
		return
	}
	m.fetchErrors.WithLabelValues(kind).Inc()
}

// RecordEventApplied records one transformer application for a kind.
func (m *Metrics) RecordEventApplied(kind string, err error) {
	if m == nil {
		return
	}
	status := StatusSuccess
	if err != nil {
		status = StatusError
	}
	m.eventsApplied.WithLabelValues(kind, status).Inc()
}

// SetCheckpointVersion updates the checkpoint version gauge.
func (m *Metrics) SetCheckpointVersion(version uint64) {
	if m == nil {
		return
	}
	m.checkpointVersion.Set(float64(version))
}

// RecordCheckpointWrite records one checkpoint write attempt.
func (m *Metrics) RecordCheckpointWrite(err error) {
	if m == nil {
		return
	}
	status := StatusSuccess
	if err != nil {
		status = StatusError
	}
	m.checkpointWrites.WithLabelValues(status).Inc()
}
