package store

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains Prometheus metrics for store operations.
// A nil *Metrics is valid and records nothing, so stores constructed without
// WithMetrics pay no observability cost.
type Metrics struct {
	operations   *prometheus.CounterVec
	records      prometheus.Gauge
	saveDuration prometheus.Histogram
	saveErrors   prometheus.Counter
	loadSkipped  prometheus.Counter
}

// NewMetrics creates a Metrics instance registered on the default Prometheus
// registry. Call at most once per process.
func NewMetrics() *Metrics {
	return &Metrics{
		operations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "folio_store_operations_total",
				Help: "Total number of store operations by kind",
			},
			[]string{"operation"},
		),

		records: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "folio_store_records",
				Help: "Current number of records in the store",
			},
		),

		saveDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "folio_store_save_duration_seconds",
				Help:    "Duration of whole-store serialization in seconds",
				Buckets: prometheus.ExponentialBuckets(0.0001, 2, 12), // 100µs to ~400ms
			},
		),

		saveErrors: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "folio_store_save_errors_total",
				Help: "Total number of failed store serializations",
			},
		),

		loadSkipped: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "folio_store_load_skipped_lines_total",
				Help: "Total number of malformed lines skipped during load",
			},
		),
	}
}

func (m *Metrics) recordOp(op string) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(op).Inc()
}

func (m *Metrics) setRecords(n int) {
	if m == nil {
		return
	}
	m.records.Set(float64(n))
}

func (m *Metrics) observeSave(d time.Duration) {
	if m == nil {
		return
	}
	m.saveDuration.Observe(d.Seconds())
}

func (m *Metrics) recordSaveError() {
	if m == nil {
		return
	}
	m.saveErrors.Inc()
}

func (m *Metrics) recordLoadSkipped() {
	if m == nil {
		return
	}
	m.loadSkipped.Inc()
}
