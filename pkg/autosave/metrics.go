package autosave

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains Prometheus metrics for the persistence loop.
// A nil *Metrics records nothing.
type Metrics struct {
	ticks    *prometheus.CounterVec
	lastSave prometheus.Gauge
}

// NewMetrics creates a Metrics instance registered on the default Prometheus
// registry. Call at most once per process.
func NewMetrics() *Metrics {
	return &Metrics{
		ticks: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "folio_autosave_ticks_total",
				Help: "Total number of persistence ticks by result",
			},
			[]string{"result"},
		),

		lastSave: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "folio_autosave_last_save_timestamp_seconds",
				Help: "Unix timestamp of the last successful save",
			},
		),
	}
}

func (m *Metrics) recordTick(result string) {
	if m == nil {
		return
	}
	m.ticks.WithLabelValues(result).Inc()
}

func (m *Metrics) setLastSave(t time.Time) {
	if m == nil {
		return
	}
	m.lastSave.Set(float64(t.Unix()))
}
