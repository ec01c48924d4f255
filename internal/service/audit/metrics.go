package audit

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts audit writes.
type Metrics struct {
	Saves        *prometheus.CounterVec
	BulkItems    *prometheus.CounterVec
	SaveDuration prometheus.Histogram
}

// NewMetrics registers the audit metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Saves: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "regaudit_audit_saves_total",
			Help: "Audit upserts by result (created, updated, failed)",
		}, []string{"result"}),
		BulkItems: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "regaudit_audit_bulk_items_total",
			Help: "Bulk-save items by result (succeeded, failed)",
		}, []string{"result"}),
		SaveDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "regaudit_audit_save_duration_seconds",
			Help:    "Duration of a single audit upsert",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

func (m *Metrics) observeSave(result string, seconds float64) {
	if m == nil {
		return
	}
	m.Saves.WithLabelValues(result).Inc()
	m.SaveDuration.Observe(seconds)
}

func (m *Metrics) observeBulk(succeeded, failed int) {
	if m == nil {
		return
	}
	m.BulkItems.WithLabelValues("succeeded").Add(float64(succeeded))
	m.BulkItems.WithLabelValues("failed").Add(float64(failed))
}
