package catalog

import (
	"errors"
	"time"

	"catalog-sync/core/reconcile"
	"catalog-sync/feature/catalog/models"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes import outcomes to Prometheus.
type Metrics struct {
	runs        *prometheus.CounterVec
	created     *prometheus.CounterVec
	orphans     prometheus.Counter
	duration    prometheus.Histogram
	lastSuccess prometheus.Gauge
}

// NewMetrics creates the catalog metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_import_runs_total",
			Help: "Catalog imports by outcome.",
		}, []string{"status"}),
		created: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_import_created_total",
			Help: "Rows created by catalog imports.",
		}, []string{"entity"}),
		orphans: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "catalog_import_orphans_removed_total",
			Help: "Printings without external id removed by imports.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "catalog_import_duration_seconds",
			Help:    "Duration of catalog imports.",
			Buckets: []float64{10, 30, 60, 120, 300, 600, 1200, 2400},
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "catalog_import_last_success_timestamp_seconds",
			Help: "Unix time of the last successful import.",
		}),
	}
	reg.MustRegister(m.runs, m.created, m.orphans, m.duration, m.lastSuccess)
	return m
}

// observe records one finished run. It is a no-op on a nil receiver.
func (m *Metrics) observe(stats *models.ImportStats, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.duration.Observe(elapsed.Seconds())
	if err != nil {
		m.runs.WithLabelValues(failureStatus(err)).Inc()
		return
	}

	m.runs.WithLabelValues("success").Inc()
	m.created.WithLabelValues("set").Add(float64(nonNegative(stats.Sets)))
	m.created.WithLabelValues("card").Add(float64(nonNegative(stats.Cards)))
	m.created.WithLabelValues("printing").Add(float64(nonNegative(stats.Printings)))
	m.orphans.Add(float64(stats.OrphansRemoved))
	m.lastSuccess.SetToCurrentTime()
}

func failureStatus(err error) string {
	var (
		fetchErr   *reconcile.FetchError
		scopeErr   *reconcile.ScopeError
		recordErr  *reconcile.RecordError
		storageErr *reconcile.StorageError
	)
	switch {
	case errors.As(err, &fetchErr):
		return "fetch_error"
	case errors.As(err, &scopeErr):
		return "scope_error"
	case errors.As(err, &recordErr):
		return "record_error"
	case errors.As(err, &storageErr):
		return "storage_error"
	default:
		return "error"
	}
}

// Counter.Add panics on negative values; a flush can shrink the catalog.
func nonNegative(n int64) int64 {
	if n < 0 {
		return 0
	}
	return n
}
