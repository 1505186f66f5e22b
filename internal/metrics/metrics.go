// Package metrics exposes run counters for daemon mode.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/raoulx24/logkeeper/internal/report"
)

type Metrics struct {
	registry *prometheus.Registry

	runsTotal      *prometheus.CounterVec
	filesTotal     *prometheus.CounterVec
	bytesReclaimed prometheus.Counter
	runDuration    prometheus.Histogram
}

func New(namespace string) *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "runs_total",
				Help:      "Total number of retention runs",
			},
			[]string{"status"},
		),
		filesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "files_total",
				Help:      "Files processed, by action outcome",
			},
			[]string{"action"},
		),
		bytesReclaimed: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "bytes_reclaimed_total",
				Help:      "Total bytes freed by compression and deletion",
			},
		),
		runDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "run_duration_seconds",
				Help:      "Duration of retention runs",
				Buckets:   []float64{.1, .5, 1, 5, 10, 30, 60, 300},
			},
		),
	}

	reg.MustRegister(m.runsTotal, m.filesTotal, m.bytesReclaimed, m.runDuration)

	return m
}

// Handler serves the registry over HTTP.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRun folds a finished run summary into the counters.
func (m *Metrics) ObserveRun(sum *report.Summary, status string) {
	m.runsTotal.WithLabelValues(status).Inc()
	m.filesTotal.WithLabelValues("compress").Add(float64(sum.Compressed))
	m.filesTotal.WithLabelValues("delete").Add(float64(sum.Deleted))
	m.filesTotal.WithLabelValues("failed").Add(float64(sum.Failed))
	if sum.BytesFreed > 0 {
		m.bytesReclaimed.Add(float64(sum.BytesFreed))
	}
	if !sum.Finished.IsZero() {
		m.runDuration.Observe(sum.Finished.Sub(sum.Started).Seconds())
	}
}
