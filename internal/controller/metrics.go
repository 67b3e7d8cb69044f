package controller

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	globalMetrics *Metrics
	metricsOnce   sync.Once
)

// Metrics holds Prometheus metrics for project operations.
type Metrics struct {
	OperationsTotal   *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec
	CachedProjects    prometheus.Gauge
	Loading           prometheus.Gauge
}

// NewMetrics registers the operation metrics once per process.
//
// Metrics:
//   - projectdeck_operations_total{operation,outcome}
//   - projectdeck_operation_duration_seconds{operation}
//   - projectdeck_cached_projects
//   - projectdeck_loading
func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		globalMetrics = &Metrics{
			OperationsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "projectdeck_operations_total",
					Help: "Total number of project operations by outcome",
				},
				[]string{"operation", "outcome"},
			),
			OperationDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "projectdeck_operation_duration_seconds",
					Help:    "Duration of remote project requests in seconds",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"operation"},
			),
			CachedProjects: promauto.NewGauge(
				prometheus.GaugeOpts{
					Name: "projectdeck_cached_projects",
					Help: "Number of projects in the local cache",
				},
			),
			Loading: promauto.NewGauge(
				prometheus.GaugeOpts{
					Name: "projectdeck_loading",
					Help: "Number of list reloads in flight",
				},
			),
		}
	})
	return globalMetrics
}

func (m *Metrics) observe(op string, outcome Outcome) {
	if m == nil {
		return
	}
	m.OperationsTotal.WithLabelValues(op, outcome.String()).Inc()
}
