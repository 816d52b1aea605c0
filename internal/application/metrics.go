package application

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains Prometheus metrics for the working-hours engine. A nil
// *Metrics is valid and records nothing, which keeps tests free of global
// registry collisions.
type Metrics struct {
	evaluations   *prometheus.CounterVec
	configUpdates *prometheus.CounterVec
}

// NewMetrics creates a Metrics instance registered with the default
// Prometheus registerer.
func NewMetrics() *Metrics {
	return &Metrics{
		evaluations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "workinghours_evaluations_total",
				Help: "Total number of working-hours evaluations by decision reason",
			},
			[]string{"reason"},
		),
		configUpdates: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "workinghours_config_updates_total",
				Help: "Total number of configuration replacement attempts",
			},
			[]string{"collection", "result"},
		),
	}
}

func (m *Metrics) observeEvaluation(reason string) {
	if m == nil {
		return
	}
	m.evaluations.WithLabelValues(reason).Inc()
}

func (m *Metrics) observeConfigUpdate(collection, result string) {
	if m == nil {
		return
	}
	m.configUpdates.WithLabelValues(collection, result).Inc()
}
