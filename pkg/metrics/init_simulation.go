package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initSimulationMetrics() {
	r.SimulationsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "gridsim_simulations_total",
			Help: "Total number of cascade simulations by outcome",
		},
		[]string{"outcome"},
	)

	r.SimulationDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gridsim_simulation_duration_seconds",
			Help:    "Cascade simulation duration in seconds",
			Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1.0},
		},
	)

	r.CascadeIterations = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gridsim_cascade_iterations",
			Help:    "Number of cascade loop passes per simulation",
			Buckets: []float64{1, 2, 3, 5, 10, 20, 50},
		},
	)

	r.ComponentFailuresTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "gridsim_component_failures_total",
			Help: "Total number of components deactivated by cascades",
		},
		[]string{"kind"},
	)

	r.RedistributionsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "gridsim_redistributions_total",
			Help: "Load redistributions after line failures, by whether any spare capacity absorbed load",
		},
		[]string{"result"},
	)
}
