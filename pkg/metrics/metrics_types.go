package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the grid engine
type Registry struct {
	// Simulation Metrics
	SimulationsTotal       *prometheus.CounterVec
	SimulationDuration     prometheus.Histogram
	CascadeIterations      prometheus.Histogram
	ComponentFailuresTotal *prometheus.CounterVec
	RedistributionsTotal   *prometheus.CounterVec

	// Analysis Metrics
	CriticalComponents *prometheus.GaugeVec
	AnalysisDuration   *prometheus.HistogramVec

	registry *prometheus.Registry
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
	}

	r.initSimulationMetrics()
	r.initAnalysisMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
