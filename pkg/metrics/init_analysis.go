package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initAnalysisMetrics() {
	r.CriticalComponents = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "gridsim_critical_components",
			Help: "Critical components found by the most recent analysis",
		},
		[]string{"kind"},
	)

	r.AnalysisDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gridsim_analysis_duration_seconds",
			Help:    "Analysis duration in seconds",
			Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1.0},
		},
		[]string{"analysis"},
	)
}
