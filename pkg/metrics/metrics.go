package metrics

import (
	"time"
)

// RecordSimulation records a finished cascade simulation
func (r *Registry) RecordSimulation(outcome string, iterations, nodeFailures, edgeFailures int, duration time.Duration) {
	r.SimulationsTotal.WithLabelValues(outcome).Inc()
	r.SimulationDuration.Observe(duration.Seconds())
	r.CascadeIterations.Observe(float64(iterations))
	r.ComponentFailuresTotal.WithLabelValues("node").Add(float64(nodeFailures))
	r.ComponentFailuresTotal.WithLabelValues("edge").Add(float64(edgeFailures))
	r.AnalysisDuration.WithLabelValues("simulate").Observe(duration.Seconds())
}

// RecordRedistribution records whether a failed line's load found spare capacity
func (r *Registry) RecordRedistribution(absorbed bool) {
	if absorbed {
		r.RedistributionsTotal.WithLabelValues("absorbed").Inc()
	} else {
		r.RedistributionsTotal.WithLabelValues("dropped").Inc()
	}
}

// RecordCriticalAnalysis records the result of a single-point-of-failure scan
func (r *Registry) RecordCriticalAnalysis(criticalNodes, criticalEdges int, duration time.Duration) {
	r.CriticalComponents.WithLabelValues("node").Set(float64(criticalNodes))
	r.CriticalComponents.WithLabelValues("edge").Set(float64(criticalEdges))
	r.AnalysisDuration.WithLabelValues("critical").Observe(duration.Seconds())
}
