// Package cascade simulates cascading failures on a grid snapshot and finds
// the components whose loss alone would split or overload it.
package cascade

import (
	"math/rand"
	"sort"

	"github.com/dd0wney/cluso-gridsim/pkg/algorithms"
	"github.com/dd0wney/cluso-gridsim/pkg/grid"
	"github.com/dd0wney/cluso-gridsim/pkg/logging"
	"github.com/dd0wney/cluso-gridsim/pkg/metrics"
	"github.com/google/uuid"
)

// Simulator runs cascade simulations. It keeps no state between runs; every
// call works on its own copy of the snapshot.
type Simulator struct {
	maxSteps         int
	stopOnDisconnect bool
	variationMin     float64
	variationMax     float64
	rng              *rand.Rand
	redistribution   RedistributionMode
	logger           logging.Logger
	metrics          *metrics.Registry
}

// New creates a Simulator
func New(opts ...Option) *Simulator {
	s := &Simulator{
		maxSteps:       DefaultMaxSteps,
		variationMin:   DefaultVariationMin,
		variationMax:   DefaultVariationMax,
		redistribution: RedistributionSequential,
		logger:         logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Simulate runs a cascade with default settings
func Simulate(nodes []grid.Node, edges []grid.Edge, loadIncreasePercent float64, randomVariation bool) *SimulationResult {
	return New().Simulate(nodes, edges, loadIncreasePercent, randomVariation)
}

// candidate is an overloaded component competing to fail next
type candidate struct {
	kind     grid.Kind
	id       int
	severity float64
}

// Simulate scales every active load by 1+loadIncreasePercent/100 (and a
// random factor when randomVariation is set), then repeatedly fails the most
// severely overloaded component until none remain or the step cap is hit.
func (s *Simulator) Simulate(nodes []grid.Node, edges []grid.Edge, loadIncreasePercent float64, randomVariation bool) *SimulationResult {
	runID := uuid.NewString()
	log := s.logger.With(logging.RunID(runID), logging.Component("cascade"))
	timer := logging.StartTimer(log, "cascade simulation finished", logging.Operation("simulate"))

	curNodes := grid.CloneNodes(nodes)
	curEdges := grid.CloneEdges(edges)
	s.applyLoadFactor(curNodes, curEdges, loadIncreasePercent, randomVariation)

	result := &SimulationResult{
		RunID:      runID,
		FailureLog: []FailureEvent{},
		Steps:      []CascadeStep{},
		Outcome:    OutcomeStepCap,
	}

	for result.Iterations < s.maxSteps {
		result.Iterations++

		overloads := grid.CheckOverloads(curNodes, curEdges)
		if overloads.Empty() {
			result.Outcome = OutcomeStable
			break
		}

		top := rankFailures(overloads)[0]

		var event FailureEvent
		if top.kind == grid.KindNode {
			event = failNode(curNodes, curEdges, top.id)
			result.NodeFailures++
		} else {
			var placed float64
			event, curEdges, placed = s.failEdge(curNodes, curEdges, top.id)
			result.EdgeFailures++
			if s.metrics != nil {
				s.metrics.RecordRedistribution(placed > 0)
			}
		}
		event.Step = result.Iterations
		event.Severity = top.severity
		result.FailureLog = append(result.FailureLog, event)

		log.Debug("component failed",
			logging.Step(event.Step),
			logging.Kind(string(event.Kind)),
			logging.Int("id", event.ID),
			logging.Float64("load", event.Load),
			logging.Float64("capacity", event.Capacity),
			logging.Severity(event.Severity),
			logging.Count(len(event.CascadedEdges)),
		)

		components := algorithms.FindComponents(curNodes, curEdges)
		activeNodes, activeEdges := grid.Graph{Nodes: curNodes, Edges: curEdges}.CountActive()
		result.Steps = append(result.Steps, CascadeStep{
			Iteration:   result.Iterations,
			Connected:   len(components) <= 1,
			Components:  len(components),
			ActiveNodes: activeNodes,
			ActiveEdges: activeEdges,
		})

		if s.stopOnDisconnect && len(components) > 1 {
			result.Outcome = OutcomeDisconnected
			break
		}
	}

	if result.Outcome == OutcomeStepCap && grid.CheckOverloads(curNodes, curEdges).Empty() {
		// the last permitted failure settled the grid
		result.Outcome = OutcomeStable
	}

	result.Nodes = curNodes
	result.Edges = curEdges
	result.Components = algorithms.FindComponents(curNodes, curEdges)
	result.ActiveNodes, result.ActiveEdges = result.Graph().CountActive()
	result.Connected = len(result.Components) <= 1

	elapsed := timer.End(
		logging.String("outcome", string(result.Outcome)),
		logging.Int("iterations", result.Iterations),
		logging.Int("node_failures", result.NodeFailures),
		logging.Int("edge_failures", result.EdgeFailures),
		logging.Bool("connected", result.Connected),
	)
	if s.metrics != nil {
		s.metrics.RecordSimulation(string(result.Outcome), result.Iterations, result.NodeFailures, result.EdgeFailures, elapsed)
	}

	return result
}

func (s *Simulator) applyLoadFactor(nodes []grid.Node, edges []grid.Edge, loadIncreasePercent float64, randomVariation bool) {
	factor := 1 + loadIncreasePercent/100

	for i := range nodes {
		if nodes[i].Active {
			nodes[i].Load *= factor * s.variation(randomVariation)
		}
	}
	for i := range edges {
		if edges[i].Active {
			edges[i].Load *= factor * s.variation(randomVariation)
		}
	}
}

// variation draws one factor from [variationMin, variationMax)
func (s *Simulator) variation(enabled bool) float64 {
	if !enabled {
		return 1
	}
	var f float64
	if s.rng != nil {
		f = s.rng.Float64()
	} else {
		f = rand.Float64()
	}
	return s.variationMin + f*(s.variationMax-s.variationMin)
}

// rankFailures orders overloaded components by severity, highest first.
// Ties keep enumeration order: nodes before edges, then input order.
func rankFailures(o grid.Overloads) []candidate {
	candidates := make([]candidate, 0, o.Count())
	for _, n := range o.Nodes {
		candidates = append(candidates, candidate{grid.KindNode, n.ID, grid.Severity(n.Load, n.MaxCapacity)})
	}
	for _, e := range o.Edges {
		candidates = append(candidates, candidate{grid.KindEdge, e.ID, grid.Severity(e.Load, e.Capacity)})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].severity > candidates[j].severity
	})
	return candidates
}

// failNode deactivates the node and every active line touching it
func failNode(nodes []grid.Node, edges []grid.Edge, id grid.NodeID) FailureEvent {
	event := FailureEvent{Kind: grid.KindNode, ID: id, CascadedEdges: []grid.EdgeID{}}

	for i := range nodes {
		if nodes[i].ID != id {
			continue
		}
		nodes[i].Active = false
		event.Name = nodes[i].Name
		event.Load = nodes[i].Load
		event.Capacity = nodes[i].MaxCapacity
		break
	}

	for _, i := range grid.IncidentEdges(edges, id) {
		edges[i].Active = false
		event.CascadedEdges = append(event.CascadedEdges, edges[i].ID)
	}
	return event
}

// failEdge deactivates the line and sheds its load onto its neighbours
func (s *Simulator) failEdge(nodes []grid.Node, edges []grid.Edge, id grid.EdgeID) (FailureEvent, []grid.Edge, float64) {
	event := FailureEvent{Kind: grid.KindEdge, ID: id}

	idx := -1
	for i := range edges {
		if edges[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return event, edges, 0
	}

	edges[idx].Active = false
	failed := edges[idx]
	event.From, event.To = failed.From, failed.To
	event.FromName = grid.NodeName(nodes, failed.From)
	event.ToName = grid.NodeName(nodes, failed.To)
	event.Load = failed.Load
	event.Capacity = failed.Capacity

	redistributed, placed := redistribute(s.redistribution, edges, failed)
	return event, redistributed, placed
}
