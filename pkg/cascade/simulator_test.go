package cascade

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dd0wney/cluso-gridsim/pkg/config"
	"github.com/dd0wney/cluso-gridsim/pkg/grid"
	"github.com/dd0wney/cluso-gridsim/pkg/logging"
	"github.com/dd0wney/cluso-gridsim/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulateNodeFailureTakesLinesDown(t *testing.T) {
	nodes := []grid.Node{
		{ID: 0, Load: 95, MaxCapacity: 100, Active: true},
		{ID: 1, Load: 50, MaxCapacity: 100, Active: true},
	}
	edges := []grid.Edge{
		{ID: 0, From: 0, To: 1, Load: 10, Capacity: 100, Active: true},
	}

	res := Simulate(nodes, edges, 10, false)

	assert.InDelta(t, 104.5, res.Nodes[0].Load, 1e-9)
	assert.False(t, res.Nodes[0].Active)
	assert.True(t, res.Nodes[1].Active)
	assert.False(t, res.Edges[0].Active)

	assert.Equal(t, 1, res.ActiveNodes)
	assert.Equal(t, 0, res.ActiveEdges)
	assert.True(t, res.Connected)
	assert.Equal(t, [][]grid.NodeID{{1}}, res.Components)
	assert.Equal(t, 2, res.Iterations)
	assert.Equal(t, OutcomeStable, res.Outcome)
	assert.Equal(t, 1, res.NodeFailures)
	assert.Equal(t, 0, res.EdgeFailures)
	assert.NotEmpty(t, res.RunID)

	require.Len(t, res.FailureLog, 1)
	ev := res.FailureLog[0]
	assert.Equal(t, grid.KindNode, ev.Kind)
	assert.Equal(t, 0, ev.ID)
	assert.Equal(t, 1, ev.Step)
	assert.InDelta(t, 104.5, ev.Load, 1e-9)
	assert.Equal(t, 100.0, ev.Capacity)
	assert.InDelta(t, 1.045, ev.Severity, 1e-9)
	assert.Equal(t, []grid.EdgeID{0}, ev.CascadedEdges)

	require.Len(t, res.Steps, 1)
	assert.Equal(t, CascadeStep{Iteration: 1, Connected: true, Components: 1, ActiveNodes: 1, ActiveEdges: 0}, res.Steps[0])
}

func TestSimulateStableGrid(t *testing.T) {
	nodes := []grid.Node{node(0, "A", 10, 100), node(1, "B", 10, 100)}
	edges := []grid.Edge{edge(0, 0, 1, 10, 100)}

	res := Simulate(nodes, edges, 50, false)

	assert.Equal(t, 1, res.Iterations)
	assert.Equal(t, OutcomeStable, res.Outcome)
	assert.Empty(t, res.FailureLog)
	assert.Empty(t, res.Steps)
	assert.InDelta(t, 15.0, res.Nodes[0].Load, 1e-9)
	assert.InDelta(t, 15.0, res.Edges[0].Load, 1e-9)
	assert.True(t, res.Connected)
}

func TestSimulateEmptyGrid(t *testing.T) {
	res := Simulate(nil, nil, 10, true)

	assert.True(t, res.Connected)
	assert.Empty(t, res.Components)
	assert.Equal(t, 0, res.ActiveNodes)
	assert.Equal(t, 0, res.ActiveEdges)
	assert.Equal(t, OutcomeStable, res.Outcome)
	assert.Empty(t, res.FailureLog)
}

func TestSimulateLineFailureRedistributes(t *testing.T) {
	nodes := []grid.Node{node(0, "A", 10, 1000), node(1, "B", 10, 1000), node(2, "C", 10, 1000)}
	edges := []grid.Edge{
		edge(0, 0, 1, 50, 50),
		edge(1, 0, 2, 10, 100),
		edge(2, 1, 2, 20, 100),
	}

	res := Simulate(nodes, edges, 0, false)

	require.Len(t, res.FailureLog, 1)
	ev := res.FailureLog[0]
	assert.Equal(t, grid.KindEdge, ev.Kind)
	assert.Equal(t, 0, ev.From)
	assert.Equal(t, 1, ev.To)
	assert.Equal(t, "A", ev.FromName)
	assert.Equal(t, "B", ev.ToName)
	assert.Equal(t, "A-B", ev.Label())
	assert.Equal(t, 1.0, ev.Severity)
	assert.Empty(t, ev.CascadedEdges)

	assert.False(t, res.Edges[0].Active)
	assert.InDelta(t, 60.0, res.Edges[1].Load, 1e-9)
	assert.InDelta(t, 70.0, res.Edges[2].Load, 1e-9)
	assert.Equal(t, 1, res.EdgeFailures)
	assert.Equal(t, 2, res.Iterations)
	assert.True(t, res.Connected)
}

func TestSimulateSeverityOrdering(t *testing.T) {
	tests := []struct {
		name      string
		edgeLoad  float64
		wantFirst grid.Kind
	}{
		// equal severity: nodes are enumerated first
		{"tie prefers node", 50, grid.KindNode},
		{"edge more severe", 60, grid.KindEdge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes := []grid.Node{node(0, "A", 100, 100), node(1, "B", 10, 100), node(2, "C", 10, 100)}
			edges := []grid.Edge{edge(0, 1, 2, tt.edgeLoad, 50)}

			res := Simulate(nodes, edges, 0, false)

			require.Len(t, res.FailureLog, 2)
			assert.Equal(t, tt.wantFirst, res.FailureLog[0].Kind)
			assert.Equal(t, 3, res.Iterations)
			assert.False(t, res.Connected)
			assert.Len(t, res.Components, 2)
		})
	}
}

func chain() ([]grid.Node, []grid.Edge) {
	nodes := []grid.Node{node(0, "A", 1, 1000), node(1, "B", 1, 1000), node(2, "C", 1, 1000)}
	edges := []grid.Edge{
		edge(0, 0, 1, 60, 50),
		edge(1, 1, 2, 55, 50),
	}
	return nodes, edges
}

func TestSimulateRunsToCompletionByDefault(t *testing.T) {
	nodes, edges := chain()

	res := Simulate(nodes, edges, 0, false)

	require.Len(t, res.FailureLog, 2)
	assert.Equal(t, 0, res.FailureLog[0].ID)
	assert.Equal(t, 1, res.FailureLog[1].ID)
	assert.Equal(t, 3, res.Iterations)
	assert.Equal(t, OutcomeStable, res.Outcome)
	assert.Len(t, res.Components, 3)

	require.Len(t, res.Steps, 2)
	assert.Equal(t, 2, res.Steps[0].Components)
	assert.False(t, res.Steps[0].Connected)
	assert.Equal(t, 3, res.Steps[1].Components)
}

func TestSimulateStopOnDisconnect(t *testing.T) {
	nodes, edges := chain()

	res := New(WithStopOnDisconnect(true)).Simulate(nodes, edges, 0, false)

	assert.Equal(t, OutcomeDisconnected, res.Outcome)
	assert.Equal(t, 1, res.Iterations)
	require.Len(t, res.FailureLog, 1)
	assert.True(t, res.Edges[1].Active)
	assert.False(t, res.Connected)
}

func TestSimulateStepCap(t *testing.T) {
	nodes, edges := chain()

	res := New(WithMaxSteps(1)).Simulate(nodes, edges, 0, false)

	assert.Equal(t, OutcomeStepCap, res.Outcome)
	assert.Equal(t, 1, res.Iterations)
	assert.Len(t, res.FailureLog, 1)
}

func TestSimulateStepCapSettledOnLastStep(t *testing.T) {
	nodes, edges := chain()

	res := New(WithMaxSteps(2)).Simulate(nodes, edges, 0, false)

	assert.Equal(t, OutcomeStable, res.Outcome)
	assert.Equal(t, 2, res.Iterations)
}

func TestSimulateDoesNotMutateInput(t *testing.T) {
	nodes, edges := chain()
	wantNodes := grid.CloneNodes(nodes)
	wantEdges := grid.CloneEdges(edges)

	_ = Simulate(nodes, edges, 25, true)

	assert.Equal(t, wantNodes, nodes)
	assert.Equal(t, wantEdges, edges)
}

func TestSimulateRandomVariation(t *testing.T) {
	nodes := []grid.Node{node(0, "A", 10, 1000), node(1, "B", 10, 1000), node(2, "C", 10, 1000)}
	edges := []grid.Edge{edge(0, 0, 1, 10, 1000), edge(1, 1, 2, 10, 1000)}

	a := New(WithSeed(42)).Simulate(nodes, edges, 10, true)
	b := New(WithSeed(42)).Simulate(nodes, edges, 10, true)
	assert.Equal(t, a.Nodes, b.Nodes)
	assert.Equal(t, a.Edges, b.Edges)

	for _, n := range a.Nodes {
		assert.GreaterOrEqual(t, n.Load, 10*1.1*0.5)
		assert.Less(t, n.Load, 10*1.1*1.5)
	}

	narrow := New(WithSeed(7), WithVariationRange(1, 1.0001)).Simulate(nodes, edges, 10, true)
	for _, n := range narrow.Nodes {
		assert.InDelta(t, 11.0, n.Load, 0.01)
	}
}

func TestSimulateInactiveLoadsUntouched(t *testing.T) {
	nodes := []grid.Node{node(0, "A", 10, 100), node(1, "B", 10, 100)}
	nodes[1].Active = false
	edges := []grid.Edge{edge(0, 0, 1, 10, 100)}
	edges[0].Active = false

	res := Simulate(nodes, edges, 50, false)

	assert.InDelta(t, 15.0, res.Nodes[0].Load, 1e-9)
	assert.Equal(t, 10.0, res.Nodes[1].Load)
	assert.Equal(t, 10.0, res.Edges[0].Load)
}

func TestSimulateZeroCapacityIsMostSevere(t *testing.T) {
	nodes := []grid.Node{node(0, "A", 500, 100), node(1, "B", 0, 0)}

	res := Simulate(nodes, nil, 0, false)

	require.NotEmpty(t, res.FailureLog)
	assert.Equal(t, 1, res.FailureLog[0].ID)
}

func TestSimulateFromConfig(t *testing.T) {
	cfg := config.Default().Simulation
	cfg.MaxSteps = 1
	cfg.StopOnDisconnect = true

	s := New(FromConfig(cfg))
	assert.Equal(t, 1, s.maxSteps)
	assert.True(t, s.stopOnDisconnect)
	assert.Equal(t, RedistributionSequential, s.redistribution)
	assert.Nil(t, s.rng)

	cfg.Seed = 99
	cfg.Redistribution = config.RedistributionSnapshot
	s = New(FromConfig(cfg))
	assert.NotNil(t, s.rng)
	assert.Equal(t, RedistributionSnapshot, s.redistribution)
}

func TestSimulateLogsAndRecordsMetrics(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewJSONLogger(&buf, logging.DebugLevel)
	reg := metrics.NewRegistry()

	nodes, edges := chain()
	res := New(WithLogger(logger), WithMetrics(reg)).Simulate(nodes, edges, 0, false)

	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, `"component failed"`))
	assert.Contains(t, out, "cascade simulation finished")
	assert.Contains(t, out, res.RunID)

	assert.Equal(t, 1.0, testutil.ToFloat64(reg.SimulationsTotal.WithLabelValues("stable")))
	assert.Equal(t, 2.0, testutil.ToFloat64(reg.ComponentFailuresTotal.WithLabelValues("edge")))
	assert.Equal(t, 0.0, testutil.ToFloat64(reg.ComponentFailuresTotal.WithLabelValues("node")))
	// both failed lines had no neighbour with spare capacity
	assert.Equal(t, 2.0, testutil.ToFloat64(reg.RedistributionsTotal.WithLabelValues("dropped")))
}
