package cascade

import (
	"math"
	"testing"

	"github.com/dd0wney/cluso-gridsim/pkg/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspect(t *testing.T) {
	g := grid.Graph{
		Nodes: []grid.Node{
			node(0, "A", 50, 100),
			node(1, "B", 85, 100),
			node(2, "C", 100, 100),
			node(3, "D", 10, 100),
		},
		Edges: []grid.Edge{
			edge(0, 0, 1, 10, 100),
			edge(1, 1, 2, 90, 100),
		},
	}
	g.Nodes[3].Active = false

	st := Inspect(g, 0.8)

	assert.Equal(t, 4, st.TotalNodes)
	assert.Equal(t, 2, st.TotalEdges)
	assert.Equal(t, 3, st.ActiveNodes)
	assert.Equal(t, 2, st.ActiveEdges)
	assert.True(t, st.Connected)
	assert.Len(t, st.Components, 1)
	assert.Equal(t, []grid.Ref{{Kind: grid.KindNode, ID: 2}}, st.Overloaded)
	assert.Equal(t, 2, st.Warnings)

	require.Len(t, st.Nodes, 4)
	states := []grid.State{grid.StateNormal, grid.StateWarning, grid.StateOverloaded, grid.StateFailed}
	for i, want := range states {
		assert.Equal(t, want, st.Nodes[i].State, "node %d", i)
	}

	require.Len(t, st.Edges, 2)
	assert.Equal(t, "A-B", st.Edges[0].Label)
	assert.Equal(t, grid.StateWarning, st.Edges[1].State)
	assert.InDelta(t, 0.9, st.Edges[1].Ratio, 1e-9)
}

func TestInspectDefaultsWarningRatio(t *testing.T) {
	g := grid.Graph{Nodes: []grid.Node{node(0, "A", 85, 100)}}

	for _, warn := range []float64{0, -1, 2, math.NaN()} {
		st := Inspect(g, warn)
		assert.Equal(t, grid.StateWarning, st.Nodes[0].State, "warn=%v", warn)
	}
}

func TestInspectAfterSimulation(t *testing.T) {
	nodes, edges := chain()
	res := Simulate(nodes, edges, 0, false)

	st := Inspect(res.Graph(), grid.DefaultWarningRatio)

	assert.False(t, st.Connected)
	assert.Equal(t, 0, st.ActiveEdges)
	assert.Empty(t, st.Overloaded)
	for _, e := range st.Edges {
		assert.Equal(t, grid.StateFailed, e.State)
	}
}
