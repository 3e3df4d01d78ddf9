package cascade

import (
	"testing"

	"github.com/dd0wney/cluso-gridsim/pkg/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedistributeProportional(t *testing.T) {
	nodes := []grid.Node{node(0, "A", 0, 100), node(1, "B", 0, 100), node(2, "C", 0, 100), node(3, "D", 0, 100)}
	edges := []grid.Edge{
		edge(0, 0, 1, 30, 30),
		edge(1, 0, 2, 10, 50),
		edge(2, 0, 3, 40, 50),
	}

	out := Redistribute(nodes, edges, edges[0])
	require.Len(t, out, 3)

	// 30 shed over 40+10 spare: ratio 0.6
	assert.InDelta(t, 34.0, out[1].Load, 1e-9)
	assert.InDelta(t, 46.0, out[2].Load, 1e-9)
	assert.Equal(t, 30.0, out[0].Load)
}

func TestRedistributeRatioCappedAtOne(t *testing.T) {
	edges := []grid.Edge{
		edge(0, 0, 1, 100, 100),
		edge(1, 0, 2, 10, 50),
		edge(2, 0, 3, 40, 50),
	}

	out := Redistribute(nil, edges, edges[0])
	assert.InDelta(t, 50.0, out[1].Load, 1e-9)
	assert.InDelta(t, 50.0, out[2].Load, 1e-9)
}

func TestRedistributeNoSpareCapacity(t *testing.T) {
	edges := []grid.Edge{
		edge(0, 0, 1, 20, 20),
		edge(1, 0, 2, 50, 50),
		edge(2, 1, 2, 60, 50),
	}

	out, placed := redistribute(RedistributionSequential, edges, edges[0])
	assert.Equal(t, 0.0, placed)
	assert.Equal(t, edges, out)
}

func TestRedistributeSkipsInactive(t *testing.T) {
	edges := []grid.Edge{
		edge(0, 0, 1, 20, 20),
		edge(1, 0, 2, 0, 50),
		edge(2, 0, 3, 0, 50),
	}
	edges[2].Active = false

	out := Redistribute(nil, edges, edges[0])
	assert.InDelta(t, 20.0, out[1].Load, 1e-9)
	assert.Equal(t, 0.0, out[2].Load)
}

func TestRedistributeDoesNotMutateInput(t *testing.T) {
	edges := []grid.Edge{
		edge(0, 0, 1, 20, 20),
		edge(1, 0, 2, 0, 50),
	}
	before := grid.CloneEdges(edges)

	_ = Redistribute(nil, edges, edges[0])
	assert.Equal(t, before, edges)
}

func TestRedistributeSelfLoopShedsOnce(t *testing.T) {
	edges := []grid.Edge{
		edge(0, 0, 0, 10, 10),
		edge(1, 0, 1, 0, 100),
	}

	out := Redistribute(nil, edges, edges[0])
	assert.InDelta(t, 10.0, out[1].Load, 1e-9)
}

// A line parallel to the failed one is eligible at both endpoints, so the
// two modes disagree.
func TestRedistributeParallelLineModes(t *testing.T) {
	edges := []grid.Edge{
		edge(0, 0, 1, 40, 40),
		edge(1, 0, 1, 50, 100),
	}

	sequential := RedistributeWith(RedistributionSequential, nil, edges, edges[0])
	snapshot := RedistributeWith(RedistributionSnapshot, nil, edges, edges[0])

	// sequential: +40 at node 0 leaves 10 spare, which node 1 then fills
	assert.InDelta(t, 100.0, sequential[1].Load, 1e-9)
	// snapshot: both endpoints see 50 spare and each add 40
	assert.InDelta(t, 130.0, snapshot[1].Load, 1e-9)
}

func TestRedistributeModesAgreeWithoutSharedLines(t *testing.T) {
	edges := []grid.Edge{
		edge(0, 0, 1, 30, 30),
		edge(1, 0, 2, 10, 50),
		edge(2, 1, 3, 5, 25),
	}

	assert.Equal(t,
		RedistributeWith(RedistributionSequential, nil, edges, edges[0]),
		RedistributeWith(RedistributionSnapshot, nil, edges, edges[0]),
	)
}
