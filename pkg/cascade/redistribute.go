package cascade

import (
	"math"

	"github.com/dd0wney/cluso-gridsim/pkg/grid"
)

// RedistributionMode selects how the two endpoints of a failed line share
// its load when a line is incident to both.
type RedistributionMode string

const (
	// RedistributionSequential processes From fully before To, so To sees
	// the load From already placed.
	RedistributionSequential RedistributionMode = "sequential"

	// RedistributionSnapshot computes both endpoints from the pre-failure
	// loads and sums the increments.
	RedistributionSnapshot RedistributionMode = "snapshot"
)

// Redistribute sheds the failed edge's load onto the remaining active edges
// at each of its endpoints, in proportion to their spare capacity. The
// input is not modified. nodes is accepted for symmetry with the other
// analyses; redistribution only looks at edges.
func Redistribute(nodes []grid.Node, edges []grid.Edge, failed grid.Edge) []grid.Edge {
	return RedistributeWith(RedistributionSequential, nodes, edges, failed)
}

// RedistributeWith is Redistribute with an explicit endpoint mode.
func RedistributeWith(mode RedistributionMode, nodes []grid.Node, edges []grid.Edge, failed grid.Edge) []grid.Edge {
	out, _ := redistribute(mode, edges, failed)
	return out
}

// redistribute returns the new edge list and the total load placed.
func redistribute(mode RedistributionMode, edges []grid.Edge, failed grid.Edge) ([]grid.Edge, float64) {
	out := grid.CloneEdges(edges)
	if out == nil {
		out = []grid.Edge{}
	}

	endpoints := []grid.NodeID{failed.From}
	if failed.To != failed.From {
		endpoints = append(endpoints, failed.To)
	}

	if mode == RedistributionSnapshot {
		return out, shedSnapshot(out, edges, endpoints, failed)
	}

	placed := 0.0
	for _, endpoint := range endpoints {
		placed += shedAt(out, out, endpoint, failed)
	}
	return out, placed
}

// shedAt computes one endpoint's share from the loads in view and adds it to
// the matching edges of dst.
func shedAt(dst, view []grid.Edge, endpoint grid.NodeID, failed grid.Edge) float64 {
	eligible := eligibleEdges(view, endpoint, failed.ID)

	totalAvailable := 0.0
	for _, i := range eligible {
		totalAvailable += view[i].Capacity - view[i].Load
	}
	if totalAvailable <= 0 {
		return 0
	}

	ratio := math.Min(1, failed.Load/totalAvailable)
	placed := 0.0
	for _, i := range eligible {
		extra := ratio * (view[i].Capacity - view[i].Load)
		dst[i].Load += extra
		placed += extra
	}
	return placed
}

func shedSnapshot(dst, before []grid.Edge, endpoints []grid.NodeID, failed grid.Edge) float64 {
	placed := 0.0
	for _, endpoint := range endpoints {
		placed += shedAt(dst, before, endpoint, failed)
	}
	return placed
}

// eligibleEdges returns indexes of active edges at endpoint, other than the
// failed one, that still have spare capacity.
func eligibleEdges(edges []grid.Edge, endpoint grid.NodeID, failedID grid.EdgeID) []int {
	var idx []int
	for i, e := range edges {
		if !e.Active || e.ID == failedID || !e.Touches(endpoint) {
			continue
		}
		if e.Load < e.Capacity {
			idx = append(idx, i)
		}
	}
	return idx
}
