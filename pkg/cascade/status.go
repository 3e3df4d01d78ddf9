package cascade

import (
	"github.com/dd0wney/cluso-gridsim/pkg/algorithms"
	"github.com/dd0wney/cluso-gridsim/pkg/grid"
)

// ComponentState is the classification of a single node or line
type ComponentState struct {
	Ref   grid.Ref   `json:"ref"`
	Label string     `json:"label"`
	Load  float64    `json:"load"`
	Limit float64    `json:"limit"`
	Ratio float64    `json:"ratio"`
	State grid.State `json:"state"`
}

// Status is a point-in-time summary of a snapshot
type Status struct {
	TotalNodes  int              `json:"totalNodes"`
	TotalEdges  int              `json:"totalEdges"`
	ActiveNodes int              `json:"activeNodes"`
	ActiveEdges int              `json:"activeEdges"`
	Connected   bool             `json:"connected"`
	Components  [][]grid.NodeID  `json:"components"`
	Overloaded  []grid.Ref       `json:"overloaded"`
	Warnings    int              `json:"warnings"`
	Nodes       []ComponentState `json:"nodes"`
	Edges       []ComponentState `json:"edges"`
}

// Inspect classifies every component of g. A warn ratio outside (0, 1]
// falls back to grid.DefaultWarningRatio.
func Inspect(g grid.Graph, warn float64) Status {
	if !(warn > 0 && warn <= 1) {
		warn = grid.DefaultWarningRatio
	}

	st := Status{
		TotalNodes: len(g.Nodes),
		TotalEdges: len(g.Edges),
		Components: algorithms.FindComponents(g.Nodes, g.Edges),
		Overloaded: []grid.Ref{},
		Nodes:      make([]ComponentState, 0, len(g.Nodes)),
		Edges:      make([]ComponentState, 0, len(g.Edges)),
	}
	st.ActiveNodes, st.ActiveEdges = g.CountActive()
	st.Connected = len(st.Components) <= 1

	for _, n := range g.Nodes {
		cs := ComponentState{
			Ref:   grid.Ref{Kind: grid.KindNode, ID: n.ID},
			Label: n.Name,
			Load:  n.Load,
			Limit: n.MaxCapacity,
			Ratio: grid.Severity(n.Load, n.MaxCapacity),
			State: grid.NodeState(n, warn),
		}
		st.record(cs)
		st.Nodes = append(st.Nodes, cs)
	}
	for _, e := range g.Edges {
		cs := ComponentState{
			Ref:   grid.Ref{Kind: grid.KindEdge, ID: e.ID},
			Label: grid.NodeName(g.Nodes, e.From) + "-" + grid.NodeName(g.Nodes, e.To),
			Load:  e.Load,
			Limit: e.Capacity,
			Ratio: grid.Severity(e.Load, e.Capacity),
			State: grid.EdgeState(e, warn),
		}
		st.record(cs)
		st.Edges = append(st.Edges, cs)
	}

	return st
}

func (s *Status) record(cs ComponentState) {
	switch cs.State {
	case grid.StateOverloaded:
		s.Overloaded = append(s.Overloaded, cs.Ref)
	case grid.StateWarning:
		s.Warnings++
	}
}
