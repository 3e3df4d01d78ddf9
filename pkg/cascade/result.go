package cascade

import (
	"github.com/dd0wney/cluso-gridsim/pkg/grid"
)

// Outcome says why a cascade stopped
type Outcome string

const (
	// OutcomeStable means a pass found no overloaded component
	OutcomeStable Outcome = "stable"
	// OutcomeStepCap means the iteration cap was reached with overloads remaining
	OutcomeStepCap Outcome = "step_cap"
	// OutcomeDisconnected means the run stopped early on a split grid
	OutcomeDisconnected Outcome = "disconnected"
)

// FailureEvent is one entry of the failure log, in deactivation order.
// Load, Capacity and Severity are the values at the moment of failure.
type FailureEvent struct {
	Step     int       `json:"step"`
	Kind     grid.Kind `json:"kind"`
	ID       int       `json:"id"`
	Name     string    `json:"name,omitempty"`
	From     int       `json:"from,omitempty"`
	To       int       `json:"to,omitempty"`
	FromName string    `json:"fromName,omitempty"`
	ToName   string    `json:"toName,omitempty"`
	Load     float64   `json:"load"`
	Capacity float64   `json:"capacity"`
	Severity float64   `json:"severity"`

	// CascadedEdges lists lines taken down with a failed node
	CascadedEdges []grid.EdgeID `json:"cascadedEdges,omitempty"`
}

// Ref returns the component the event refers to
func (f FailureEvent) Ref() grid.Ref {
	return grid.Ref{Kind: f.Kind, ID: f.ID}
}

// Label is a short human-readable name for the failed component
func (f FailureEvent) Label() string {
	if f.Kind == grid.KindNode {
		return f.Name
	}
	return f.FromName + "-" + f.ToName
}

// CascadeStep is the grid shape observed after one failure
type CascadeStep struct {
	Iteration   int  `json:"iteration"`
	Connected   bool `json:"connected"`
	Components  int  `json:"components"`
	ActiveNodes int  `json:"activeNodes"`
	ActiveEdges int  `json:"activeEdges"`
}

// SimulationResult is the final state of one cascade run
type SimulationResult struct {
	RunID        string          `json:"runId"`
	Nodes        []grid.Node     `json:"nodes"`
	Edges        []grid.Edge     `json:"edges"`
	FailureLog   []FailureEvent  `json:"failureLog"`
	Steps        []CascadeStep   `json:"steps"`
	Components   [][]grid.NodeID `json:"components"`
	ActiveNodes  int             `json:"activeNodes"`
	ActiveEdges  int             `json:"activeEdges"`
	NodeFailures int             `json:"nodeFailures"`
	EdgeFailures int             `json:"edgeFailures"`
	Iterations   int             `json:"iterations"`
	Connected    bool            `json:"connected"`
	Outcome      Outcome         `json:"outcome"`
}

// Graph returns the final snapshot
func (r *SimulationResult) Graph() grid.Graph {
	return grid.Graph{Nodes: r.Nodes, Edges: r.Edges}
}

// Failed reports whether any component went down
func (r *SimulationResult) Failed() bool {
	return len(r.FailureLog) > 0
}
