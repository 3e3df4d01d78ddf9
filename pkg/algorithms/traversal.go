package algorithms

import (
	"github.com/dd0wney/cluso-gridsim/pkg/grid"
)

// TraceAction describes what happened to the node popped in a trace step.
type TraceAction string

const (
	// ActionVisit means the popped node was seen for the first time
	ActionVisit TraceAction = "visit"
	// ActionSkip means the popped node had already been visited
	ActionSkip TraceAction = "skip"
)

// TraceStep is one pop of the DFS stack.
type TraceStep struct {
	Step   int           `json:"step"`
	Node   grid.NodeID   `json:"node"`
	Action TraceAction   `json:"action"`
	Pushed []grid.NodeID `json:"pushed,omitempty"`
	Stack  []grid.NodeID `json:"stack"`
}

// Trace records a stack-based DFS from the first active node.
type Trace struct {
	Start     grid.NodeID   `json:"start"`
	Steps     []TraceStep   `json:"steps"`
	Order     []grid.NodeID `json:"order"`
	Unreached []grid.NodeID `json:"unreached"`
}

// Connected reports whether the traced walk reached every active node.
func (t *Trace) Connected() bool {
	return len(t.Unreached) == 0
}

// TraceDFS walks the active subgraph exactly as IsConnected does and records
// every stack pop. It returns nil when there are no active nodes.
func TraceDFS(nodes []grid.Node, edges []grid.Edge) *Trace {
	active := grid.ActiveNodes(nodes)
	if len(active) == 0 {
		return nil
	}

	adj := grid.Adjacency(nodes, edges)
	visited := make(map[grid.NodeID]bool, len(active))

	trace := &Trace{
		Start:     active[0].ID,
		Steps:     make([]TraceStep, 0),
		Order:     make([]grid.NodeID, 0, len(active)),
		Unreached: make([]grid.NodeID, 0),
	}

	stack := []grid.NodeID{active[0].ID}
	step := 0

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		step++

		if visited[current] {
			trace.Steps = append(trace.Steps, TraceStep{
				Step:   step,
				Node:   current,
				Action: ActionSkip,
				Stack:  append([]grid.NodeID(nil), stack...),
			})
			continue
		}

		visited[current] = true
		trace.Order = append(trace.Order, current)

		pushed := make([]grid.NodeID, 0)
		for _, neighbor := range adj[current] {
			if !visited[neighbor] {
				stack = append(stack, neighbor)
				pushed = append(pushed, neighbor)
			}
		}

		trace.Steps = append(trace.Steps, TraceStep{
			Step:   step,
			Node:   current,
			Action: ActionVisit,
			Pushed: pushed,
			Stack:  append([]grid.NodeID(nil), stack...),
		})
	}

	for _, n := range active {
		if !visited[n.ID] {
			trace.Unreached = append(trace.Unreached, n.ID)
		}
	}

	return trace
}
