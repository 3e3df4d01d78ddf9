package algorithms

import (
	"reflect"
	"testing"

	"github.com/dd0wney/cluso-gridsim/pkg/grid"
)

func TestTraceDFS_Empty(t *testing.T) {
	if trace := TraceDFS(nil, nil); trace != nil {
		t.Errorf("TraceDFS(nil) = %+v, want nil", trace)
	}
}

// TestTraceDFS_Triangle tests the recorded pops including a skipped duplicate
func TestTraceDFS_Triangle(t *testing.T) {
	nodes := []grid.Node{node(0), node(1), node(2)}
	edges := []grid.Edge{edge(0, 0, 1), edge(1, 1, 2), edge(2, 0, 2)}

	trace := TraceDFS(nodes, edges)
	if trace == nil {
		t.Fatal("TraceDFS returned nil")
	}

	if trace.Start != 0 {
		t.Errorf("Start = %d, want 0", trace.Start)
	}
	if !reflect.DeepEqual(trace.Order, []grid.NodeID{0, 2, 1}) {
		t.Errorf("Order = %v, want [0 2 1]", trace.Order)
	}
	if len(trace.Steps) != 4 {
		t.Fatalf("Expected 4 steps, got %d: %+v", len(trace.Steps), trace.Steps)
	}

	first := trace.Steps[0]
	if first.Action != ActionVisit || !reflect.DeepEqual(first.Pushed, []grid.NodeID{1, 2}) {
		t.Errorf("Step 1 = %+v, want visit pushing [1 2]", first)
	}

	last := trace.Steps[3]
	if last.Action != ActionSkip || last.Node != 1 || len(last.Stack) != 0 {
		t.Errorf("Step 4 = %+v, want skip of node 1 with empty stack", last)
	}
	if !trace.Connected() {
		t.Error("Triangle trace should be connected")
	}
}

// TestTraceDFS_Unreached tests that the disconnected remainder is reported
func TestTraceDFS_Unreached(t *testing.T) {
	nodes := []grid.Node{node(0), node(1), node(2), node(3)}
	edges := []grid.Edge{edge(0, 0, 1), edge(1, 2, 3)}

	trace := TraceDFS(nodes, edges)

	if trace.Connected() {
		t.Error("Trace should not be connected")
	}
	if !reflect.DeepEqual(trace.Unreached, []grid.NodeID{2, 3}) {
		t.Errorf("Unreached = %v, want [2 3]", trace.Unreached)
	}
	if trace.Connected() != IsConnected(nodes, edges) {
		t.Error("Trace and IsConnected disagree")
	}
}
