// Package grid defines the node and edge shapes of a transmission network
// snapshot and the read-only queries every analysis builds on.
package grid

import "math"

// NodeID identifies a node within one snapshot.
type NodeID = int

// EdgeID identifies a transmission line within one snapshot.
type EdgeID = int

// Kind distinguishes the two component types of a grid.
type Kind string

const (
	KindNode Kind = "node"
	KindEdge Kind = "edge"
)

// Node is a generation, substation or load point.
type Node struct {
	ID          NodeID  `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Load        float64 `json:"load" yaml:"load"`
	MaxCapacity float64 `json:"maxCapacity" yaml:"maxCapacity"`
	Active      bool    `json:"active" yaml:"active"`
}

// Edge is an undirected transmission line between two nodes.
type Edge struct {
	ID       EdgeID  `json:"id" yaml:"id"`
	From     NodeID  `json:"from" yaml:"from"`
	To       NodeID  `json:"to" yaml:"to"`
	Load     float64 `json:"load" yaml:"load"`
	Capacity float64 `json:"capacity" yaml:"capacity"`
	Active   bool    `json:"active" yaml:"active"`
}

// Touches reports whether the edge is incident to id.
func (e Edge) Touches(id NodeID) bool {
	return e.From == id || e.To == id
}

// Graph is an ordered snapshot of nodes and edges handed to every analysis.
// Analyses treat it as immutable and work on copies.
type Graph struct {
	Nodes []Node `json:"nodes" yaml:"nodes"`
	Edges []Edge `json:"edges" yaml:"edges"`
}

// Ref names a single component of either kind.
type Ref struct {
	Kind Kind `json:"kind"`
	ID   int  `json:"id"`
}

// State is the display classification of a component.
type State string

const (
	StateNormal     State = "normal"
	StateWarning    State = "warning"
	StateOverloaded State = "overloaded"
	StateFailed     State = "failed"
)

// DefaultWarningRatio is the load ratio at which a component is flagged as
// approaching its limit.
const DefaultWarningRatio = 0.8

// Severity returns the load-to-capacity ratio. A non-positive capacity is
// reported as maximally severe.
func Severity(load, capacity float64) float64 {
	if capacity <= 0 {
		return math.Inf(1)
	}
	return load / capacity
}
