package grid

// Overloads holds the active components whose load has reached capacity.
type Overloads struct {
	Nodes []Node
	Edges []Edge
}

// Empty reports whether no component is overloaded.
func (o Overloads) Empty() bool {
	return len(o.Nodes) == 0 && len(o.Edges) == 0
}

// Count returns the total number of overloaded components.
func (o Overloads) Count() int {
	return len(o.Nodes) + len(o.Edges)
}

// Contains reports whether ref is part of the overload set.
func (o Overloads) Contains(ref Ref) bool {
	switch ref.Kind {
	case KindNode:
		for _, n := range o.Nodes {
			if n.ID == ref.ID {
				return true
			}
		}
	case KindEdge:
		for _, e := range o.Edges {
			if e.ID == ref.ID {
				return true
			}
		}
	}
	return false
}

// NodeOverloaded reports load >= maxCapacity. No tolerance is applied.
func NodeOverloaded(n Node) bool {
	return n.Load >= n.MaxCapacity
}

// EdgeOverloaded reports load >= capacity. No tolerance is applied.
func EdgeOverloaded(e Edge) bool {
	return e.Load >= e.Capacity
}

// CheckOverloads returns the active nodes and edges at or over capacity,
// each list in input order.
func CheckOverloads(nodes []Node, edges []Edge) Overloads {
	var o Overloads
	for _, n := range nodes {
		if n.Active && NodeOverloaded(n) {
			o.Nodes = append(o.Nodes, n)
		}
	}
	for _, e := range edges {
		if e.Active && EdgeOverloaded(e) {
			o.Edges = append(o.Edges, e)
		}
	}
	return o
}

// NodeState classifies a node for display. warn is the load ratio at which a
// healthy node becomes a warning.
func NodeState(n Node, warn float64) State {
	return classify(n.Active, n.Load, n.MaxCapacity, warn)
}

// EdgeState classifies an edge for display.
func EdgeState(e Edge, warn float64) State {
	return classify(e.Active, e.Load, e.Capacity, warn)
}

func classify(active bool, load, capacity, warn float64) State {
	if !active {
		return StateFailed
	}
	if load >= capacity {
		return StateOverloaded
	}
	if Severity(load, capacity) >= warn {
		return StateWarning
	}
	return StateNormal
}
