package grid

// ActiveNodes returns the nodes whose Active flag is set, in input order.
func ActiveNodes(nodes []Node) []Node {
	active := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		if n.Active {
			active = append(active, n)
		}
	}
	return active
}

// ActiveEdges returns the edges whose Active flag is set, in input order.
// Endpoint state is not consulted.
func ActiveEdges(edges []Edge) []Edge {
	active := make([]Edge, 0, len(edges))
	for _, e := range edges {
		if e.Active {
			active = append(active, e)
		}
	}
	return active
}

// Adjacency builds the undirected neighbor map of the active subgraph.
// Every active node gets an entry; an active edge contributes only when both
// endpoints are active nodes, otherwise it is silently skipped.
func Adjacency(nodes []Node, edges []Edge) map[NodeID][]NodeID {
	adj := make(map[NodeID][]NodeID, len(nodes))
	for _, n := range nodes {
		if n.Active {
			adj[n.ID] = []NodeID{}
		}
	}

	for _, e := range edges {
		if !e.Active {
			continue
		}
		if _, ok := adj[e.From]; !ok {
			continue
		}
		if _, ok := adj[e.To]; !ok {
			continue
		}
		adj[e.From] = append(adj[e.From], e.To)
		adj[e.To] = append(adj[e.To], e.From)
	}

	return adj
}

// CloneNodes returns a copy of nodes that shares no memory with the input.
func CloneNodes(nodes []Node) []Node {
	if nodes == nil {
		return nil
	}
	out := make([]Node, len(nodes))
	copy(out, nodes)
	return out
}

// CloneEdges returns a copy of edges that shares no memory with the input.
func CloneEdges(edges []Edge) []Edge {
	if edges == nil {
		return nil
	}
	out := make([]Edge, len(edges))
	copy(out, edges)
	return out
}

// Clone returns a deep copy of the snapshot.
func (g Graph) Clone() Graph {
	return Graph{
		Nodes: CloneNodes(g.Nodes),
		Edges: CloneEdges(g.Edges),
	}
}

// NodeByID returns the node with the given id.
func (g Graph) NodeByID(id NodeID) (Node, bool) {
	return FindNode(g.Nodes, id)
}

// EdgeByID returns the edge with the given id.
func (g Graph) EdgeByID(id EdgeID) (Edge, bool) {
	for _, e := range g.Edges {
		if e.ID == id {
			return e, true
		}
	}
	return Edge{}, false
}

// FindNode looks a node up by id in an ordered node list.
func FindNode(nodes []Node, id NodeID) (Node, bool) {
	for _, n := range nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// NodeName returns the display name of id, or "Unknown" when absent.
func NodeName(nodes []Node, id NodeID) string {
	if n, ok := FindNode(nodes, id); ok {
		return n.Name
	}
	return "Unknown"
}

// IncidentEdges returns the indexes into edges of the active edges touching id.
func IncidentEdges(edges []Edge, id NodeID) []int {
	idx := make([]int, 0)
	for i, e := range edges {
		if e.Active && e.Touches(id) {
			idx = append(idx, i)
		}
	}
	return idx
}

// CountActive returns the number of active nodes and active edges.
func (g Graph) CountActive() (nodes, edges int) {
	for _, n := range g.Nodes {
		if n.Active {
			nodes++
		}
	}
	for _, e := range g.Edges {
		if e.Active {
			edges++
		}
	}
	return nodes, edges
}
