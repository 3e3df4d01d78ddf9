package algorithms

import (
	"github.com/dd0wney/cluso-gridsim/pkg/grid"
)

// FindComponents partitions the active nodes into connected components.
// Seeds are chosen in input order; inside a component node ids appear in
// stack-DFS visitation order. Zero active nodes yields an empty result.
func FindComponents(nodes []grid.Node, edges []grid.Edge) [][]grid.NodeID {
	active := grid.ActiveNodes(nodes)
	components := make([][]grid.NodeID, 0)

	if len(active) == 0 {
		return components
	}

	adj := grid.Adjacency(nodes, edges)
	visited := make(map[grid.NodeID]bool, len(active))

	for _, seed := range active {
		if visited[seed.ID] {
			continue
		}

		// New component found
		component := make([]grid.NodeID, 0)
		stack := []grid.NodeID{seed.ID}

		for len(stack) > 0 {
			nodeID := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if visited[nodeID] {
				continue
			}
			visited[nodeID] = true
			component = append(component, nodeID)

			for _, neighbor := range adj[nodeID] {
				if !visited[neighbor] {
					stack = append(stack, neighbor)
				}
			}
		}

		components = append(components, component)
	}

	return components
}

// ComponentOf returns a lookup from node id to the index of its component.
func ComponentOf(components [][]grid.NodeID) map[grid.NodeID]int {
	index := make(map[grid.NodeID]int)
	for i, component := range components {
		for _, id := range component {
			index[id] = i
		}
	}
	return index
}
