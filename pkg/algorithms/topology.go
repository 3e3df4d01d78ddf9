package algorithms

import (
	"github.com/dd0wney/cluso-gridsim/pkg/grid"
)

// IsConnected checks if every active node is reachable from the first active
// node in the supplied order. Only active edges whose endpoints are both
// active carry connectivity.
func IsConnected(nodes []grid.Node, edges []grid.Edge) bool {
	active := grid.ActiveNodes(nodes)

	// Empty and single node grids are vacuously connected
	if len(active) <= 1 {
		return true
	}

	adj := grid.Adjacency(nodes, edges)

	visited := make(map[grid.NodeID]bool, len(active))
	stack := []grid.NodeID{active[0].ID}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if visited[current] {
			continue
		}
		visited[current] = true

		for _, neighbor := range adj[current] {
			if !visited[neighbor] {
				stack = append(stack, neighbor)
			}
		}
	}

	return len(visited) == len(active)
}
