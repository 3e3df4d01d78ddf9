package cascade

import (
	"math/rand"

	"github.com/dd0wney/cluso-gridsim/pkg/grid"
)

func node(id int, name string, load, capacity float64) grid.Node {
	return grid.Node{ID: id, Name: name, Load: load, MaxCapacity: capacity, Active: true}
}

func edge(id, from, to int, load, capacity float64) grid.Edge {
	return grid.Edge{ID: id, From: from, To: to, Load: load, Capacity: capacity, Active: true}
}

// randomGrid builds a reproducible grid with loads between 0 and 1.2 times
// capacity and occasional inactive components.
func randomGrid(seed int64, size int) ([]grid.Node, []grid.Edge) {
	r := rand.New(rand.NewSource(seed))

	nodes := make([]grid.Node, size)
	for i := range nodes {
		capacity := 50 + r.Float64()*100
		nodes[i] = grid.Node{
			ID:          i,
			Load:        r.Float64() * capacity * 1.2,
			MaxCapacity: capacity,
			Active:      r.Intn(10) > 0,
		}
	}

	var edges []grid.Edge
	if size < 2 {
		return nodes, edges
	}
	count := r.Intn(size * 2)
	for i := 0; i < count; i++ {
		from := r.Intn(size)
		to := r.Intn(size)
		capacity := 20 + r.Float64()*80
		edges = append(edges, grid.Edge{
			ID:       i,
			From:     from,
			To:       to,
			Load:     r.Float64() * capacity * 1.2,
			Capacity: capacity,
			Active:   r.Intn(8) > 0,
		})
	}
	return nodes, edges
}
