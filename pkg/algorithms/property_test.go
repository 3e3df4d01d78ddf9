package algorithms

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/dd0wney/cluso-gridsim/pkg/grid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// randomGraph builds a reproducible grid with roughly a third of components failed
func randomGraph(seed int64, size int) ([]grid.Node, []grid.Edge) {
	rng := rand.New(rand.NewSource(seed))

	nodes := make([]grid.Node, size)
	for i := range nodes {
		nodes[i] = grid.Node{
			ID:          i,
			Load:        rng.Float64() * 100,
			MaxCapacity: 50 + rng.Float64()*100,
			Active:      rng.Intn(3) != 0,
		}
	}

	edges := make([]grid.Edge, 0)
	if size < 2 {
		return nodes, edges
	}
	count := rng.Intn(size * 2)
	for i := 0; i < count; i++ {
		edges = append(edges, grid.Edge{
			ID:       i,
			From:     rng.Intn(size),
			To:       rng.Intn(size),
			Load:     rng.Float64() * 50,
			Capacity: 20 + rng.Float64()*60,
			Active:   rng.Intn(4) != 0,
		})
	}
	return nodes, edges
}

// TestConnectivityProperties uses property-based testing on random snapshots
func TestConnectivityProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	// Components partition exactly the active node set
	properties.Property("components partition the active nodes", prop.ForAll(
		func(seed int64, size int) bool {
			nodes, edges := randomGraph(seed, size)

			seen := make(map[grid.NodeID]bool)
			for _, component := range FindComponents(nodes, edges) {
				if len(component) == 0 {
					return false
				}
				for _, id := range component {
					if seen[id] {
						return false
					}
					seen[id] = true
				}
			}

			active := grid.ActiveNodes(nodes)
			if len(seen) != len(active) {
				return false
			}
			for _, n := range active {
				if !seen[n.ID] {
					return false
				}
			}
			return true
		},
		gen.Int64(),
		gen.IntRange(0, 15),
	))

	// IsConnected agrees with the component count
	properties.Property("connected iff at most one component", prop.ForAll(
		func(seed int64, size int) bool {
			nodes, edges := randomGraph(seed, size)
			return IsConnected(nodes, edges) == (len(FindComponents(nodes, edges)) <= 1)
		},
		gen.Int64(),
		gen.IntRange(0, 15),
	))

	// Repeated queries observe the same snapshot
	properties.Property("queries are idempotent", prop.ForAll(
		func(seed int64, size int) bool {
			nodes, edges := randomGraph(seed, size)
			before := grid.Graph{Nodes: nodes, Edges: edges}.Clone()

			c1 := FindComponents(nodes, edges)
			k1 := IsConnected(nodes, edges)
			c2 := FindComponents(nodes, edges)
			k2 := IsConnected(nodes, edges)

			return reflect.DeepEqual(c1, c2) && k1 == k2 &&
				reflect.DeepEqual(before.Nodes, nodes) && reflect.DeepEqual(before.Edges, edges)
		},
		gen.Int64(),
		gen.IntRange(0, 15),
	))

	properties.TestingRun(t)
}
