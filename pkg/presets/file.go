package presets

import "github.com/dd0wney/cluso-gridsim/pkg/grid"

// On-disk shapes. They differ from grid types in that id and active may be
// omitted and edges accept currentLoad as an alias for load.

type catalogFile struct {
	Presets []presetFile `yaml:"presets"`
}

type presetFile struct {
	graphFile    `yaml:",inline"`
	Name         string  `yaml:"name"`
	Title        string  `yaml:"title"`
	Description  string  `yaml:"description"`
	LoadIncrease float64 `yaml:"loadIncrease"`
	Expected     string  `yaml:"expected"`
}

type graphFile struct {
	Nodes []nodeFile `yaml:"nodes"`
	Edges []edgeFile `yaml:"edges"`
}

type nodeFile struct {
	ID          *int    `yaml:"id"`
	Name        string  `yaml:"name"`
	Load        float64 `yaml:"load"`
	MaxCapacity float64 `yaml:"maxCapacity"`
	Active      *bool   `yaml:"active"`
}

type edgeFile struct {
	ID          *int     `yaml:"id"`
	From        int      `yaml:"from"`
	To          int      `yaml:"to"`
	Load        *float64 `yaml:"load"`
	CurrentLoad *float64 `yaml:"currentLoad"`
	Capacity    float64  `yaml:"capacity"`
	Active      *bool    `yaml:"active"`
}

func (f graphFile) graph() grid.Graph {
	g := grid.Graph{
		Nodes: make([]grid.Node, len(f.Nodes)),
		Edges: make([]grid.Edge, len(f.Edges)),
	}
	for i, n := range f.Nodes {
		g.Nodes[i] = grid.Node{
			ID:          orIndex(n.ID, i),
			Name:        n.Name,
			Load:        n.Load,
			MaxCapacity: n.MaxCapacity,
			Active:      orTrue(n.Active),
		}
	}
	for i, e := range f.Edges {
		var load float64
		switch {
		case e.Load != nil:
			load = *e.Load
		case e.CurrentLoad != nil:
			load = *e.CurrentLoad
		}
		g.Edges[i] = grid.Edge{
			ID:       orIndex(e.ID, i),
			From:     e.From,
			To:       e.To,
			Load:     load,
			Capacity: e.Capacity,
			Active:   orTrue(e.Active),
		}
	}
	return g
}

func orIndex(id *int, i int) int {
	if id == nil {
		return i
	}
	return *id
}

func orTrue(b *bool) bool {
	return b == nil || *b
}
