package cascade

import (
	"github.com/dd0wney/cluso-gridsim/pkg/algorithms"
	"github.com/dd0wney/cluso-gridsim/pkg/config"
	"github.com/dd0wney/cluso-gridsim/pkg/grid"
	"github.com/dd0wney/cluso-gridsim/pkg/logging"
	"github.com/dd0wney/cluso-gridsim/pkg/metrics"
	"github.com/dd0wney/cluso-gridsim/pkg/parallel"
)

// CriticalMode selects what makes a line critical
type CriticalMode string

const (
	// CriticalWithRedistribution flags a line whose loss splits the grid or,
	// once its load is shed, overloads a component that was not overloaded
	// before.
	CriticalWithRedistribution CriticalMode = "redistribution"

	// CriticalDisconnectOnly flags a line only when its loss splits the grid
	CriticalDisconnectOnly CriticalMode = "disconnect"
)

// Finding explains why one component is critical
type Finding struct {
	Kind             grid.Kind  `json:"kind"`
	ID               int        `json:"id"`
	Components       int        `json:"components"`
	Disconnects      bool       `json:"disconnects"`
	InducedOverloads []grid.Ref `json:"inducedOverloads,omitempty"`
}

// CriticalityResult lists the single points of failure of a snapshot
type CriticalityResult struct {
	Nodes    []grid.Node `json:"criticalNodes"`
	Edges    []grid.Edge `json:"criticalEdges"`
	Findings []Finding   `json:"findings"`
}

// Total is the number of critical nodes and edges
func (r *CriticalityResult) Total() int {
	return len(r.Nodes) + len(r.Edges)
}

// IsCritical reports whether ref was flagged
func (r *CriticalityResult) IsCritical(ref grid.Ref) bool {
	for _, f := range r.Findings {
		if f.Kind == ref.Kind && f.ID == ref.ID {
			return true
		}
	}
	return false
}

// Analyzer removes each active component in turn and checks the result
type Analyzer struct {
	mode           CriticalMode
	redistribution RedistributionMode
	workers        int
	logger         logging.Logger
	metrics        *metrics.Registry
}

// AnalyzerOption configures an Analyzer
type AnalyzerOption func(*Analyzer)

// WithCriticalMode sets the line criterion
func WithCriticalMode(mode CriticalMode) AnalyzerOption {
	return func(a *Analyzer) {
		a.mode = mode
	}
}

// WithAnalyzerRedistribution sets the endpoint mode used when shedding a
// removed line's load
func WithAnalyzerRedistribution(mode RedistributionMode) AnalyzerOption {
	return func(a *Analyzer) {
		a.redistribution = mode
	}
}

// WithWorkers spreads the removal tests over n goroutines. Results do not
// depend on n.
func WithWorkers(n int) AnalyzerOption {
	return func(a *Analyzer) {
		if n >= 1 {
			a.workers = n
		}
	}
}

// WithAnalyzerLogger sets the logger
func WithAnalyzerLogger(logger logging.Logger) AnalyzerOption {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithAnalyzerMetrics records analysis metrics into reg
func WithAnalyzerMetrics(reg *metrics.Registry) AnalyzerOption {
	return func(a *Analyzer) {
		a.metrics = reg
	}
}

// AnalyzerFromConfig applies loaded settings
func AnalyzerFromConfig(analysis config.AnalysisConfig, sim config.SimulationConfig) AnalyzerOption {
	return func(a *Analyzer) {
		if analysis.CriticalMode != "" {
			a.mode = CriticalMode(analysis.CriticalMode)
		}
		if sim.Redistribution != "" {
			a.redistribution = RedistributionMode(sim.Redistribution)
		}
		if analysis.Workers >= 1 {
			a.workers = analysis.Workers
		}
	}
}

// NewAnalyzer creates an Analyzer
func NewAnalyzer(opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{
		mode:           CriticalWithRedistribution,
		redistribution: RedistributionSequential,
		workers:        1,
		logger:         logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AnalyzeCritical runs a default Analyzer
func AnalyzeCritical(nodes []grid.Node, edges []grid.Edge) *CriticalityResult {
	return NewAnalyzer().Analyze(nodes, edges)
}

// Analyze tests the removal of every active node and edge.
//
// A removed node is only excluded from the active set; its lines stay active
// and drop out of the adjacency because one endpoint is gone. A node is
// critical when the rest splits into more than one component.
func (a *Analyzer) Analyze(nodes []grid.Node, edges []grid.Edge) *CriticalityResult {
	log := a.logger.With(logging.Component("critical"))
	timer := logging.StartTimer(log, "critical analysis finished", logging.Operation("analyze"))

	// removals address components by position; ids may repeat in raw input
	var removals []removal
	for i, n := range nodes {
		if n.Active {
			removals = append(removals, removal{kind: grid.KindNode, index: i})
		}
	}
	for i, e := range edges {
		if e.Active {
			removals = append(removals, removal{kind: grid.KindEdge, index: i})
		}
	}

	baseline := grid.CheckOverloads(nodes, edges)
	findings := make([]Finding, len(removals))
	critical := make([]bool, len(removals))
	eval := func(k int) {
		p := removals[k]
		if p.kind == grid.KindNode {
			findings[k], critical[k] = testNode(nodes, edges, p.index)
		} else {
			findings[k], critical[k] = a.testEdge(nodes, edges, p.index, baseline)
		}
	}

	if err := parallel.ForEach(a.workers, len(removals), log, eval); err != nil {
		log.Warn("parallel analysis failed, analysing serially", logging.Error(err))
		for k := range removals {
			eval(k)
		}
	}

	result := &CriticalityResult{
		Nodes:    []grid.Node{},
		Edges:    []grid.Edge{},
		Findings: []Finding{},
	}
	for k, p := range removals {
		if !critical[k] {
			continue
		}
		if p.kind == grid.KindNode {
			result.Nodes = append(result.Nodes, nodes[p.index])
		} else {
			result.Edges = append(result.Edges, edges[p.index])
		}
		result.Findings = append(result.Findings, findings[k])
	}

	elapsed := timer.End(
		logging.Int("critical_nodes", len(result.Nodes)),
		logging.Int("critical_edges", len(result.Edges)),
		logging.Int("workers", a.workers),
		logging.String("mode", string(a.mode)),
	)
	if a.metrics != nil {
		a.metrics.RecordCriticalAnalysis(len(result.Nodes), len(result.Edges), elapsed)
	}

	return result
}

type removal struct {
	kind  grid.Kind
	index int
}

func testNode(nodes []grid.Node, edges []grid.Edge, i int) (Finding, bool) {
	testNodes := grid.CloneNodes(nodes)
	testNodes[i].Active = false

	components := algorithms.FindComponents(testNodes, edges)
	return Finding{
		Kind:        grid.KindNode,
		ID:          nodes[i].ID,
		Components:  len(components),
		Disconnects: len(components) > 1,
	}, len(components) > 1
}

func (a *Analyzer) testEdge(nodes []grid.Node, edges []grid.Edge, i int, baseline grid.Overloads) (Finding, bool) {
	removed := edges[i]
	testEdges := grid.CloneEdges(edges)
	testEdges[i].Active = false

	components := algorithms.FindComponents(nodes, testEdges)
	f := Finding{
		Kind:        grid.KindEdge,
		ID:          removed.ID,
		Components:  len(components),
		Disconnects: len(components) > 1,
	}

	if a.mode == CriticalWithRedistribution {
		after, _ := redistribute(a.redistribution, testEdges, removed)
		f.InducedOverloads = newOverloads(baseline, grid.CheckOverloads(nodes, after))
	}

	return f, f.Disconnects || len(f.InducedOverloads) > 0
}

// newOverloads returns the components in after that are not in before
func newOverloads(before, after grid.Overloads) []grid.Ref {
	var refs []grid.Ref
	for _, n := range after.Nodes {
		ref := grid.Ref{Kind: grid.KindNode, ID: n.ID}
		if !before.Contains(ref) {
			refs = append(refs, ref)
		}
	}
	for _, e := range after.Edges {
		ref := grid.Ref{Kind: grid.KindEdge, ID: e.ID}
		if !before.Contains(ref) {
			refs = append(refs, ref)
		}
	}
	return refs
}
