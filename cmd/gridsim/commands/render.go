package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dd0wney/cluso-gridsim/pkg/algorithms"
	"github.com/dd0wney/cluso-gridsim/pkg/cascade"
	"github.com/dd0wney/cluso-gridsim/pkg/grid"
	"github.com/dd0wney/cluso-gridsim/pkg/metrics"
	"github.com/dd0wney/cluso-gridsim/pkg/presets"
	dto "github.com/prometheus/client_model/go"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FF99"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF")).
			MarginTop(1)

	okStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			Bold(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFCC00"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func stateStyle(s grid.State) lipgloss.Style {
	switch s {
	case grid.StateFailed, grid.StateOverloaded:
		return errorStyle
	case grid.StateWarning:
		return warnStyle
	default:
		return okStyle
	}
}

func connectivity(connected bool, components int) string {
	if connected {
		return okStyle.Render("CONNECTED")
	}
	return errorStyle.Render(fmt.Sprintf("SPLIT into %d islands", components))
}

func formatComponents(nodes []grid.Node, components [][]grid.NodeID) string {
	parts := make([]string, len(components))
	for i, c := range components {
		names := make([]string, len(c))
		for j, id := range c {
			names[j] = grid.NodeName(nodes, id)
		}
		parts[i] = "{" + strings.Join(names, " ") + "}"
	}
	return strings.Join(parts, " ")
}

func renderSimulation(w io.Writer, p presets.Preset, before grid.Graph, res *cascade.SimulationResult, pct float64, random bool) {
	variation := "off"
	if random {
		variation = "on"
	}
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("⚡ Cascade simulation: %s", p.Title)))
	fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("run %s  load +%.1f%%  random variation %s", res.RunID, pct, variation)))

	fmt.Fprintln(w, sectionStyle.Render("Failure log"))
	if len(res.FailureLog) == 0 {
		fmt.Fprintln(w, okStyle.Render("  no failures"))
	}
	for _, ev := range res.FailureLog {
		line := fmt.Sprintf("  %2d. %-4s %-14s load %8.2f / %-8.2f severity %.3f",
			ev.Step, ev.Kind, ev.Label(), ev.Load, ev.Capacity, ev.Severity)
		if n := len(ev.CascadedEdges); n > 0 {
			line += fmt.Sprintf("  (+%d lines)", n)
		}
		fmt.Fprintln(w, errorStyle.Render(line))
	}

	if len(res.Steps) > 0 {
		fmt.Fprintln(w, sectionStyle.Render("Cascade steps"))
		for _, st := range res.Steps {
			fmt.Fprintf(w, "  step %2d  nodes %2d  lines %2d  %s\n",
				st.Iteration, st.ActiveNodes, st.ActiveEdges, connectivity(st.Connected, st.Components))
		}
	}

	fmt.Fprintln(w, sectionStyle.Render("Result"))
	fmt.Fprintf(w, "  outcome      %s after %d iterations\n", res.Outcome, res.Iterations)
	fmt.Fprintf(w, "  active nodes %d/%d\n", res.ActiveNodes, len(before.Nodes))
	fmt.Fprintf(w, "  active lines %d/%d\n", res.ActiveEdges, len(before.Edges))
	fmt.Fprintf(w, "  grid         %s\n", connectivity(res.Connected, len(res.Components)))
	fmt.Fprintf(w, "  islands      %s\n", formatComponents(res.Nodes, res.Components))
}

func renderCritical(w io.Writer, title string, g grid.Graph, res *cascade.CriticalityResult) {
	fmt.Fprintln(w, titleStyle.Render("🎯 Critical components: "+title))

	if res.Total() == 0 {
		fmt.Fprintln(w, okStyle.Render("  no single point of failure"))
		return
	}

	for _, f := range res.Findings {
		var label string
		if f.Kind == grid.KindNode {
			label = grid.NodeName(g.Nodes, f.ID)
		} else if e, ok := g.EdgeByID(f.ID); ok {
			label = grid.NodeName(g.Nodes, e.From) + "-" + grid.NodeName(g.Nodes, e.To)
		}

		var reasons []string
		if f.Disconnects {
			reasons = append(reasons, fmt.Sprintf("splits grid into %d", f.Components))
		}
		for _, ref := range f.InducedOverloads {
			reasons = append(reasons, fmt.Sprintf("overloads %s %d", ref.Kind, ref.ID))
		}
		fmt.Fprintf(w, "  %-4s %-3d %-14s %s\n", f.Kind, f.ID, label, warnStyle.Render(strings.Join(reasons, ", ")))
	}
	fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("  %d nodes, %d lines critical", len(res.Nodes), len(res.Edges))))
}

func renderStatus(w io.Writer, title string, st cascade.Status) {
	fmt.Fprintln(w, titleStyle.Render("📊 Grid status: "+title))
	fmt.Fprintf(w, "  nodes %d/%d active   lines %d/%d active   %s\n",
		st.ActiveNodes, st.TotalNodes, st.ActiveEdges, st.TotalEdges, connectivity(st.Connected, len(st.Components)))
	fmt.Fprintf(w, "  overloaded %d   warnings %d\n", len(st.Overloaded), st.Warnings)

	fmt.Fprintln(w, sectionStyle.Render("Nodes"))
	for _, cs := range st.Nodes {
		renderComponentState(w, cs)
	}
	fmt.Fprintln(w, sectionStyle.Render("Lines"))
	for _, cs := range st.Edges {
		renderComponentState(w, cs)
	}
}

func renderComponentState(w io.Writer, cs cascade.ComponentState) {
	fmt.Fprintf(w, "  %-3d %-14s %8.2f / %-8.2f %5.1f%%  %s\n",
		cs.Ref.ID, cs.Label, cs.Load, cs.Limit, cs.Ratio*100, stateStyle(cs.State).Render(string(cs.State)))
}

func renderTrace(w io.Writer, g grid.Graph, tr *algorithms.Trace) {
	fmt.Fprintln(w, titleStyle.Render("🔎 Connectivity trace"))
	if tr == nil {
		fmt.Fprintln(w, dimStyle.Render("  no active nodes"))
		return
	}

	fmt.Fprintf(w, "  start at %s\n", grid.NodeName(g.Nodes, tr.Start))
	for _, st := range tr.Steps {
		if st.Action == algorithms.ActionSkip {
			fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("  %2d. pop %-10s already visited   stack %v", st.Step, grid.NodeName(g.Nodes, st.Node), st.Stack)))
			continue
		}
		fmt.Fprintf(w, "  %2d. pop %-10s visit, push %v   stack %v\n", st.Step, grid.NodeName(g.Nodes, st.Node), st.Pushed, st.Stack)
	}

	if tr.Connected() {
		fmt.Fprintln(w, okStyle.Render(fmt.Sprintf("  reached all %d active nodes", len(tr.Order))))
		return
	}
	unreached := make([]string, len(tr.Unreached))
	for i, id := range tr.Unreached {
		unreached[i] = grid.NodeName(g.Nodes, id)
	}
	fmt.Fprintln(w, errorStyle.Render("  never reached: "+strings.Join(unreached, ", ")))
}

func renderPresets(w io.Writer, all []presets.Preset) {
	fmt.Fprintln(w, titleStyle.Render("Built-in grids"))
	for _, p := range all {
		fmt.Fprintf(w, "  %-15s %-22s %2d nodes %2d lines", p.Name, p.Title, len(p.Graph.Nodes), len(p.Graph.Edges))
		if p.LoadIncrease > 0 {
			fmt.Fprintf(w, "  try +%.0f%%", p.LoadIncrease)
		}
		fmt.Fprintln(w)
		if p.Description != "" {
			fmt.Fprintln(w, dimStyle.Render("      "+p.Description))
		}
	}
}

// renderMetrics prints every non-empty series the registry has gathered
func renderMetrics(w io.Writer, reg *metrics.Registry) {
	families, err := reg.GetPrometheusRegistry().Gather()
	if err != nil {
		fmt.Fprintln(w, errorStyle.Render("gather metrics: "+err.Error()))
		return
	}

	fmt.Fprintln(w, sectionStyle.Render("Metrics"))
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			name := mf.GetName() + formatLabels(m.GetLabel())
			switch mf.GetType() {
			case dto.MetricType_COUNTER:
				fmt.Fprintf(w, "  %-55s %g\n", name, m.GetCounter().GetValue())
			case dto.MetricType_GAUGE:
				fmt.Fprintf(w, "  %-55s %g\n", name, m.GetGauge().GetValue())
			case dto.MetricType_HISTOGRAM:
				h := m.GetHistogram()
				if h.GetSampleCount() == 0 {
					continue
				}
				fmt.Fprintf(w, "  %-55s count=%d sum=%g\n", name, h.GetSampleCount(), h.GetSampleSum())
			}
		}
	}
}

func formatLabels(labels []*dto.LabelPair) string {
	if len(labels) == 0 {
		return ""
	}
	parts := make([]string, len(labels))
	for i, l := range labels {
		parts[i] = fmt.Sprintf("%s=%q", l.GetName(), l.GetValue())
	}
	sort.Strings(parts)
	return "{" + strings.Join(parts, ",") + "}"
}
