package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dd0wney/cluso-gridsim/pkg/algorithms"
	"github.com/dd0wney/cluso-gridsim/pkg/cascade"
	"github.com/dd0wney/cluso-gridsim/pkg/grid"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF")).
			MarginLeft(2).
			MarginTop(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF")).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FFFF")).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#FF00FF")).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666")).
				Padding(0, 2)

	contentStyle = lipgloss.NewStyle().
			MarginLeft(2).
			MarginTop(1)

	statsBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FF00")).
			Padding(1, 2).
			MarginRight(2)

	gridBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("#FFFF00")).
			Padding(1, 2)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFCC00"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1).
			MarginLeft(2)
)

func (m model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var s strings.Builder

	// Title
	s.WriteString(titleStyle.Render("⚡ Grid Failure Simulator: " + m.preset.Title))
	s.WriteString("\n\n")

	// Tabs
	s.WriteString(m.renderTabs())
	s.WriteString("\n\n")

	// Content based on current view
	switch m.currentView {
	case dashboardView:
		s.WriteString(m.renderDashboard())
	case componentsView:
		s.WriteString(m.renderComponents())
	case simulationView:
		s.WriteString(m.renderSimulation())
	case criticalView:
		s.WriteString(m.renderCritical())
	case presetsView:
		s.WriteString(contentStyle.Render(m.presetList.View()))
	}

	// Message
	if m.message != "" {
		s.WriteString("\n\n")
		if m.messageErr {
			s.WriteString(errorStyle.Render("✗ " + m.message))
		} else {
			s.WriteString(successStyle.Render("✓ " + m.message))
		}
	}

	// Help
	s.WriteString("\n\n")
	s.WriteString(helpStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp())))

	return s.String()
}

func (m model) renderTabs() string {
	tabs := []string{"Dashboard", "Components", "Simulation", "Critical", "Presets"}
	var renderedTabs []string

	for i, tab := range tabs {
		if view(i) == m.currentView {
			renderedTabs = append(renderedTabs, activeTabStyle.Render(tab))
		} else {
			renderedTabs = append(renderedTabs, inactiveTabStyle.Render(tab))
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, renderedTabs...)
}

func (m model) renderDashboard() string {
	st := cascade.Inspect(m.current, m.warn)

	connected := successStyle.Render("connected")
	if !st.Connected {
		connected = errorStyle.Render(fmt.Sprintf("split (%d islands)", len(st.Components)))
	}

	statsContent := fmt.Sprintf(`📊 Grid
━━━━━━━━━━━━━━━
Nodes:      %d / %d
Lines:      %d / %d
Status:     %s
Overloaded: %d
Warnings:   %d

⚙ Simulation
━━━━━━━━━━━━━━━
Load:       +%s%%
Random:     %s`,
		st.ActiveNodes, st.TotalNodes,
		st.ActiveEdges, st.TotalEdges,
		connected,
		len(st.Overloaded),
		st.Warnings,
		m.loadInput.Value(),
		onOff(m.random),
	)

	quickActions := `⚡ Quick Actions
━━━━━━━━━━━━━━━
[s]        Simulate cascade
[c]        Critical components
[r]        Toggle random load
[+/-]      Adjust load increase
[x]        Reset grid
[Tab]      Navigate views
[q]        Quit`

	statsBox := statsBoxStyle.Render(statsContent)
	actionsBox := statsBoxStyle.Render(quickActions)
	gridBox := gridBoxStyle.Render(m.renderTopology())

	return contentStyle.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.JoinHorizontal(lipgloss.Top, statsBox, actionsBox),
			gridBox,
		),
	)
}

// renderTopology lists each active node with its live neighbours
func (m model) renderTopology() string {
	if len(m.current.Nodes) == 0 {
		return "No nodes loaded"
	}

	adj := grid.Adjacency(m.current.Nodes, m.current.Edges)
	var s strings.Builder
	for _, n := range m.current.Nodes {
		style := stateStyle(grid.NodeState(n, m.warn))
		s.WriteString(style.Render(fmt.Sprintf("◉ %-10s", n.Name)))
		if !n.Active {
			s.WriteString(errorStyle.Render(" failed\n"))
			continue
		}
		names := make([]string, 0, len(adj[n.ID]))
		for _, id := range adj[n.ID] {
			names = append(names, grid.NodeName(m.current.Nodes, id))
		}
		if len(names) == 0 {
			s.WriteString(warnStyle.Render(" isolated\n"))
			continue
		}
		s.WriteString(" ── " + strings.Join(names, ", ") + "\n")
	}

	tr := algorithms.TraceDFS(m.current.Nodes, m.current.Edges)
	if tr != nil && !tr.Connected() {
		unreached := make([]string, len(tr.Unreached))
		for i, id := range tr.Unreached {
			unreached[i] = grid.NodeName(m.current.Nodes, id)
		}
		s.WriteString("\n" + errorStyle.Render("Unreachable from "+grid.NodeName(m.current.Nodes, tr.Start)+": "+strings.Join(unreached, ", ")))
	}
	return strings.TrimRight(s.String(), "\n")
}

func (m model) renderComponents() string {
	var s strings.Builder

	s.WriteString(headerStyle.Render("Components"))
	s.WriteString("\n\n")
	s.WriteString(m.componentTable.View())
	s.WriteString("\n\n")
	s.WriteString(helpStyle.Render("Navigate with ↑/↓"))

	return contentStyle.Render(s.String())
}

func (m model) renderSimulation() string {
	var s strings.Builder

	s.WriteString(headerStyle.Render("Cascade Simulation"))
	s.WriteString("\n\n")
	s.WriteString("Load increase (%): ")
	s.WriteString(m.loadInput.View())
	s.WriteString(fmt.Sprintf("   random variation: %s", onOff(m.random)))
	s.WriteString("\n")
	s.WriteString(helpStyle.Render("Enter runs the cascade on the current grid"))
	s.WriteString("\n\n")

	if m.lastRun == nil {
		s.WriteString(helpStyle.Render("No simulation yet"))
		return contentStyle.Render(s.String())
	}

	res := m.lastRun
	var log strings.Builder
	fmt.Fprintf(&log, "Outcome %s after %d iterations\n\n", res.Outcome, res.Iterations)
	if len(res.FailureLog) == 0 {
		log.WriteString(successStyle.Render("No failures"))
	}
	for _, ev := range res.FailureLog {
		line := fmt.Sprintf("%2d. %-4s %-14s %7.2f / %-7.2f sev %.3f", ev.Step, ev.Kind, ev.Label(), ev.Load, ev.Capacity, ev.Severity)
		if n := len(ev.CascadedEdges); n > 0 {
			line += fmt.Sprintf(" (+%d lines)", n)
		}
		log.WriteString(errorStyle.Render(line) + "\n")
	}
	if len(res.Steps) > 0 {
		log.WriteString("\n")
		for _, st := range res.Steps {
			fmt.Fprintf(&log, "step %2d: %d nodes, %d lines, %d islands\n", st.Iteration, st.ActiveNodes, st.ActiveEdges, st.Components)
		}
	}
	fmt.Fprintf(&log, "\nActive nodes %d, lines %d, %s", res.ActiveNodes, res.ActiveEdges, connectedText(res.Connected))

	s.WriteString(statsBoxStyle.Render(log.String()))
	return contentStyle.Render(s.String())
}

func (m model) renderCritical() string {
	var s strings.Builder

	s.WriteString(headerStyle.Render("Single Points of Failure"))
	s.WriteString("\n\n")

	if m.lastCritical == nil {
		s.WriteString(helpStyle.Render("Press c to analyse the current grid"))
		return contentStyle.Render(s.String())
	}

	res := m.lastCritical
	if res.Total() == 0 {
		s.WriteString(successStyle.Render("No single point of failure"))
		return contentStyle.Render(s.String())
	}

	var body strings.Builder
	for _, n := range res.Nodes {
		fmt.Fprintf(&body, "◉ node %-12s splits the grid\n", n.Name)
	}
	for _, f := range res.Findings {
		if f.Kind != grid.KindEdge {
			continue
		}
		e, _ := m.current.EdgeByID(f.ID)
		label := grid.NodeName(m.current.Nodes, e.From) + "-" + grid.NodeName(m.current.Nodes, e.To)
		reason := "splits the grid"
		if !f.Disconnects {
			reason = fmt.Sprintf("overloads %d components", len(f.InducedOverloads))
		}
		fmt.Fprintf(&body, "─ line %-12s %s\n", label, reason)
	}
	s.WriteString(gridBoxStyle.Render(strings.TrimRight(body.String(), "\n")))
	return contentStyle.Render(s.String())
}

func stateStyle(st grid.State) lipgloss.Style {
	switch st {
	case grid.StateFailed, grid.StateOverloaded:
		return errorStyle
	case grid.StateWarning:
		return warnStyle
	default:
		return successStyle
	}
}
