package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dd0wney/cluso-gridsim/pkg/cascade"
	"github.com/dd0wney/cluso-gridsim/pkg/grid"
	"github.com/dd0wney/cluso-gridsim/pkg/presets"
	"github.com/dd0wney/cluso-gridsim/pkg/validation"
)

type view int

const (
	dashboardView view = iota
	componentsView
	simulationView
	criticalView
	presetsView
	viewCount
)

// presetItem adapts a preset to the list widget
type presetItem struct {
	preset presets.Preset
}

func (i presetItem) Title() string       { return i.preset.Title }
func (i presetItem) Description() string { return i.preset.Description }
func (i presetItem) FilterValue() string { return i.preset.Name + " " + i.preset.Title }

type model struct {
	preset   presets.Preset
	original grid.Graph
	current  grid.Graph
	sim      *cascade.Simulator
	analyzer *cascade.Analyzer
	warn     float64

	currentView    view
	loadInput      textinput.Model
	random         bool
	presetList     list.Model
	componentTable table.Model
	help           help.Model
	keys           keyMap
	width          int
	height         int
	message        string
	messageErr     bool

	lastRun      *cascade.SimulationResult
	lastCritical *cascade.CriticalityResult
}

func initialModel(catalog *presets.Catalog, start presets.Preset, sim *cascade.Simulator, analyzer *cascade.Analyzer, warn float64) model {
	ti := textinput.New()
	ti.Placeholder = "10"
	ti.CharLimit = 6
	ti.Width = 10

	columns := []table.Column{
		{Title: "Kind", Width: 5},
		{Title: "ID", Width: 4},
		{Title: "Name", Width: 16},
		{Title: "Load", Width: 9},
		{Title: "Limit", Width: 9},
		{Title: "Ratio", Width: 7},
		{Title: "State", Width: 11},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#00FFFF")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#FF00FF")).
		Bold(false)
	t.SetStyles(s)

	all := catalog.All()
	items := make([]list.Item, len(all))
	for i, p := range all {
		items[i] = presetItem{preset: p}
	}
	l := list.New(items, list.NewDefaultDelegate(), 60, 20)
	l.Title = "Built-in grids"
	l.SetShowHelp(false)

	m := model{
		sim:            sim,
		analyzer:       analyzer,
		warn:           warn,
		currentView:    dashboardView,
		loadInput:      ti,
		presetList:     l,
		componentTable: t,
		help:           help.New(),
		keys:           keys,
	}
	m.loadPreset(start)
	return m
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.presetList.SetSize(msg.Width-4, msg.Height-10)

	case tea.KeyMsg:
		typing := m.loadInput.Focused()
		filtering := m.presetList.FilterState() == list.Filtering

		switch {
		case msg.String() == "ctrl+c":
			return m, tea.Quit

		case key.Matches(msg, m.keys.Quit) && !typing && !filtering:
			return m, tea.Quit

		case key.Matches(msg, m.keys.Tab) && !filtering:
			m.setView((m.currentView + 1) % viewCount)
			return m, nil

		case key.Matches(msg, m.keys.ShiftTab) && !filtering:
			m.setView((m.currentView + viewCount - 1) % viewCount)
			return m, nil

		case key.Matches(msg, m.keys.Enter):
			switch {
			case m.currentView == simulationView:
				m.runSimulation()
				return m, nil
			case m.currentView == presetsView && !filtering:
				if item, ok := m.presetList.SelectedItem().(presetItem); ok {
					m.loadPreset(item.preset)
					m.setView(dashboardView)
				}
				return m, nil
			}

		case typing || filtering:
			// keys belong to the focused widget

		case key.Matches(msg, m.keys.Simulate):
			m.runSimulation()
			m.setView(simulationView)
			return m, nil

		case key.Matches(msg, m.keys.Critical):
			m.runCritical()
			m.setView(criticalView)
			return m, nil

		case key.Matches(msg, m.keys.Random):
			m.random = !m.random
			m.setMessage(fmt.Sprintf("Random variation %s", onOff(m.random)), false)
			return m, nil

		case key.Matches(msg, m.keys.More):
			m.stepLoad(5)
			return m, nil

		case key.Matches(msg, m.keys.Less):
			m.stepLoad(-5)
			return m, nil

		case key.Matches(msg, m.keys.Reset):
			m.reset()
			return m, nil
		}
	}

	// Update focused component
	switch m.currentView {
	case simulationView:
		m.loadInput, cmd = m.loadInput.Update(msg)
		cmds = append(cmds, cmd)
	case componentsView:
		m.componentTable, cmd = m.componentTable.Update(msg)
		cmds = append(cmds, cmd)
	case presetsView:
		m.presetList, cmd = m.presetList.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *model) setView(v view) {
	m.currentView = v
	if v == simulationView {
		m.loadInput.Focus()
	} else {
		m.loadInput.Blur()
	}
}

func (m *model) setMessage(msg string, isErr bool) {
	m.message = msg
	m.messageErr = isErr
}

func (m *model) loadPreset(p presets.Preset) {
	m.preset = p
	m.original = p.Graph.Clone()
	m.current = p.Graph.Clone()
	m.lastRun = nil
	m.lastCritical = nil

	pct := 10.0
	if p.LoadIncrease > 0 {
		pct = p.LoadIncrease
	}
	m.loadInput.SetValue(strconv.FormatFloat(pct, 'f', -1, 64))
	m.refreshTable()
	m.setMessage(fmt.Sprintf("Loaded %s (%d nodes, %d lines)", p.Title, len(p.Graph.Nodes), len(p.Graph.Edges)), false)
}

func (m *model) loadPercent() (float64, error) {
	raw := strings.TrimSpace(strings.TrimSuffix(m.loadInput.Value(), "%"))
	if raw == "" {
		return 0, fmt.Errorf("load increase is empty")
	}
	pct, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("load increase %q is not a number", raw)
	}
	if err := validation.ValidateLoadIncrease(pct); err != nil {
		return 0, err
	}
	return pct, nil
}

func (m *model) stepLoad(delta float64) {
	pct, err := m.loadPercent()
	if err != nil {
		pct = 0
	}
	pct = min(100, max(0, pct+delta))
	m.loadInput.SetValue(strconv.FormatFloat(pct, 'f', -1, 64))
	m.setMessage(fmt.Sprintf("Load increase %.0f%%", pct), false)
}

func (m *model) runSimulation() {
	pct, err := m.loadPercent()
	if err != nil {
		m.setMessage(err.Error(), true)
		return
	}

	res := m.sim.Simulate(m.current.Nodes, m.current.Edges, pct, m.random)
	m.lastRun = res
	m.lastCritical = nil
	m.current = res.Graph()
	m.refreshTable()

	m.setMessage(fmt.Sprintf("Cascade %s after %d iterations: %d failures, %s",
		res.Outcome, res.Iterations, len(res.FailureLog), connectedText(res.Connected)), res.Failed())
}

func (m *model) runCritical() {
	m.lastCritical = m.analyzer.Analyze(m.current.Nodes, m.current.Edges)
	m.setMessage(fmt.Sprintf("%d critical components", m.lastCritical.Total()), false)
}

func (m *model) reset() {
	m.current = m.original.Clone()
	m.lastRun = nil
	m.lastCritical = nil
	m.refreshTable()
	m.setMessage("Grid restored to "+m.preset.Title, false)
}

func (m *model) refreshTable() {
	st := cascade.Inspect(m.current, m.warn)
	rows := make([]table.Row, 0, len(st.Nodes)+len(st.Edges))
	for _, states := range [][]cascade.ComponentState{st.Nodes, st.Edges} {
		for _, cs := range states {
			rows = append(rows, table.Row{
				string(cs.Ref.Kind),
				strconv.Itoa(cs.Ref.ID),
				cs.Label,
				fmt.Sprintf("%.2f", cs.Load),
				fmt.Sprintf("%.2f", cs.Limit),
				fmt.Sprintf("%.0f%%", cs.Ratio*100),
				string(cs.State),
			})
		}
	}
	m.componentTable.SetRows(rows)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func connectedText(connected bool) string {
	if connected {
		return "grid connected"
	}
	return "grid split"
}
