package commands

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dd0wney/cluso-gridsim/pkg/algorithms"
	"github.com/dd0wney/cluso-gridsim/pkg/cascade"
	"github.com/dd0wney/cluso-gridsim/pkg/grid"
	"github.com/dd0wney/cluso-gridsim/pkg/presets"
	"github.com/dd0wney/cluso-gridsim/pkg/validation"
	"github.com/spf13/cobra"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactive session on one grid",
	Long: `Start a prompt holding a working copy of the selected grid. Simulations
apply to the working copy so cascades can be stacked; reset restores the grid
as loaded.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		g, preset, err := loadGrid()
		if err != nil {
			return err
		}
		sh := newShell(cmd.InOrStdin(), cmd.OutOrStdout(), preset, g)
		sh.run()
		finish(cmd)
		return nil
	},
}

type shell struct {
	scanner  *bufio.Scanner
	out      io.Writer
	preset   presets.Preset
	original grid.Graph
	current  grid.Graph
	sim      *cascade.Simulator
	analyzer *cascade.Analyzer
}

func newShell(in io.Reader, out io.Writer, p presets.Preset, g grid.Graph) *shell {
	return &shell{
		scanner:  bufio.NewScanner(in),
		out:      out,
		preset:   p,
		original: g.Clone(),
		current:  g.Clone(),
		sim: cascade.New(
			cascade.FromConfig(settings.Simulation),
			cascade.WithLogger(logger),
			cascade.WithMetrics(registry),
		),
		analyzer: cascade.NewAnalyzer(
			cascade.AnalyzerFromConfig(settings.Analysis, settings.Simulation),
			cascade.WithAnalyzerLogger(logger),
			cascade.WithAnalyzerMetrics(registry),
		),
	}
}

func (sh *shell) run() {
	fmt.Fprintln(sh.out, titleStyle.Render("gridsim shell: "+sh.preset.Title))
	fmt.Fprintln(sh.out, "Type 'help' for available commands, 'exit' to quit")
	fmt.Fprintln(sh.out)

	for {
		fmt.Fprint(sh.out, "grid> ")

		if !sh.scanner.Scan() {
			break
		}

		input := strings.TrimSpace(sh.scanner.Text())
		if input == "" {
			continue
		}

		if input == "exit" || input == "quit" {
			fmt.Fprintln(sh.out, "Goodbye!")
			break
		}

		sh.execute(input)
		fmt.Fprintln(sh.out)
	}
}

func (sh *shell) execute(input string) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return
	}

	command := strings.ToLower(parts[0])

	switch command {
	case "help":
		sh.showHelp()

	case "status", "st":
		renderStatus(sh.out, sh.preset.Title, cascade.Inspect(sh.current, settings.Analysis.WarningRatio))

	case "simulate", "sim":
		pct := 10.0
		if sh.preset.LoadIncrease > 0 {
			pct = sh.preset.LoadIncrease
		}
		if len(parts) > 1 {
			v, err := strconv.ParseFloat(parts[1], 64)
			if err != nil {
				fmt.Fprintln(sh.out, errorStyle.Render("Usage: simulate [percent] [random]"))
				return
			}
			pct = v
		}
		if err := validation.ValidateLoadIncrease(pct); err != nil {
			fmt.Fprintln(sh.out, errorStyle.Render(err.Error()))
			return
		}
		random := len(parts) > 2 && (parts[2] == "random" || parts[2] == "r")

		before := sh.current
		res := sh.sim.Simulate(sh.current.Nodes, sh.current.Edges, pct, random)
		renderSimulation(sh.out, sh.preset, before, res, pct, random)
		sh.current = res.Graph()

	case "critical", "spof":
		renderCritical(sh.out, sh.preset.Title, sh.current, sh.analyzer.Analyze(sh.current.Nodes, sh.current.Edges))

	case "trace":
		renderTrace(sh.out, sh.current, algorithms.TraceDFS(sh.current.Nodes, sh.current.Edges))

	case "reset":
		sh.current = sh.original.Clone()
		fmt.Fprintln(sh.out, okStyle.Render("Grid restored to "+sh.preset.Title))

	case "load":
		if len(parts) < 2 {
			fmt.Fprintln(sh.out, errorStyle.Render("Usage: load <preset>"))
			return
		}
		sh.loadPreset(parts[1])

	case "presets":
		catalog, err := presets.Builtin()
		if err != nil {
			fmt.Fprintln(sh.out, errorStyle.Render(err.Error()))
			return
		}
		renderPresets(sh.out, catalog.All())

	case "clear":
		fmt.Fprint(sh.out, "\033[H\033[2J")

	default:
		fmt.Fprintln(sh.out, errorStyle.Render(fmt.Sprintf("Unknown command: %s (type 'help' for available commands)", command)))
	}
}

func (sh *shell) loadPreset(name string) {
	catalog, err := presets.Builtin()
	if err != nil {
		fmt.Fprintln(sh.out, errorStyle.Render(err.Error()))
		return
	}
	p, err := catalog.Get(name)
	if err != nil {
		fmt.Fprintln(sh.out, errorStyle.Render(err.Error()))
		return
	}
	sh.preset = p
	sh.original = p.Graph.Clone()
	sh.current = p.Graph.Clone()
	fmt.Fprintln(sh.out, okStyle.Render(fmt.Sprintf("Loaded %s (%d nodes, %d lines)", p.Title, len(p.Graph.Nodes), len(p.Graph.Edges))))
}

func (sh *shell) showHelp() {
	help := `
Available Commands:

Inspection:
  status, st                 Show loads, states and connectivity
  trace                      Step through the connectivity search

Analysis:
  simulate [pct] [random]    Run a cascade on the working grid
  sim                        Shorthand for simulate
  critical, spof             Find single points of failure

Grid:
  load <preset>              Load a built-in grid
  presets                    List built-in grids
  reset                      Restore the grid as loaded

Other:
  clear                      Clear screen
  help                       Show this help
  exit/quit                  Exit the shell

Examples:
  simulate 12
  simulate 20 random
  load demo-cascade
`
	fmt.Fprintln(sh.out, help)
}
