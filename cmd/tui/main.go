package main

import (
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dd0wney/cluso-gridsim/pkg/cascade"
	"github.com/dd0wney/cluso-gridsim/pkg/config"
	"github.com/dd0wney/cluso-gridsim/pkg/logging"
	"github.com/dd0wney/cluso-gridsim/pkg/presets"
	"github.com/spf13/pflag"
)

func main() {
	cfgFile := pflag.StringP("config", "c", "", "config file (YAML)")
	presetName := pflag.StringP("preset", "p", "simple-4-node", "built-in grid to start with")
	gridFile := pflag.StringP("file", "f", "", "grid file to start with instead of a preset")
	logFile := pflag.String("log", "", "write structured logs to this file")
	pflag.Parse()

	cfg, err := config.Load(*cfgFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// The screen belongs to the TUI, so logs only go to a file
	logger := logging.NewNopLogger()
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		defer f.Close()
		logger = logging.NewJSONLogger(f, logging.ParseLevel(cfg.Logging.Level))
	}

	catalog, err := presets.Builtin()
	if err != nil {
		log.Fatalf("Failed to load presets: %v", err)
	}

	var start presets.Preset
	if *gridFile != "" {
		g, err := presets.LoadFile(*gridFile)
		if err != nil {
			log.Fatalf("Failed to load grid: %v", err)
		}
		start = presets.Preset{Name: *gridFile, Title: *gridFile, Graph: g}
	} else {
		start, err = catalog.Get(*presetName)
		if err != nil {
			log.Fatalf("Failed to load preset: %v", err)
		}
	}

	sim := cascade.New(cascade.FromConfig(cfg.Simulation), cascade.WithLogger(logger))
	analyzer := cascade.NewAnalyzer(
		cascade.AnalyzerFromConfig(cfg.Analysis, cfg.Simulation),
		cascade.WithAnalyzerLogger(logger),
	)

	p := tea.NewProgram(initialModel(catalog, start, sim, analyzer, cfg.Analysis.WarningRatio), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("Error running program: %v", err)
	}
}
