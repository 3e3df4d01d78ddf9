package commands

import (
	"fmt"
	"os"

	"github.com/dd0wney/cluso-gridsim/pkg/config"
	"github.com/dd0wney/cluso-gridsim/pkg/grid"
	"github.com/dd0wney/cluso-gridsim/pkg/logging"
	"github.com/dd0wney/cluso-gridsim/pkg/metrics"
	"github.com/dd0wney/cluso-gridsim/pkg/presets"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	cfgFile     string
	presetName  string
	gridFile    string
	jsonOutput  bool
	verbose     bool
	showMetrics bool

	settings config.Config
	logger   = logging.NewNopLogger()
	registry = metrics.DefaultRegistry()
)

// flagKeys maps command flags onto config keys so a flag overrides the
// config file and GRIDSIM_* environment.
var flagKeys = map[string]string{
	"max-steps":          "simulation.max_steps",
	"stop-on-disconnect": "simulation.stop_on_disconnect",
	"seed":               "simulation.seed",
	"redistribution":     "simulation.redistribution",
	"mode":               "analysis.critical_mode",
	"warn":               "analysis.warning_ratio",
	"workers":            "analysis.workers",
	"log-level":          "logging.level",
}

var rootCmd = &cobra.Command{
	Use:   "gridsim",
	Short: "Power grid cascading-failure simulator",
	Long: `gridsim - cascading failure analysis for small transmission grids

Load a grid from the built-in catalog or a YAML/JSON file, raise its load,
and watch overloads cascade. Find the single points of failure.`,
	SilenceUsage:      true,
	PersistentPreRunE: initConfig,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML)")
	rootCmd.PersistentFlags().StringVarP(&presetName, "preset", "p", "simple-4-node", "built-in grid to load")
	rootCmd.PersistentFlags().StringVarP(&gridFile, "file", "f", "", "grid file to load instead of a preset")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print results as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "write structured logs to stderr")
	rootCmd.PersistentFlags().String("log-level", "INFO", "log level when --verbose is set")
	rootCmd.PersistentFlags().BoolVar(&showMetrics, "metrics", false, "print collected metrics after the command")

	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(criticalCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(traceCmd)
	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(shellCmd)
}

func initConfig(cmd *cobra.Command, args []string) error {
	v := config.NewViper()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	}
	if err := bindFlags(v, cmd.Flags()); err != nil {
		return err
	}

	cfg, err := config.Decode(v)
	if err != nil {
		return err
	}
	settings = cfg

	if verbose {
		logger = logging.NewJSONLogger(os.Stderr, logging.ParseLevel(cfg.Logging.Level))
		logging.SetDefaultLogger(logger)
	}
	return nil
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	var err error
	flags.VisitAll(func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok || err != nil {
			return
		}
		err = v.BindPFlag(key, f)
	})
	return err
}

// loadGrid returns the selected grid and, for presets, its metadata
func loadGrid() (grid.Graph, presets.Preset, error) {
	if gridFile != "" {
		g, err := presets.LoadFile(gridFile)
		if err != nil {
			return grid.Graph{}, presets.Preset{}, err
		}
		return g, presets.Preset{Name: gridFile, Title: gridFile, Graph: g}, nil
	}

	catalog, err := presets.Builtin()
	if err != nil {
		return grid.Graph{}, presets.Preset{}, err
	}
	p, err := catalog.Get(presetName)
	if err != nil {
		return grid.Graph{}, presets.Preset{}, err
	}
	return p.Graph, p, nil
}

func finish(cmd *cobra.Command) {
	if showMetrics {
		renderMetrics(cmd.ErrOrStderr(), registry)
	}
}
