package commands

import (
	"github.com/dd0wney/cluso-gridsim/pkg/cascade"
	"github.com/spf13/cobra"
)

var criticalCmd = &cobra.Command{
	Use:     "critical",
	Aliases: []string{"spof"},
	Short:   "Find single points of failure",
	Long: `Remove each active node and line in turn. A node is critical when its loss
splits the grid. A line is critical when its loss splits the grid or, in
redistribution mode, when shedding its load overloads something new.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		g, preset, err := loadGrid()
		if err != nil {
			return err
		}

		analyzer := cascade.NewAnalyzer(
			cascade.AnalyzerFromConfig(settings.Analysis, settings.Simulation),
			cascade.WithAnalyzerLogger(logger),
			cascade.WithAnalyzerMetrics(registry),
		)
		res := analyzer.Analyze(g.Nodes, g.Edges)

		if jsonOutput {
			return writeJSON(cmd.OutOrStdout(), res)
		}
		renderCritical(cmd.OutOrStdout(), preset.Title, g, res)
		finish(cmd)
		return nil
	},
}

func init() {
	criticalCmd.Flags().String("mode", string(cascade.CriticalWithRedistribution), "line criterion: redistribution or disconnect")
	criticalCmd.Flags().Int("workers", 1, "goroutines used to test removals")
	criticalCmd.Flags().String("redistribution", string(cascade.RedistributionSequential), "endpoint mode: sequential or snapshot")
}
