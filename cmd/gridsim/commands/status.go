package commands

import (
	"github.com/dd0wney/cluso-gridsim/pkg/algorithms"
	"github.com/dd0wney/cluso-gridsim/pkg/cascade"
	"github.com/dd0wney/cluso-gridsim/pkg/grid"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show loads, states and connectivity of a grid",
	RunE: func(cmd *cobra.Command, args []string) error {
		g, preset, err := loadGrid()
		if err != nil {
			return err
		}

		st := cascade.Inspect(g, settings.Analysis.WarningRatio)
		if jsonOutput {
			return writeJSON(cmd.OutOrStdout(), st)
		}
		renderStatus(cmd.OutOrStdout(), preset.Title, st)
		return nil
	},
}

var traceCmd = &cobra.Command{
	Use:   "trace",
	Short: "Step through the connectivity search",
	Long: `Replay the depth-first search used for the connectivity check, starting at
the first active node, and list any nodes it never reached.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		g, _, err := loadGrid()
		if err != nil {
			return err
		}

		tr := algorithms.TraceDFS(g.Nodes, g.Edges)
		if jsonOutput {
			return writeJSON(cmd.OutOrStdout(), tr)
		}
		renderTrace(cmd.OutOrStdout(), g, tr)
		return nil
	},
}

func init() {
	statusCmd.Flags().Float64("warn", grid.DefaultWarningRatio, "load ratio flagged as a warning")
}
