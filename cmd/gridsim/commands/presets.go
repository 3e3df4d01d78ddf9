package commands

import (
	"github.com/dd0wney/cluso-gridsim/pkg/presets"
	"github.com/spf13/cobra"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the built-in grids",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := presets.Builtin()
		if err != nil {
			return err
		}
		if jsonOutput {
			return writeJSON(cmd.OutOrStdout(), catalog.All())
		}
		renderPresets(cmd.OutOrStdout(), catalog.All())
		return nil
	},
}

var presetsShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print a preset as a grid file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := presets.Builtin()
		if err != nil {
			return err
		}
		p, err := catalog.Get(args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			return writeJSON(cmd.OutOrStdout(), p.Graph)
		}
		data, err := presets.Marshal(p.Graph)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	presetsCmd.AddCommand(presetsShowCmd)
}
