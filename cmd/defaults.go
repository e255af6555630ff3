package cmd

import (
	"github.com/spf13/cobra"

	"github.com/wannli/trainmaster/sim/scenario"
)

// defaultsCmd prints the built-in scenario, a starting point for custom ones.
var defaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Print the built-in scenario as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := scenario.Default().Marshal()
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}
