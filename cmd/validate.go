package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wannli/trainmaster/sim/scenario"
)

var validatePath string

// validateCmd loads a scenario and assembles it without running.
var validateCmd = &cobra.Command{
	Use:          "validate",
	Short:        "Check a scenario file without running it",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		spec, err := scenario.Load(validatePath)
		if err != nil {
			return err
		}
		// Build draws depths and fleet positions, so placement failures only show up here.
		s, err := spec.Build(scenario.Options{RunID: "validate"})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d stations, %d trains, %d stationmasters)\n",
			validatePath, len(s.Registry.Stations()), len(s.Registry.Trains()), len(s.Stationmasters()))
		return nil
	},
}

func init() {
	validateCmd.Flags().StringVar(&validatePath, "scenario", "", "Path to scenario YAML")
	_ = validateCmd.MarkFlagRequired("scenario")
}
