package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/beshkenadze/FluidAudio/internal/actions"
)

var baselinesCmd = &cobra.Command{
	Use:   "baselines",
	Short: "Display the effective baseline table",
	Long: `Shows the quality baselines benchmarks are judged against: the built-in
defaults merged with the override file configured via BASELINES_FILE.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		if err := actions.ShowBaselines(); err != nil {
			return fmt.Errorf("failed to show baselines: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(baselinesCmd)
}
