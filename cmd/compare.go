package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/beshkenadze/FluidAudio/internal/compare"
	"github.com/beshkenadze/FluidAudio/internal/output"
	"github.com/beshkenadze/FluidAudio/internal/report"
)

var compareCmd = &cobra.Command{
	Use:   "compare <report.json>",
	Short: "Re-judge an existing combined report",
	Long: `Loads a previously written combined report and re-runs the baseline
comparison against the baselines stored in it, without invoking any
benchmark.

Example:
  fluidbench compare benchmark-results/20260830_120000/benchmark_results.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		combined, err := report.Read(args[0])
		if err != nil {
			return fmt.Errorf("failed to load report: %w", err)
		}

		formatter := output.NewFormatter(os.Stdout)
		formatter.PrintPhase(fmt.Sprintf("Results vs baselines (%s run from %s)", combined.Mode, combined.Timestamp))
		formatter.PrintVerdicts(compare.Judge(combined.Results, combined.Baselines))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)
}
