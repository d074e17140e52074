// Package actions holds operations shared by the CLI commands and the
// interactive menu.
package actions

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"

	"github.com/beshkenadze/FluidAudio/internal/baseline"
	"github.com/beshkenadze/FluidAudio/internal/bench"
	"github.com/beshkenadze/FluidAudio/internal/config"
)

// ShowConfig displays the current configuration
func ShowConfig() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	fmt.Println(cfg.String())
	return nil
}

// ShowBaselines displays the effective baseline table, built-in defaults
// merged with the configured override file.
func ShowBaselines() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	baselines, err := baseline.Load(cfg.BaselinesFile)
	if err != nil {
		return fmt.Errorf("failed to load baselines: %w", err)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Benchmark", "Metric", "Quality", "RTFx Min", "Description"})
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, kind := range bench.AllKinds() {
		b := baselines[kind]
		table.Append([]string{
			string(kind),
			b.Metric,
			fmt.Sprintf("%.1f%%", b.QualityPercent),
			fmt.Sprintf("%.1fx", b.RTFxMin),
			b.Description,
		})
	}

	table.Render()
	return nil
}
