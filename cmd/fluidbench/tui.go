package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"

	"github.com/beshkenadze/FluidAudio/internal/actions"
	"github.com/beshkenadze/FluidAudio/internal/bench"
	"github.com/beshkenadze/FluidAudio/internal/interactive"
)

func runInteractive() {
	fmt.Println("FluidAudio Benchmark Suite - Interactive Mode")
	fmt.Println("=============================================")
	fmt.Println()

	for {
		options := []interactive.MenuOption{
			{
				Name:        "Run Full Suite",
				Description: "Build and run all benchmarks against the full datasets",
				Action: func() error {
					return runCLICommand("run")
				},
			},
			{
				Name:        "Quick Run",
				Description: "Smoke test with reduced datasets",
				Action: func() error {
					return runCLICommand("run", "--quick")
				},
			},
			{
				Name:        "Single Benchmark",
				Description: "Run one benchmark (ASR, VAD or diarization)",
				Action:      runSingleBenchmarkInteractive,
			},
			{
				Name:        "Show Baselines",
				Description: "Display the effective baseline table",
				Action: func() error {
					if err := actions.ShowBaselines(); err != nil {
						fmt.Printf("\n❌ Error: %v\n", err)
					}
					interactive.PauseForEnter()
					return nil
				},
			},
			{
				Name:        "Show Config",
				Description: "Display current environment configuration",
				Action: func() error {
					if err := actions.ShowConfig(); err != nil {
						fmt.Printf("\n❌ Error: %v\n", err)
					}
					interactive.PauseForEnter()
					return nil
				},
			},
		}

		if err := interactive.ShowMainMenu(options); err != nil {
			if errors.Is(err, interactive.ErrExit) {
				fmt.Println("Goodbye!")
				return
			}
			log.Fatal(err)
		}

		fmt.Println()
	}
}

func runSingleBenchmarkInteractive() error {
	kinds := make([]string, 0, 3)
	for _, kind := range bench.AllKinds() {
		kinds = append(kinds, string(kind))
	}

	selected, err := interactive.SelectFromList("Select benchmark:", kinds)
	if err != nil {
		fmt.Println("Selection canceled.")
		interactive.PauseForEnter()
		return nil
	}

	quick := interactive.Confirm("Quick mode?")

	args := []string{"run", "--" + kindFlag(selected)}
	if quick {
		args = append(args, "--quick")
	}

	return runCLICommand(args...)
}

// kindFlag maps a benchmark kind to its run-command selector flag.
func kindFlag(kind string) string {
	if kind == string(bench.KindDiarization) {
		return "diar"
	}
	return kind
}

// runCLICommand re-invokes this binary with CLI arguments so the interactive
// menu and the CLI share one orchestration path.
func runCLICommand(args ...string) error {
	binaryPath, err := os.Executable()
	if err != nil {
		fmt.Printf("\n❌ Cannot locate executable: %v\n", err)
		interactive.PauseForEnter()
		return nil
	}

	fmt.Printf("\n🚀 Running: fluidbench %v\n\n", args)

	cmd := exec.Command(binaryPath, args...) //nolint:gosec // G204: binaryPath is this executable and args are controlled by menu selections
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	if err := cmd.Run(); err != nil {
		fmt.Printf("\n❌ Command failed: %v\n", err)
		interactive.PauseForEnter()
		return nil
	}

	interactive.PauseForEnter()
	return nil
}
