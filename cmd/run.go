package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/beshkenadze/FluidAudio/internal/baseline"
	"github.com/beshkenadze/FluidAudio/internal/bench"
	"github.com/beshkenadze/FluidAudio/internal/config"
	"github.com/beshkenadze/FluidAudio/internal/history"
	"github.com/beshkenadze/FluidAudio/internal/output"
	"github.com/beshkenadze/FluidAudio/internal/suite"
)

var (
	runQuick     bool
	runASROnly   bool
	runVADOnly   bool
	runDiarOnly  bool
	runOutputDir string
	runStrict    bool
	runVerbose   bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Build the toolkit and run the selected benchmarks",
	Long: `Builds the FluidAudio toolkit in release mode, runs the selected benchmarks
(all three when no selector flag is given), writes per-benchmark logs and raw
results plus a combined report into the output directory, and compares the
results against the quality baselines.

A build failure aborts the run with a nonzero exit status. Individual
benchmark failures are reported but do not change the exit status unless
--strict is given.

Examples:
  fluidbench run                  # full suite
  fluidbench run --quick          # quick smoke test
  fluidbench run --asr --vad      # ASR and VAD only
  fluidbench run --output-dir /tmp/bench`,
	RunE: func(_ *cobra.Command, _ []string) error {
		log := Logger
		if runVerbose {
			log = newLogger(true)
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		baselines, err := baseline.Load(cfg.BaselinesFile)
		if err != nil {
			return fmt.Errorf("failed to load baselines: %w", err)
		}

		svc := suite.NewService(
			log,
			cfg,
			baselines,
			bench.NewRunner(log),
			output.NewFormatter(os.Stdout),
			newHistorySink(log, cfg),
		)

		summary, err := svc.Run(suite.Options{
			Quick:     runQuick,
			Kinds:     selectedKinds(),
			OutputDir: runOutputDir,
		})
		if err != nil {
			return fmt.Errorf("benchmark run failed: %w", err)
		}

		if runStrict && (len(summary.FailedKinds) > 0 || summary.Regressions > 0) {
			return fmt.Errorf("strict mode: %d benchmark(s) produced no result, %d metric check(s) below baseline",
				len(summary.FailedKinds), summary.Regressions)
		}

		return nil
	},
}

// selectedKinds maps the selector flags to benchmark kinds. No flags means
// all kinds; the flags are not mutually exclusive.
func selectedKinds() []bench.Kind {
	kinds := make([]bench.Kind, 0, 3)
	if runASROnly {
		kinds = append(kinds, bench.KindASR)
	}
	if runVADOnly {
		kinds = append(kinds, bench.KindVAD)
	}
	if runDiarOnly {
		kinds = append(kinds, bench.KindDiarization)
	}
	return kinds
}

// newHistorySink starts the run history sink when enabled. History is
// advisory: a sink that fails to start is dropped with a warning.
func newHistorySink(log *logrus.Logger, cfg *config.Config) history.Sink {
	if !cfg.HistoryEnabled {
		return nil
	}

	sink := history.NewSink(log, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := sink.Start(ctx); err != nil {
		log.WithError(err).Warn("run history unavailable, continuing without it")
		return nil
	}

	return sink
}

func init() {
	runCmd.Flags().BoolVar(&runQuick, "quick", false, "Quick smoke test with smaller datasets")
	runCmd.Flags().BoolVar(&runASROnly, "asr", false, "Run the ASR benchmark")
	runCmd.Flags().BoolVar(&runVADOnly, "vad", false, "Run the VAD benchmark")
	runCmd.Flags().BoolVar(&runDiarOnly, "diar", false, "Run the diarization benchmark")
	runCmd.Flags().StringVar(&runOutputDir, "output-dir", "", "Output directory for results (default: timestamped subdirectory of RESULTS_DIR)")
	runCmd.Flags().BoolVar(&runStrict, "strict", false, "Exit nonzero when any benchmark fails or regresses below baseline")
	runCmd.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(runCmd)
}
