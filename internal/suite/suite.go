// Package suite sequences a full benchmark run: build, invoke, report, judge.
package suite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/beshkenadze/FluidAudio/internal/baseline"
	"github.com/beshkenadze/FluidAudio/internal/bench"
	"github.com/beshkenadze/FluidAudio/internal/compare"
	"github.com/beshkenadze/FluidAudio/internal/config"
	"github.com/beshkenadze/FluidAudio/internal/history"
	"github.com/beshkenadze/FluidAudio/internal/output"
	"github.com/beshkenadze/FluidAudio/internal/report"
)

// Options selects what one run does. An empty Kinds slice means all supported
// benchmarks; the output directory defaults to a timestamped subdirectory of
// the configured results root.
type Options struct {
	Quick     bool
	Kinds     []bench.Kind
	OutputDir string
}

// Summary describes a completed run. FailedKinds lists benchmarks that
// produced no result; Regressions counts judged metric checks that failed.
// Neither affects the run outcome unless the caller opts into strict mode.
type Summary struct {
	ReportPath  string
	OutputDir   string
	Verdicts    []compare.KindVerdict
	FailedKinds []bench.Kind
	Regressions int
}

// Service orchestrates benchmark runs.
type Service interface {
	Run(opts Options) (*Summary, error)
}

type service struct {
	log       logrus.FieldLogger
	cfg       *config.Config
	baselines baseline.Set
	builder   *bench.Builder
	invoker   *bench.Invoker
	formatter output.Formatter
	sink      history.Sink
}

// NewService creates a benchmark suite service. The sink may be nil when run
// history is disabled. Passing a custom runner keeps external invocations
// stubbable in tests.
func NewService(log logrus.FieldLogger, cfg *config.Config, baselines baseline.Set, runner bench.Runner, formatter output.Formatter, sink history.Sink) Service {
	return &service{
		log:       log.WithField("service", "suite"),
		cfg:       cfg,
		baselines: baselines,
		builder:   bench.NewBuilder(log, runner, cfg.SwiftBin),
		invoker:   bench.NewInvoker(log, runner, cfg.SwiftBin),
		formatter: formatter,
		sink:      sink,
	}
}

// Run executes the full sequence. Only a build failure (or an inability to
// create the output directory or write the report) is fatal; individual
// benchmark failures are isolated and the comparison is advisory.
//
// Benchmarks run strictly one at a time, in fixed order, because they share
// the external binary and its datasets. No timeout is applied to external
// invocations.
func (s *service) Run(opts Options) (*Summary, error) {
	timestamp := time.Now().Format(report.TimestampLayout)

	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = filepath.Join(s.cfg.ResultsDir, timestamp)
	}

	// Idempotent: re-running into an existing directory overwrites prior
	// result files at the same paths.
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	mode := "full"
	if opts.Quick {
		mode = "quick"
	}

	s.log.WithFields(logrus.Fields{
		"mode":   mode,
		"output": outputDir,
		"time":   timestamp,
	}).Info("starting benchmark run")

	s.formatter.PrintPhase("Building release")
	if err := s.builder.BuildRelease(); err != nil {
		s.formatter.PrintError("Build failed", err)
		return nil, err
	}
	s.formatter.PrintSuccess("Build successful")

	kinds := selectKinds(opts.Kinds)

	results := make(map[bench.Kind]*bench.Result, len(kinds))
	failed := make([]bench.Kind, 0, len(kinds))

	for _, kind := range kinds {
		s.formatter.PrintPhase(fmt.Sprintf("%s benchmark", displayName(kind)))

		start := time.Now()
		res := s.invoker.Run(kind, outputDir, opts.Quick)
		results[kind] = res

		if res == nil {
			failed = append(failed, kind)
			s.formatter.PrintError(fmt.Sprintf("%s benchmark produced no result", kind), nil)

			continue
		}

		s.formatter.PrintProgress(fmt.Sprintf("%s benchmark complete", kind), time.Since(start))
	}

	combined := &report.Combined{
		Timestamp: timestamp,
		Mode:      mode,
		Baselines: s.baselines,
		Results:   results,
	}

	reportPath, err := report.Write(outputDir, combined)
	if err != nil {
		return nil, err
	}

	verdicts := compare.Judge(results, s.baselines)

	s.formatter.PrintPhase("Results vs baselines")
	s.formatter.PrintVerdicts(verdicts)

	s.recordHistory(timestamp, mode, verdicts)

	s.formatter.PrintReportPath(reportPath)

	return &Summary{
		ReportPath:  reportPath,
		OutputDir:   outputDir,
		Verdicts:    verdicts,
		FailedKinds: failed,
		Regressions: countRegressions(verdicts),
	}, nil
}

// recordHistory is best-effort: history failures never affect the run.
func (s *service) recordHistory(timestamp, mode string, verdicts []compare.KindVerdict) {
	if s.sink == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.sink.RecordRun(ctx, timestamp, mode, verdicts); err != nil {
		s.log.WithError(err).Warn("failed to record run history")
	}
}

// selectKinds normalizes the requested kinds against the fixed execution
// order. Empty means all.
func selectKinds(requested []bench.Kind) []bench.Kind {
	if len(requested) == 0 {
		return bench.AllKinds()
	}

	want := make(map[bench.Kind]bool, len(requested))
	for _, kind := range requested {
		want[kind] = true
	}

	kinds := make([]bench.Kind, 0, len(want))
	for _, kind := range bench.AllKinds() {
		if want[kind] {
			kinds = append(kinds, kind)
		}
	}

	return kinds
}

func displayName(kind bench.Kind) string {
	switch kind {
	case bench.KindASR, bench.KindVAD:
		return strings.ToUpper(string(kind))
	default:
		return strings.ToUpper(string(kind[:1])) + string(kind[1:])
	}
}

func countRegressions(verdicts []compare.KindVerdict) int {
	count := 0
	for _, v := range verdicts {
		if !v.Quality.Passed {
			count++
		}
		if !v.Throughput.Passed {
			count++
		}
	}

	return count
}

// Compile-time interface compliance check
var _ Service = (*service)(nil)
