package suite

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beshkenadze/FluidAudio/internal/baseline"
	"github.com/beshkenadze/FluidAudio/internal/bench"
	"github.com/beshkenadze/FluidAudio/internal/config"
	"github.com/beshkenadze/FluidAudio/internal/output"
	"github.com/beshkenadze/FluidAudio/internal/report"
)

// fakeRunner scripts the build and each benchmark without spawning processes.
type fakeRunner struct {
	buildExit int
	benchExit map[bench.Kind]int
	results   map[bench.Kind]map[string]any

	calls [][]string
}

func (f *fakeRunner) Run(_ string, args []string, _ string) (int, string, error) {
	f.calls = append(f.calls, args)

	if len(args) > 0 && args[0] == "build" {
		return f.buildExit, "", nil
	}

	kind := kindFromArgs(args)
	if code, ok := f.benchExit[kind]; ok && code != 0 {
		return code, "", nil
	}

	if raw, ok := f.results[kind]; ok {
		data, err := json.Marshal(raw)
		if err != nil {
			panic(err)
		}
		if err := os.WriteFile(outputFlagValue(args), data, 0o600); err != nil {
			panic(err)
		}
	}

	return 0, "", nil
}

func kindFromArgs(args []string) bench.Kind {
	for _, arg := range args {
		if sub, ok := strings.CutSuffix(arg, "-benchmark"); ok {
			if sub == "diarization" {
				return bench.KindDiarization
			}
			return bench.Kind(sub)
		}
	}
	return ""
}

func outputFlagValue(args []string) string {
	for i, arg := range args {
		if arg == "--output" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func newTestService(t *testing.T, runner bench.Runner) Service {
	t.Helper()

	log := logrus.New()
	log.SetLevel(logrus.DebugLevel)
	log.SetOutput(os.Stderr)

	cfg := &config.Config{
		SwiftBin:   "swift",
		ResultsDir: filepath.Join(t.TempDir(), "benchmark-results"),
	}

	return NewService(log, cfg, baseline.Defaults(), runner, output.NewFormatter(io.Discard), nil)
}

func allPassingResults() map[bench.Kind]map[string]any {
	return map[bench.Kind]map[string]any{
		bench.KindASR:         {"wer": 0.055, "rtfx": 210.0},
		bench.KindVAD:         {"f1_score": 88.0, "rtfx": 520.0},
		bench.KindDiarization: {"der": 0.17, "rtfx": 1.3},
	}
}

func TestRunAllKindsInFixedOrder(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{results: allPassingResults()}
	svc := newTestService(t, runner)

	summary, err := svc.Run(Options{})
	require.NoError(t, err)

	// Build first, then the three benchmarks exactly once each, in order.
	require.Len(t, runner.calls, 4)
	assert.Equal(t, "build", runner.calls[0][0])
	assert.Contains(t, runner.calls[1], "asr-benchmark")
	assert.Contains(t, runner.calls[2], "vad-benchmark")
	assert.Contains(t, runner.calls[3], "diarization-benchmark")

	assert.Empty(t, summary.FailedKinds)
	assert.Zero(t, summary.Regressions)
	assert.Len(t, summary.Verdicts, 3)
	assert.FileExists(t, summary.ReportPath)
}

func TestRunBuildFailureIsFatal(t *testing.T) {
	t.Parallel()

	outputDir := t.TempDir()
	runner := &fakeRunner{buildExit: 1, results: allPassingResults()}
	svc := newTestService(t, runner)

	_, err := svc.Run(Options{OutputDir: outputDir})
	require.ErrorIs(t, err, bench.ErrBuildFailed)

	// No benchmark ran and no combined report was written.
	assert.Len(t, runner.calls, 1)
	assert.NoFileExists(t, filepath.Join(outputDir, report.FileName))
}

func TestRunBenchmarkFailureIsIsolated(t *testing.T) {
	t.Parallel()

	outputDir := t.TempDir()
	runner := &fakeRunner{
		benchExit: map[bench.Kind]int{bench.KindVAD: 2},
		results:   allPassingResults(),
	}
	svc := newTestService(t, runner)

	summary, err := svc.Run(Options{OutputDir: outputDir})
	require.NoError(t, err)

	// Siblings still ran and the report still got written.
	require.Len(t, runner.calls, 4)
	assert.Equal(t, []bench.Kind{bench.KindVAD}, summary.FailedKinds)
	assert.Len(t, summary.Verdicts, 2)

	loaded, err := report.Read(summary.ReportPath)
	require.NoError(t, err)
	require.Contains(t, loaded.Results, bench.KindVAD)
	assert.Nil(t, loaded.Results[bench.KindVAD])
	require.NotNil(t, loaded.Results[bench.KindASR])
	require.NotNil(t, loaded.Results[bench.KindDiarization])
}

func TestRunSelectedKindsOnly(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{results: allPassingResults()}
	svc := newTestService(t, runner)

	summary, err := svc.Run(Options{Kinds: []bench.Kind{bench.KindVAD}})
	require.NoError(t, err)

	require.Len(t, runner.calls, 2)
	assert.Contains(t, runner.calls[1], "vad-benchmark")

	loaded, err := report.Read(summary.ReportPath)
	require.NoError(t, err)
	assert.Contains(t, loaded.Results, bench.KindVAD)
	assert.NotContains(t, loaded.Results, bench.KindASR)
}

func TestRunNormalizesKindOrder(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{results: allPassingResults()}
	svc := newTestService(t, runner)

	// Selection order never changes execution order.
	_, err := svc.Run(Options{Kinds: []bench.Kind{bench.KindDiarization, bench.KindASR}})
	require.NoError(t, err)

	require.Len(t, runner.calls, 3)
	assert.Contains(t, runner.calls[1], "asr-benchmark")
	assert.Contains(t, runner.calls[2], "diarization-benchmark")
}

func TestRunExistingOutputDirIsReused(t *testing.T) {
	t.Parallel()

	outputDir := t.TempDir()
	runner := &fakeRunner{results: allPassingResults()}
	svc := newTestService(t, runner)

	first, err := svc.Run(Options{OutputDir: outputDir})
	require.NoError(t, err)

	// Re-running into the same directory succeeds and overwrites prior files.
	second, err := svc.Run(Options{OutputDir: outputDir, Quick: true})
	require.NoError(t, err)
	assert.Equal(t, first.ReportPath, second.ReportPath)

	loaded, err := report.Read(second.ReportPath)
	require.NoError(t, err)
	assert.Equal(t, "quick", loaded.Mode)
}

func TestRunDefaultOutputDirIsTimestamped(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{results: allPassingResults()}
	svc := newTestService(t, runner)

	summary, err := svc.Run(Options{})
	require.NoError(t, err)

	name := filepath.Base(summary.OutputDir)
	assert.Regexp(t, `^\d{8}_\d{6}$`, name)

	loaded, err := report.Read(summary.ReportPath)
	require.NoError(t, err)
	assert.Equal(t, name, loaded.Timestamp)
	assert.Equal(t, "full", loaded.Mode)
}

func TestRunCountsRegressions(t *testing.T) {
	t.Parallel()

	results := allPassingResults()
	results[bench.KindASR] = map[string]any{"wer": 0.09} // quality and throughput both below baseline
	runner := &fakeRunner{results: results}
	svc := newTestService(t, runner)

	summary, err := svc.Run(Options{})
	require.NoError(t, err)

	assert.Empty(t, summary.FailedKinds)
	assert.Equal(t, 2, summary.Regressions)
}

func TestRunUnwritableOutputDir(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	blocker := filepath.Join(base, "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	runner := &fakeRunner{results: allPassingResults()}
	svc := newTestService(t, runner)

	_, err := svc.Run(Options{OutputDir: filepath.Join(blocker, "out")})
	require.Error(t, err)
	assert.False(t, errors.Is(err, bench.ErrBuildFailed))
	assert.Empty(t, runner.calls)
}
