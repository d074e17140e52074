package bench

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Dataset selectors and fixed flags per benchmark kind. Quick mode trades
// coverage for speed: ASR caps the file count, VAD switches to a reduced
// dataset, diarization restricts to a single recording.
const (
	asrSubset        = "test-clean"
	asrQuickMaxFiles = "100"

	vadFullDataset  = "voices-subset"
	vadQuickDataset = "mini50"
	vadThreshold    = "0.5"

	diarQuickRecording = "ES2004a"
)

// Result is the normalized outcome of one invoked benchmark. Raw holds the
// external tool's JSON result mapping as-is; its schema is externally owned
// and varies across versions.
type Result struct {
	Kind     Kind           `json:"kind"`
	Raw      map[string]any `json:"raw_json,omitempty"`
	ExitCode int            `json:"exit_code"`
	LogPath  string         `json:"log_path,omitempty"`
}

// Invoker runs individual benchmarks through the external FluidAudio binary.
// It is stateless across invocations; each run is parameterized only by the
// benchmark kind, the output directory and quick mode.
type Invoker struct {
	log      logrus.FieldLogger
	runner   Runner
	swiftBin string
}

// NewInvoker creates a benchmark invoker.
func NewInvoker(log logrus.FieldLogger, runner Runner, swiftBin string) *Invoker {
	return &Invoker{
		log:      log.WithField("component", "invoker"),
		runner:   runner,
		swiftBin: swiftBin,
	}
}

// Command returns the deterministic argument list for one benchmark kind.
func (inv *Invoker) Command(kind Kind, outputDir string, quick bool) []string {
	args := []string{"run", "-c", "release", "fluidaudio"}
	outputJSON := filepath.Join(outputDir, kind.ResultFile())

	switch kind {
	case KindASR:
		maxFiles := "all"
		if quick {
			maxFiles = asrQuickMaxFiles
		}
		args = append(args, "asr-benchmark",
			"--subset", asrSubset,
			"--max-files", maxFiles,
			"--output", outputJSON)
	case KindVAD:
		dataset := vadFullDataset
		if quick {
			dataset = vadQuickDataset
		}
		args = append(args, "vad-benchmark",
			"--dataset", dataset,
			"--all-files",
			"--threshold", vadThreshold,
			"--output", outputJSON)
	case KindDiarization:
		args = append(args, "diarization-benchmark",
			"--auto-download",
			"--output", outputJSON)
		if quick {
			args = append(args, "--single-file", diarQuickRecording)
		}
	}

	return args
}

// Run invokes one benchmark and returns its result, or nil when the
// benchmark produced nothing usable. A nil result is not fatal: sibling
// benchmarks and report writing proceed regardless.
func (inv *Invoker) Run(kind Kind, outputDir string, quick bool) *Result {
	log := inv.log.WithField("benchmark", string(kind))
	logPath := filepath.Join(outputDir, kind.LogFile())

	log.WithField("quick", quick).Info("running benchmark")

	code, _, err := inv.runner.Run(inv.swiftBin, inv.Command(kind, outputDir, quick), logPath)
	if err != nil {
		log.WithError(err).Error("benchmark invocation failed")
		return nil
	}

	if code != 0 {
		log.WithFields(logrus.Fields{
			"exit_code": code,
			"log":       logPath,
		}).Error("benchmark exited nonzero")

		return nil
	}

	raw, err := readResultFile(filepath.Join(outputDir, kind.ResultFile()))
	if err != nil {
		if os.IsNotExist(err) {
			// Success without an output file counts as "no result", not an error.
			log.Warn("benchmark succeeded but wrote no result file")
			return nil
		}

		log.WithError(err).Error("failed to read benchmark result file")

		return nil
	}

	log.Info("benchmark complete")

	return &Result{
		Kind:     kind,
		Raw:      raw,
		ExitCode: code,
		LogPath:  logPath,
	}
}

// readResultFile parses the external tool's JSON result mapping.
func readResultFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: result path is a fixed filename inside the run's output directory
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing result file %s: %w", path, err)
	}

	return raw, nil
}
