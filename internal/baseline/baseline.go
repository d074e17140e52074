// Package baseline defines the fixed quality baselines benchmark runs are judged against.
package baseline

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/beshkenadze/FluidAudio/internal/bench"
)

var (
	errQualityRequired    = errors.New("baseline quality percentage must be positive")
	errThroughputRequired = errors.New("baseline rtfx_min must be positive")
)

// Baseline holds the reference values for one benchmark kind. QualityPercent
// is the primary quality metric expressed as a percentage (WER, F1 or DER);
// RTFxMin is the minimum acceptable real-time factor.
type Baseline struct {
	Metric         string  `json:"metric" yaml:"metric"`
	QualityPercent float64 `json:"quality_percent" yaml:"quality_percent"`
	RTFxMin        float64 `json:"rtfx_min" yaml:"rtfx_min"`
	Description    string  `json:"description" yaml:"description"`
}

// Set maps each supported benchmark kind to its baseline. A set always holds
// exactly one entry per supported kind and is never mutated after Load.
type Set map[bench.Kind]Baseline

// Defaults returns the built-in baseline table, measured values recorded in
// Documentation/Benchmarks.md of the FluidAudio toolkit.
func Defaults() Set {
	return Set{
		bench.KindASR: {
			Metric:         "wer",
			QualityPercent: 5.8,
			RTFxMin:        200, // M4 Pro: ~210x
			Description:    "LibriSpeech test-clean, Parakeet TDT 0.6B",
		},
		bench.KindVAD: {
			Metric:         "f1",
			QualityPercent: 85.0,
			RTFxMin:        500,
			Description:    "VOiCES dataset, Silero VAD",
		},
		bench.KindDiarization: {
			Metric:         "der",
			QualityPercent: 17.7,
			RTFxMin:        1.0,
			Description:    "AMI SDM, pyannote-based",
		},
	}
}

// Load builds the baseline set for a run. With an empty path the built-in
// defaults are returned; otherwise the YAML file at path overrides the
// defaults per kind. The resulting set is validated so the comparator can
// rely on every kind carrying positive thresholds.
func Load(path string) (Set, error) {
	set := Defaults()

	if path == "" {
		return set, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("reading baselines file %s: %w", path, err)
	}

	var overrides map[string]Baseline
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("parsing baselines file %s: %w", path, err)
	}

	for name, override := range overrides {
		kind, err := bench.ParseKind(name)
		if err != nil {
			return nil, fmt.Errorf("baselines file %s: %w", path, err)
		}

		merged := set[kind]
		if override.Metric != "" {
			merged.Metric = override.Metric
		}
		if override.QualityPercent != 0 {
			merged.QualityPercent = override.QualityPercent
		}
		if override.RTFxMin != 0 {
			merged.RTFxMin = override.RTFxMin
		}
		if override.Description != "" {
			merged.Description = override.Description
		}
		set[kind] = merged
	}

	if err := set.validate(); err != nil {
		return nil, fmt.Errorf("baselines file %s: %w", path, err)
	}

	return set, nil
}

func (s Set) validate() error {
	for _, kind := range bench.AllKinds() {
		b, ok := s[kind]
		if !ok {
			return fmt.Errorf("%w: %q", bench.ErrUnknownKind, kind)
		}
		if b.QualityPercent <= 0 {
			return fmt.Errorf("%s: %w", kind, errQualityRequired)
		}
		if b.RTFxMin <= 0 {
			return fmt.Errorf("%s: %w", kind, errThroughputRequired)
		}
	}

	return nil
}
