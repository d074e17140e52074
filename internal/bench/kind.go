// Package bench invokes the FluidAudio benchmark binary and collects its raw results.
package bench

import (
	"errors"
	"fmt"
)

// Kind identifies one supported benchmark.
type Kind string

const (
	// KindASR is the automatic speech recognition benchmark.
	KindASR Kind = "asr"
	// KindVAD is the voice activity detection benchmark.
	KindVAD Kind = "vad"
	// KindDiarization is the speaker diarization benchmark.
	KindDiarization Kind = "diarization"
)

// ErrUnknownKind is returned when a benchmark kind is not one of asr, vad or diarization.
var ErrUnknownKind = errors.New("unknown benchmark kind")

// AllKinds returns the supported benchmark kinds in execution order.
// Benchmarks always run in this order because they share the same binary
// and datasets and must never run concurrently.
func AllKinds() []Kind {
	return []Kind{KindASR, KindVAD, KindDiarization}
}

// ParseKind validates a benchmark kind string.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindASR, KindVAD, KindDiarization:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// ResultFile returns the fixed per-kind filename the external tool writes
// its JSON results to inside the output directory.
func (k Kind) ResultFile() string {
	return fmt.Sprintf("%s_results.json", string(k))
}

// LogFile returns the fixed per-kind filename the captured process output
// is written to inside the output directory.
func (k Kind) LogFile() string {
	return fmt.Sprintf("%s_log.txt", string(k))
}
