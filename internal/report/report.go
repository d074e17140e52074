// Package report writes and reads the combined benchmark artifact.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/beshkenadze/FluidAudio/internal/baseline"
	"github.com/beshkenadze/FluidAudio/internal/bench"
)

// FileName is the fixed name of the combined report inside the output directory.
const FileName = "benchmark_results.json"

// TimestampLayout is the run identity format, also used as the default
// output subdirectory name.
const TimestampLayout = "20060102_150405"

// Combined is the aggregate artifact for one run. It is written exactly once,
// after all selected benchmarks have completed; absent results are kept as
// explicit nulls so a partial run stays inspectable.
type Combined struct {
	Timestamp string                       `json:"timestamp"`
	Mode      string                       `json:"mode"`
	Baselines baseline.Set                 `json:"baselines"`
	Results   map[bench.Kind]*bench.Result `json:"results"`
}

// Write serializes the combined report into outputDir and returns its path.
// An existing report at the same path is overwritten.
func Write(outputDir string, combined *Combined) (string, error) {
	path := filepath.Join(outputDir, FileName)

	file, err := os.Create(path) //nolint:gosec // G304: fixed filename inside the run's output directory
	if err != nil {
		return "", fmt.Errorf("creating combined report: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(combined); err != nil {
		return "", fmt.Errorf("writing combined report: %w", err)
	}

	return path, nil
}

// Read loads a previously written combined report.
func Read(path string) (*Combined, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is operator-supplied
	if err != nil {
		return nil, fmt.Errorf("reading combined report: %w", err)
	}

	var combined Combined
	if err := json.Unmarshal(data, &combined); err != nil {
		return nil, fmt.Errorf("parsing combined report %s: %w", path, err)
	}

	return &combined, nil
}
