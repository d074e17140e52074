package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beshkenadze/FluidAudio/internal/baseline"
	"github.com/beshkenadze/FluidAudio/internal/bench"
)

func TestWriteAlwaysContainsTopLevelKeys(t *testing.T) {
	t.Parallel()

	// Even with zero successful benchmarks the artifact carries all four keys.
	dir := t.TempDir()
	combined := &Combined{
		Timestamp: "20260830_120000",
		Mode:      "quick",
		Baselines: baseline.Defaults(),
		Results:   map[bench.Kind]*bench.Result{},
	}

	path, err := Write(dir, combined)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, FileName), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &decoded))

	for _, key := range []string{"timestamp", "mode", "baselines", "results"} {
		assert.Contains(t, decoded, key)
	}
}

func TestWriteKeepsAbsentResultsAsNull(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	combined := &Combined{
		Timestamp: "20260830_120000",
		Mode:      "full",
		Baselines: baseline.Defaults(),
		Results: map[bench.Kind]*bench.Result{
			bench.KindASR: {Kind: bench.KindASR, Raw: map[string]any{"wer": 0.05}},
			bench.KindVAD: nil,
		},
	}

	path, err := Write(dir, combined)
	require.NoError(t, err)

	loaded, err := Read(path)
	require.NoError(t, err)

	require.Contains(t, loaded.Results, bench.KindASR)
	require.Contains(t, loaded.Results, bench.KindVAD)
	assert.Nil(t, loaded.Results[bench.KindVAD])
	require.NotNil(t, loaded.Results[bench.KindASR])
	assert.InDelta(t, 0.05, loaded.Results[bench.KindASR].Raw["wer"], 1e-9)
}

func TestWriteRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	combined := &Combined{
		Timestamp: "20260830_120000",
		Mode:      "full",
		Baselines: baseline.Defaults(),
		Results: map[bench.Kind]*bench.Result{
			bench.KindDiarization: {
				Kind:     bench.KindDiarization,
				Raw:      map[string]any{"der": 0.18, "rtfx": 1.4},
				LogPath:  filepath.Join(dir, "diarization_log.txt"),
				ExitCode: 0,
			},
		},
	}

	path, err := Write(dir, combined)
	require.NoError(t, err)

	loaded, err := Read(path)
	require.NoError(t, err)

	assert.Equal(t, combined.Timestamp, loaded.Timestamp)
	assert.Equal(t, combined.Mode, loaded.Mode)
	assert.InDelta(t, 17.7, loaded.Baselines[bench.KindDiarization].QualityPercent, 1e-9)
	assert.Equal(t, combined.Results[bench.KindDiarization].LogPath, loaded.Results[bench.KindDiarization].LogPath)
}

func TestWriteOverwritesExistingReport(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	first := &Combined{Timestamp: "first", Mode: "quick", Baselines: baseline.Defaults(), Results: map[bench.Kind]*bench.Result{}}
	_, err := Write(dir, first)
	require.NoError(t, err)

	second := &Combined{Timestamp: "second", Mode: "full", Baselines: baseline.Defaults(), Results: map[bench.Kind]*bench.Result{}}
	path, err := Write(dir, second)
	require.NoError(t, err)

	loaded, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, "second", loaded.Timestamp)
	assert.Equal(t, "full", loaded.Mode)
}

func TestReadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Read(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}
