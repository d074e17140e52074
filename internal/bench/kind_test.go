package bench

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllKindsFixedOrder(t *testing.T) {
	t.Parallel()

	// Benchmarks share one external binary, so execution order is fixed.
	require.Equal(t, []Kind{KindASR, KindVAD, KindDiarization}, AllKinds())
}

func TestParseKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    Kind
		wantErr bool
	}{
		{name: "asr", input: "asr", want: KindASR},
		{name: "vad", input: "vad", want: KindVAD},
		{name: "diarization", input: "diarization", want: KindDiarization},
		{name: "unknown", input: "tts", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "case sensitive", input: "ASR", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseKind(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownKind)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKindFileNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "asr_results.json", KindASR.ResultFile())
	assert.Equal(t, "vad_results.json", KindVAD.ResultFile())
	assert.Equal(t, "diarization_results.json", KindDiarization.ResultFile())

	assert.Equal(t, "asr_log.txt", KindASR.LogFile())
	assert.Equal(t, "vad_log.txt", KindVAD.LogFile())
	assert.Equal(t, "diarization_log.txt", KindDiarization.LogFile())
}
