package tracksense

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnavkhatri/TrackSense/internal/analysis"
	"github.com/arnavkhatri/TrackSense/internal/audio"
	"github.com/arnavkhatri/TrackSense/internal/audiotest"
)

func sineFixture(t *testing.T, rate int, seconds float64) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "tone.wav")
	require.NoError(t, audiotest.WriteWAV(path, rate, 1, audiotest.Sine(rate, 440, seconds)))
	return path
}

func TestService_AnalyzeSine(t *testing.T) {
	t.Parallel()

	path := sineFixture(t, 44100, 3)
	svc := New()

	result, err := svc.Analyze(context.Background(), path)
	require.NoError(t, err)

	// A 440 Hz tone is pitch class A.
	assert.Contains(t, []string{"Am", "A Major"}, result.Key)
	assert.Greater(t, result.KeyConfidence, 50.0)
	assert.LessOrEqual(t, result.KeyConfidence, 100.0)

	assert.GreaterOrEqual(t, result.BPM, 60.0)
	assert.LessOrEqual(t, result.BPM, 180.0)
	assert.GreaterOrEqual(t, result.BPMConfidence, 0.0)
	assert.LessOrEqual(t, result.BPMConfidence, 100.0)
}

func TestService_AnalyzeTooShort(t *testing.T) {
	t.Parallel()

	path := sineFixture(t, 44100, 1)
	svc := New()

	_, err := svc.Analyze(context.Background(), path)
	require.Error(t, err)
	assert.ErrorIs(t, err, analysis.ErrTooShort)
}

func TestService_AnalyzeMissingFile(t *testing.T) {
	t.Parallel()

	svc := New()
	_, err := svc.Analyze(context.Background(), filepath.Join(t.TempDir(), "missing.wav"))
	require.Error(t, err)
}

func TestService_AnalyzeUnsupportedFormat(t *testing.T) {
	t.Parallel()

	svc := New()
	_, err := svc.Analyze(context.Background(), "track.xyz")
	require.Error(t, err)
	assert.ErrorIs(t, err, audio.ErrUnsupportedFormat)
}

func TestService_AnalysisCapOption(t *testing.T) {
	t.Parallel()

	// A 1s analysis cap on a 3s file leaves under 2s of audio, which the
	// tempo estimator must reject: proves the cap is plumbed through.
	path := sineFixture(t, 44100, 3)
	svc := New(WithMaxAnalysisSeconds(1))

	_, err := svc.Analyze(context.Background(), path)
	require.Error(t, err)
	assert.ErrorIs(t, err, analysis.ErrTooShort)
}

func TestService_Waveform(t *testing.T) {
	t.Parallel()

	path := sineFixture(t, 8000, 2)
	svc := New()

	waveform, err := svc.Waveform(context.Background(), path, 150)
	require.NoError(t, err)
	require.Len(t, waveform, 150)

	for _, p := range waveform {
		assert.LessOrEqual(t, p.Min, p.Max)
	}
}

func TestService_WaveformTooManyPoints(t *testing.T) {
	t.Parallel()

	path := sineFixture(t, 8000, 2)
	svc := New()

	_, err := svc.Waveform(context.Background(), path, 500000)
	require.Error(t, err)
	assert.ErrorIs(t, err, analysis.ErrTooShortForResolution)
}

func TestService_MetadataUntaggedFile(t *testing.T) {
	t.Parallel()

	// Plain PCM WAV fixtures carry no tags; the operation must say so
	// rather than invent fields.
	path := sineFixture(t, 8000, 1)
	svc := New()

	_, err := svc.Metadata(path)
	require.Error(t, err)
}

func TestService_TrimInvalidWindow(t *testing.T) {
	t.Parallel()

	path := sineFixture(t, 8000, 2)
	svc := New()

	err := svc.TrimTranscode(context.Background(), path, filepath.Join(t.TempDir(), "out.mp3"), 192, 2, 1)
	require.Error(t, err)
}

func TestService_CancelledContext(t *testing.T) {
	t.Parallel()

	path := sineFixture(t, 44100, 3)
	svc := New()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Analyze(ctx, path)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
