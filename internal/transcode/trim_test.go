package transcode

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnavkhatri/TrackSense/internal/audiotest"
)

// collectEncoder records everything encoded and whether Flush ran.
type collectEncoder struct {
	pcm     []float32
	flushed bool
}

func (c *collectEncoder) Encode(pcm []float32) error {
	c.pcm = append(c.pcm, pcm...)
	return nil
}

func (c *collectEncoder) Flush() error {
	c.flushed = true
	return nil
}

func TestTrimStream_WindowSampleCount(t *testing.T) {
	t.Parallel()

	const rate = 44100
	src := audiotest.NewSineSource(rate, 2, rate*3, 440)
	enc := &collectEncoder{}

	err := trimStream(context.Background(), src, enc, 2, rate, 1.0, 2.0)
	require.NoError(t, err)

	// One second of stereo audio, sample-accurate.
	assert.Equal(t, rate*2, len(enc.pcm))
	assert.True(t, enc.flushed, "encoder must be flushed after the loop")
}

func TestTrimStream_InvariantToChunkSize(t *testing.T) {
	t.Parallel()

	const rate = 8000
	reference := audiotest.Sine(rate, 440, 3)

	var outputs [][]float32
	for _, chunkFrames := range []int{0, 64, 441, 1000, 4096} {
		src := audiotest.NewSineSource(rate, 1, rate*3, 440)
		src.SetChunkFrames(chunkFrames)
		enc := &collectEncoder{}

		require.NoError(t, trimStream(context.Background(), src, enc, 1, rate, 0.5, 2.5))
		outputs = append(outputs, enc.pcm)
	}

	want := reference[rate/2 : rate/2+2*rate]
	for i, got := range outputs {
		require.Len(t, got, len(want), "chunking %d produced a different sample count", i)
		assert.Equal(t, want, got, "chunking %d produced different samples", i)
	}
}

func TestTrimStream_FullStream(t *testing.T) {
	t.Parallel()

	const rate = 8000
	src := audiotest.NewSineSource(rate, 1, rate*2, 440)
	enc := &collectEncoder{}

	// end <= 0 means the whole stream.
	require.NoError(t, trimStream(context.Background(), src, enc, 1, rate, 0, 0))
	assert.Equal(t, rate*2, len(enc.pcm))
	assert.True(t, enc.flushed)
}

func TestTrimStream_WindowPastEnd(t *testing.T) {
	t.Parallel()

	const rate = 8000
	src := audiotest.NewSineSource(rate, 1, rate, 440)
	enc := &collectEncoder{}

	// Window starts after the stream ends: nothing to encode, but the
	// flush still runs and the operation succeeds.
	require.NoError(t, trimStream(context.Background(), src, enc, 1, rate, 5, 6))
	assert.Empty(t, enc.pcm)
	assert.True(t, enc.flushed)
}

func TestTrimStream_StopsAtWindowEnd(t *testing.T) {
	t.Parallel()

	const rate = 8000
	// A source far longer than the window; the loop must stop early.
	src := audiotest.NewSineSource(rate, 1, rate*100, 440)
	enc := &collectEncoder{}

	require.NoError(t, trimStream(context.Background(), src, enc, 1, rate, 0, 1))
	assert.Equal(t, rate, len(enc.pcm))
}

func TestTrimStream_Cancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := audiotest.NewSineSource(8000, 1, 8000*10, 440)
	enc := &collectEncoder{}

	err := trimStream(ctx, src, enc, 1, 8000, 0, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, enc.pcm)
}

func TestTrim_InvalidWindow(t *testing.T) {
	t.Parallel()

	err := Trim(context.Background(), "in.mp3", "out.mp3", 192, 5, 3)
	require.Error(t, err)

	err = Trim(context.Background(), "in.mp3", "out.mp3", 192, -1, 3)
	require.Error(t, err)
}

func TestTrim_CreatesOutputDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := filepath.Join(dir, "tone.wav")
	require.NoError(t, audiotest.WriteWAV(input, 44100, 1, audiotest.Sine(44100, 440, 1)))

	// The output's parent directory does not exist yet.
	output := filepath.Join(dir, "exports", "clips", "out.mp3")
	require.NoError(t, Trim(context.Background(), input, output, 192, 0, 0))

	info, err := os.Stat(output)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	_, err = os.Stat(output + ".tmp.mp3")
	assert.True(t, os.IsNotExist(err), "temporary file must not survive a successful trim")
}

func TestNormalizeBitrate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 128, normalizeBitrate(128))
	assert.Equal(t, 320, normalizeBitrate(320))
	assert.Equal(t, 192, normalizeBitrate(0))
	assert.Equal(t, 192, normalizeBitrate(7))
}
