package transcode

import (
	"fmt"
	"io"

	lame "github.com/viert/go-lame"

	"github.com/arnavkhatri/TrackSense/pkg/utils"
)

// Encoder accepts successive chunks of interleaved PCM and writes the
// compressed stream to its sink. Flush must be called exactly once after
// the last chunk; LAME buffers up to a frame of audio internally and
// skipping the flush truncates the tail of the output.
type Encoder interface {
	Encode(pcm []float32) error
	Flush() error
}

// Bitrates LAME is configured with; anything else falls back to 192.
const defaultBitrateKbps = 192

const lameBestQuality = 0

// errTrackingWriter records the first write error on the sink so it can be
// surfaced after lame's Close, which reports nothing itself.
type errTrackingWriter struct {
	w   io.Writer
	err error
}

func (t *errTrackingWriter) Write(p []byte) (int, error) {
	n, err := t.w.Write(p)
	if err != nil && t.err == nil {
		t.err = err
	}
	return n, err
}

type lameEncoder struct {
	enc  *lame.Encoder
	sink *errTrackingWriter
}

// NewMP3Encoder builds a LAME MP3 encoder writing to w. Construction
// failures (bad channel count, unsupported rate) are fatal for the
// operation that requested them.
func NewMP3Encoder(w io.Writer, channels, sampleRate, bitrateKbps int) (Encoder, error) {
	sink := &errTrackingWriter{w: w}
	enc := lame.NewEncoder(sink)

	if err := enc.SetNumChannels(channels); err != nil {
		return nil, fmt.Errorf("failed to set encoder channels: %w", err)
	}
	if err := enc.SetInSamplerate(sampleRate); err != nil {
		return nil, fmt.Errorf("failed to set encoder sample rate: %w", err)
	}
	if err := enc.SetBrate(normalizeBitrate(bitrateKbps)); err != nil {
		return nil, fmt.Errorf("failed to set encoder bitrate: %w", err)
	}
	if err := enc.SetQuality(lameBestQuality); err != nil {
		return nil, fmt.Errorf("failed to set encoder quality: %w", err)
	}

	return &lameEncoder{enc: enc, sink: sink}, nil
}

func normalizeBitrate(kbps int) int {
	switch kbps {
	case 128, 192, 256, 320:
		return kbps
	default:
		return defaultBitrateKbps
	}
}

func (e *lameEncoder) Encode(pcm []float32) error {
	if len(pcm) == 0 {
		return nil
	}
	raw := utils.Float32ToPCM16Bytes(pcm)
	if _, err := e.enc.Write(raw); err != nil {
		return fmt.Errorf("failed to encode mp3 frame: %w", err)
	}
	return nil
}

func (e *lameEncoder) Flush() error {
	e.enc.Close()
	if e.sink.err != nil {
		return fmt.Errorf("failed to flush mp3 encoder: %w", e.sink.err)
	}
	return nil
}
