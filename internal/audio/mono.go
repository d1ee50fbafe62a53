package audio

import (
	"errors"
	"io"

	"github.com/arnavkhatri/TrackSense/pkg/logger"
)

// MonoMixer converts a multi-channel Source to mono by averaging channels.
// Mono input passes through untouched. Sources are not required to return
// whole frames; a trailing partial frame is held back and completed by the
// next read.
type MonoMixer struct {
	src  Source
	tmp  []float32
	held int // samples of an incomplete frame at the start of tmp
}

func NewMonoMixer(src Source) *MonoMixer {
	return &MonoMixer{
		src: src,
		tmp: make([]float32, 4096),
	}
}

func (m *MonoMixer) SampleRate() int { return m.src.SampleRate() }
func (m *MonoMixer) Channels() int   { return 1 }
func (m *MonoMixer) Close() error    { return m.src.Close() }

func (m *MonoMixer) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	channels := m.src.Channels()
	if channels <= 1 {
		return m.src.ReadSamples(dst)
	}

	needed := len(dst) * channels
	if cap(m.tmp) < needed {
		grown := make([]float32, needed)
		copy(grown, m.tmp[:m.held])
		m.tmp = grown
	}
	m.tmp = m.tmp[:needed]

	n, err := m.src.ReadSamples(m.tmp[m.held:])
	total := m.held + n
	if total == 0 {
		return 0, err
	}
	frames := total / channels
	m.held = total - frames*channels

	switch channels {
	case 2:
		for f := 0; f < frames; f++ {
			dst[f] = (m.tmp[2*f] + m.tmp[2*f+1]) * 0.5
		}
	default:
		inv := 1.0 / float32(channels)
		for f := 0; f < frames; f++ {
			var sum float32
			base := f * channels
			for c := 0; c < channels; c++ {
				sum += m.tmp[base+c]
			}
			dst[f] = sum * inv
		}
	}

	// Keep the incomplete trailing frame for the next read. At end of
	// stream it can never be completed and is dropped.
	copy(m.tmp, m.tmp[frames*channels:total])
	if m.held > 0 && errors.Is(err, io.EOF) {
		logger.Debugf("dropping %d-sample partial frame at end of %d-channel stream", m.held, channels)
		m.held = 0
	}

	return frames, err
}
