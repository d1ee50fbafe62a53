package audiotest

import (
	"io"
	"math"
)

// MockSource generates deterministic PCM for tests. It satisfies the
// audio.Source interface without importing it.
type MockSource struct {
	sampleRate  int
	channels    int
	totalFrames int
	generated   int
	chunkFrames int // max frames per read; 0 fills dst
	waveform    func(frame, channel int) float32
}

// NewMockSource creates a source producing totalFrames frames of waveform
// output. waveform receives the absolute frame index and the channel.
func NewMockSource(sampleRate, channels, totalFrames int, waveform func(frame, channel int) float32) *MockSource {
	return &MockSource{
		sampleRate:  sampleRate,
		channels:    channels,
		totalFrames: totalFrames,
		waveform:    waveform,
	}
}

// NewSineSource generates a sine wave at the given frequency on every channel.
func NewSineSource(sampleRate, channels, totalFrames int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalFrames, func(frame, _ int) float32 {
		t := float64(frame) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

// NewClickTrainSource generates full-scale 100ms bursts at the given tempo
// over otherwise silent audio. The burst length matters: a single-sample
// impulse carries almost no energy, so the resulting onsets are too weak
// to register as a tempo.
func NewClickTrainSource(sampleRate, channels, totalFrames int, bpm float64) *MockSource {
	period := int(float64(sampleRate) * 60.0 / bpm)
	burst := sampleRate / 10
	return NewMockSource(sampleRate, channels, totalFrames, func(frame, _ int) float32 {
		if frame%period < burst {
			return 1
		}
		return 0
	})
}

// NewSilentSource generates all-zero audio.
func NewSilentSource(sampleRate, channels, totalFrames int) *MockSource {
	return NewMockSource(sampleRate, channels, totalFrames, func(_, _ int) float32 {
		return 0
	})
}

// SetChunkFrames caps the number of frames returned per ReadSamples call,
// simulating different packet sizes.
func (m *MockSource) SetChunkFrames(frames int) { m.chunkFrames = frames }

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) Close() error    { return nil }

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.generated >= m.totalFrames {
		return 0, io.EOF
	}
	frames := len(dst) / m.channels
	if m.chunkFrames > 0 && frames > m.chunkFrames {
		frames = m.chunkFrames
	}
	if rem := m.totalFrames - m.generated; frames > rem {
		frames = rem
	}
	for f := 0; f < frames; f++ {
		for c := 0; c < m.channels; c++ {
			dst[f*m.channels+c] = m.waveform(m.generated+f, c)
		}
	}
	m.generated += frames
	return frames * m.channels, nil
}

// Sine returns seconds of a mono sine wave as a plain sample slice.
func Sine(sampleRate int, frequency, seconds float64) []float32 {
	n := int(float64(sampleRate) * seconds)
	out := make([]float32, n)
	for i := range out {
		t := float64(i) / float64(sampleRate)
		out[i] = float32(math.Sin(2 * math.Pi * frequency * t))
	}
	return out
}

// ClickTrain returns seconds of mono audio with a full-scale 100ms burst
// at every beat of the given tempo. See NewClickTrainSource for why the
// bursts are not single-sample impulses.
func ClickTrain(sampleRate int, bpm, seconds float64) []float32 {
	n := int(float64(sampleRate) * seconds)
	period := int(float64(sampleRate) * 60.0 / bpm)
	burst := sampleRate / 10
	out := make([]float32, n)
	for i := 0; i < n; i += period {
		for j := i; j < i+burst && j < n; j++ {
			out[j] = 1
		}
	}
	return out
}
