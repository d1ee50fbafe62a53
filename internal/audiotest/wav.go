package audiotest

import (
	"fmt"
	"os"

	goaudio "github.com/go-audio/audio"
	wav "github.com/go-audio/wav"
)

// WriteWAV writes interleaved [-1,1] samples to path as a 16-bit PCM WAV,
// for use as an on-disk test fixture.
func WriteWAV(path string, sampleRate, channels int, samples []float32) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating fixture %s: %w", path, err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, 16, channels, 1)
	buf := &goaudio.IntBuffer{
		Data:           make([]int, len(samples)),
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		SourceBitDepth: 16,
	}
	for i, s := range samples {
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		buf.Data[i] = int(s * 32767)
	}

	if err := enc.Write(buf); err != nil {
		enc.Close()
		return fmt.Errorf("writing fixture samples: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalizing fixture: %w", err)
	}
	return nil
}
