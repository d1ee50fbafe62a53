package audio

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	wav "github.com/go-audio/wav"
)

type wavSource struct {
	dec   *wav.Decoder
	buf   *goaudio.IntBuffer
	scale float32
}

func (s *wavSource) SampleRate() int { return int(s.dec.SampleRate) }
func (s *wavSource) Channels() int   { return int(s.dec.NumChans) }
func (s *wavSource) Close() error    { return nil }

func (s *wavSource) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if cap(s.buf.Data) < len(dst) {
		s.buf.Data = make([]int, len(dst))
	}
	s.buf.Data = s.buf.Data[:len(dst)]

	n, err := s.dec.PCMBuffer(s.buf)
	if err != nil {
		return 0, fmt.Errorf("reading wav pcm: %w", err)
	}
	if n == 0 {
		return 0, io.EOF
	}
	for i := 0; i < n; i++ {
		dst[i] = float32(s.buf.Data[i]) * s.scale
	}
	return n, nil
}

type wavDecoder struct{}

func (wavDecoder) Decode(r io.Reader) (Source, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		return nil, fmt.Errorf("wav: %w", errNotSeekable)
	}

	dec := wav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("wav: invalid or truncated RIFF stream")
	}
	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("wav: locating pcm data: %w", err)
	}

	bits := int(dec.BitDepth)
	if bits == 0 {
		bits = 16
	}

	return &wavSource{
		dec: dec,
		buf: &goaudio.IntBuffer{
			Data: make([]int, 4096),
			Format: &goaudio.Format{
				NumChannels: int(dec.NumChans),
				SampleRate:  int(dec.SampleRate),
			},
		},
		scale: 1.0 / float32(int64(1)<<(bits-1)),
	}, nil
}
