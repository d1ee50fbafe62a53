package audio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/arnavkhatri/TrackSense/pkg/logger"
)

// maxConsecutiveDecodeErrors bounds best-effort recovery from corrupt data.
// Isolated bad chunks are skipped; a run of failures ends the stream normally.
const maxConsecutiveDecodeErrors = 3

// File is an open audio file positioned at its first decodable sample.
// It implements Source and must be used from a single goroutine.
type File struct {
	f        *os.File
	src      Source
	path     string
	badReads int
}

// Open probes path by its extension and prepares a decoder for the first
// decodable audio stream. It distinguishes three failure classes: an
// unsupported extension (ErrUnsupportedFormat), an unopenable file (the
// wrapped I/O error), and a container with no decodable audio (ErrNoAudioTrack).
func Open(path string) (*File, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	dec, ok := DefaultRegistry().Get(ext)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	src, err := dec.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("probing %s: %v: %w", path, err, ErrNoAudioTrack)
	}

	return &File{f: f, src: src, path: path}, nil
}

func (a *File) SampleRate() int { return a.src.SampleRate() }
func (a *File) Channels() int   { return a.src.Channels() }

// ReadSamples reads the next chunk of interleaved samples. Chunks that fail
// to decode are skipped and reading continues with the next one; only a run
// of maxConsecutiveDecodeErrors failures ends the stream (as a normal EOF,
// keeping everything decoded so far).
func (a *File) ReadSamples(dst []float32) (int, error) {
	for {
		n, err := a.src.ReadSamples(dst)
		if err == nil || errors.Is(err, io.EOF) {
			if n > 0 {
				a.badReads = 0
			}
			return n, err
		}
		if n > 0 {
			// Keep the partial chunk; the failure will repeat on the next
			// read if it is persistent.
			a.badReads = 0
			logger.Debugf("recovered partial chunk from %s: %v", a.path, err)
			return n, nil
		}
		a.badReads++
		logger.Debugf("skipping unreadable chunk in %s (%d consecutive): %v", a.path, a.badReads, err)
		if a.badReads >= maxConsecutiveDecodeErrors {
			return 0, io.EOF
		}
	}
}

func (a *File) Close() error {
	if err := a.src.Close(); err != nil {
		a.f.Close()
		return err
	}
	return a.f.Close()
}

// ReadMono decodes path into a mono float32 sample sequence by averaging
// channels. maxSeconds > 0 caps the result at sampleRate*maxSeconds samples
// to bound analysis cost; 0 reads the whole stream.
func ReadMono(path string, maxSeconds int) ([]float32, int, error) {
	af, err := Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer af.Close()

	rate := af.SampleRate()
	maxSamples := 0
	if maxSeconds > 0 {
		maxSamples = rate * maxSeconds
	}

	mono := NewMonoMixer(af)
	buf := make([]float32, 4096)
	samples := make([]float32, 0, 4096)

	for {
		if maxSamples > 0 && len(samples) >= maxSamples {
			break
		}
		n, err := mono.ReadSamples(buf)
		if n > 0 {
			samples = append(samples, buf[:n]...)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("decoding %s: %w", path, err)
		}
	}

	if maxSamples > 0 && len(samples) > maxSamples {
		samples = samples[:maxSamples]
	}
	return samples, rate, nil
}
