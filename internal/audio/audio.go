package audio

import (
	"io"
	"sync"
)

// Source is a finite stream of interleaved float32 PCM samples in [-1, 1].
type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved samples and returns the number
	// of float32 values written. n == 0 with io.EOF means the stream ended.
	ReadSamples(dst []float32) (n int, err error)
	// Close releases decoder resources. It does not close the underlying reader.
	Close() error
}

// Decoder constructs a Source from a raw container stream.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Registry maps format keys (lowercase file extensions) to decoders.
type Registry struct {
	mtx    sync.Mutex
	codecs map[string]Decoder
}

func NewRegistry() *Registry {
	return &Registry{codecs: make(map[string]Decoder)}
}

func (r *Registry) Register(format string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[format] = d
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	d, ok := r.codecs[format]
	return d, ok
}

var (
	defaultRegistry *Registry
	registryOnce    sync.Once
)

// DefaultRegistry returns the shared registry with all built-in decoders.
func DefaultRegistry() *Registry {
	registryOnce.Do(func() {
		defaultRegistry = NewRegistry()
		defaultRegistry.Register("wav", wavDecoder{})
		defaultRegistry.Register("mp3", mp3Decoder{})
		defaultRegistry.Register("ogg", vorbisDecoder{})
		defaultRegistry.Register("oga", vorbisDecoder{})
	})
	return defaultRegistry
}
