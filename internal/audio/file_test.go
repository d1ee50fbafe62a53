package audio

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/arnavkhatri/TrackSense/internal/audiotest"
)

func TestOpen_UnsupportedExtension(t *testing.T) {
	t.Parallel()

	_, err := Open("track.flac")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Open(unknown extension) error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestOpen_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := Open(filepath.Join(t.TempDir(), "missing.wav"))
	if err == nil {
		t.Fatal("Open(missing file) succeeded, want error")
	}
	if errors.Is(err, ErrUnsupportedFormat) || errors.Is(err, ErrNoAudioTrack) {
		t.Errorf("Open(missing file) error = %v, want a plain I/O error", err)
	}
}

func TestOpen_GarbageContent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "garbage.wav")
	if err := os.WriteFile(path, make([]byte, 64), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Open(path)
	if !errors.Is(err, ErrNoAudioTrack) {
		t.Errorf("Open(garbage) error = %v, want ErrNoAudioTrack", err)
	}
}

func TestOpen_ValidWAV(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tone.wav")
	if err := audiotest.WriteWAV(path, 8000, 1, audiotest.Sine(8000, 440, 1)); err != nil {
		t.Fatal(err)
	}

	f, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v, want nil", err)
	}
	defer f.Close()

	if f.SampleRate() != 8000 {
		t.Errorf("SampleRate() = %d, want 8000", f.SampleRate())
	}
	if f.Channels() != 1 {
		t.Errorf("Channels() = %d, want 1", f.Channels())
	}
}

func TestReadMono_RoundTrip(t *testing.T) {
	t.Parallel()

	want := audiotest.Sine(8000, 440, 1)
	path := filepath.Join(t.TempDir(), "tone.wav")
	if err := audiotest.WriteWAV(path, 8000, 1, want); err != nil {
		t.Fatal(err)
	}

	samples, rate, err := ReadMono(path, 0)
	if err != nil {
		t.Fatalf("ReadMono() error = %v", err)
	}
	if rate != 8000 {
		t.Errorf("sample rate = %d, want 8000", rate)
	}
	if len(samples) != len(want) {
		t.Fatalf("got %d samples, want %d", len(samples), len(want))
	}
	for i := range samples {
		// 16-bit quantization tolerance
		if math.Abs(float64(samples[i]-want[i])) > 2.0/32767 {
			t.Fatalf("sample %d = %v, want %v", i, samples[i], want[i])
		}
	}
}

func TestReadMono_StereoAveraged(t *testing.T) {
	t.Parallel()

	// Stereo fixture with L=+0.5, R=-0.5 everywhere: mono must be ~0.
	frames := 4000
	interleaved := make([]float32, frames*2)
	for f := 0; f < frames; f++ {
		interleaved[2*f] = 0.5
		interleaved[2*f+1] = -0.5
	}
	path := filepath.Join(t.TempDir(), "stereo.wav")
	if err := audiotest.WriteWAV(path, 8000, 2, interleaved); err != nil {
		t.Fatal(err)
	}

	samples, _, err := ReadMono(path, 0)
	if err != nil {
		t.Fatalf("ReadMono() error = %v", err)
	}
	if len(samples) != frames {
		t.Fatalf("got %d mono samples, want %d", len(samples), frames)
	}
	for i, s := range samples {
		if math.Abs(float64(s)) > 2.0/32767 {
			t.Fatalf("sample %d = %v, want ~0", i, s)
		}
	}
}

func TestReadMono_CapsAtMaxSeconds(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "long.wav")
	if err := audiotest.WriteWAV(path, 8000, 1, audiotest.Sine(8000, 440, 3)); err != nil {
		t.Fatal(err)
	}

	samples, rate, err := ReadMono(path, 1)
	if err != nil {
		t.Fatalf("ReadMono() error = %v", err)
	}
	if len(samples) != rate {
		t.Errorf("got %d samples with a 1s cap at %dHz, want %d", len(samples), rate, rate)
	}
}
