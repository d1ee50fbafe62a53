package analysis

import (
	"fmt"
	"math"

	"github.com/mjibson/go-dsp/fft"
)

// Chromagram analysis frame geometry and pitch range (roughly C2 to C7).
const (
	chromaFrameSize = 4096
	chromaHopSize   = 2048
	chromaMinFreq   = 65.0
	chromaMaxFreq   = 2100.0
)

// Krumhansl-Schmuckler key profiles: perceived fit of each pitch class
// within a major or minor tonal context, root at index 0.
var (
	majorProfile = [12]float64{6.35, 2.23, 3.48, 2.33, 4.38, 4.09, 2.52, 5.19, 2.39, 3.66, 2.29, 2.88}
	minorProfile = [12]float64{6.33, 2.68, 3.52, 5.38, 2.60, 3.53, 2.54, 4.75, 3.98, 2.69, 3.34, 3.17}

	pitchNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}
)

// DetectKey estimates the musical key of a mono signal by correlating its
// chromagram against the Krumhansl-Schmuckler profiles across all 24
// root/mode candidates. The label is "<root> Major" or "<root>m" with
// sharp-based pitch names; confidence maps the winning Pearson correlation
// from [-1,1] onto [0,100].
func DetectKey(samples []float32, sampleRate int) (string, float64, error) {
	if len(samples) < sampleRate {
		return "", 0, fmt.Errorf("%w for key detection: need at least 1s of audio", ErrTooShort)
	}

	chroma := Chromagram(samples, sampleRate)

	sum := 0.0
	for _, c := range chroma {
		sum += c
	}
	if sum > 0 {
		for i := range chroma {
			chroma[i] /= sum
		}
	}

	key, best := matchKey(chroma)
	confidence := math.Min(math.Max((best+1)/2*100, 0), 100)
	return key, confidence, nil
}

// matchKey rotates the normalized chromagram to each of the 12 roots and
// keeps the single best Pearson correlation across the 24 root/mode pairs.
func matchKey(chroma [12]float64) (string, float64) {
	bestKey := pitchNames[0] + " Major"
	best := math.Inf(-1)

	for root := 0; root < 12; root++ {
		var rotated [12]float64
		for i := 0; i < 12; i++ {
			rotated[i] = chroma[(i+root)%12]
		}

		if corr := pearson(rotated[:], majorProfile[:]); corr > best {
			best = corr
			bestKey = pitchNames[root] + " Major"
		}
		if corr := pearson(rotated[:], minorProfile[:]); corr > best {
			best = corr
			bestKey = pitchNames[root] + "m"
		}
	}

	return bestKey, best
}

// Chromagram accumulates spectral power into the 12 pitch classes over
// 4096-sample Hann-windowed frames with a 2048-sample hop. Each FFT bin
// between chromaMinFreq and chromaMaxFreq contributes its power to the
// nearest equal-tempered pitch class. The spectral mapping is immune to
// the harmonic aliasing a lag-domain estimate suffers, where an integer
// multiple of a tone's period pumps an unrelated pitch bin. The result
// is averaged over frames; callers normalize to sum 1.
func Chromagram(samples []float32, sampleRate int) [12]float64 {
	var chroma [12]float64

	frame := make([]float64, chromaFrameSize)
	binWidth := float64(sampleRate) / float64(chromaFrameSize)
	frameCount := 0

	for i := 0; i+chromaFrameSize < len(samples); i += chromaHopSize {
		for n := 0; n < chromaFrameSize; n++ {
			w := 0.5 * (1 - math.Cos(2*math.Pi*float64(n)/float64(chromaFrameSize-1)))
			frame[n] = float64(samples[i+n]) * w
		}

		spectrum := fft.FFTReal(frame)
		for k := 1; k < len(spectrum)/2; k++ {
			freq := float64(k) * binWidth
			if freq < chromaMinFreq || freq > chromaMaxFreq {
				continue
			}
			// Nearest pitch class in semitones relative to A4 = 440 Hz.
			midiNote := int(math.Round(12*math.Log2(freq/440.0))) + 69
			note := ((midiNote % 12) + 12) % 12

			re, im := real(spectrum[k]), imag(spectrum[k])
			chroma[note] += re*re + im*im
		}
		frameCount++
	}

	if frameCount > 0 {
		for i := range chroma {
			chroma[i] /= float64(frameCount)
		}
	}
	return chroma
}
