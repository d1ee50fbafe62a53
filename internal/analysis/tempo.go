package analysis

import (
	"errors"
	"fmt"
	"math"
)

// ErrTooShort means the input does not contain enough audio for the
// requested estimator.
var ErrTooShort = errors.New("audio too short")

const (
	tempoMinBPM = 60.0
	tempoMaxBPM = 200.0
	// Detected tempi are octave-folded into [foldLowBPM, foldHighBPM].
	foldLowBPM  = 60.0
	foldHighBPM = 180.0
)

// DetectBPM estimates the tempo of a mono signal from the periodicity of
// its energy onsets: short-time energy over 100ms frames hopped every 10ms,
// clipped first differences as onset strength, then a lag search over the
// plain count-normalized autocorrelation of the onset sequence.
//
// Confidence is the winning correlation scaled to [0,100]. It is a relative
// score, not a statistical confidence; the count-only normalization is kept
// deliberately so results stay comparable across versions.
func DetectBPM(samples []float32, sampleRate int) (float64, float64, error) {
	if len(samples) < sampleRate*2 {
		return 0, 0, fmt.Errorf("%w for tempo detection: need at least 2s of audio", ErrTooShort)
	}

	hopSize := sampleRate / 100
	frameSize := sampleRate / 10

	var energies []float64
	for i := 0; i+frameSize < len(samples); i += hopSize {
		var e float64
		for _, s := range samples[i : i+frameSize] {
			e += float64(s) * float64(s)
		}
		energies = append(energies, e)
	}
	if len(energies) < 10 {
		return 0, 0, fmt.Errorf("%w for tempo detection: only %d energy frames", ErrTooShort, len(energies))
	}

	// Onset strength: energy increase over the previous frame, clipped at 0.
	onsets := make([]float64, len(energies))
	for i := 1; i < len(energies); i++ {
		if d := energies[i] - energies[i-1]; d > 0 {
			onsets[i] = d
		}
	}
	maxOnset := 0.0
	for _, o := range onsets {
		if o > maxOnset {
			maxOnset = o
		}
	}
	if maxOnset > 0 {
		for i := range onsets {
			onsets[i] /= maxOnset
		}
	}

	framesPerSecond := float64(sampleRate) / float64(hopSize)
	minLag := int(framesPerSecond * 60.0 / tempoMaxBPM)
	if minLag < 1 {
		minLag = 1
	}
	maxLag := int(framesPerSecond * 60.0 / tempoMinBPM)
	if half := len(onsets) / 2; maxLag > half {
		maxLag = half
	}

	bestBPM := 120.0
	bestCorr := 0.0
	for lag := minLag; lag < maxLag; lag++ {
		count := len(onsets) - lag
		var corr float64
		for i := 0; i < count; i++ {
			corr += onsets[i] * onsets[i+lag]
		}
		corr /= float64(count)

		if corr > bestCorr {
			bestCorr = corr
			bestBPM = framesPerSecond * 60.0 / float64(lag)
		}
	}

	// Fold half/double-tempo ambiguity into one canonical octave.
	for bestBPM < foldLowBPM {
		bestBPM *= 2
	}
	for bestBPM > foldHighBPM {
		bestBPM /= 2
	}

	confidence := math.Min(bestCorr*100, 100)
	return math.Round(bestBPM), confidence, nil
}
