package analysis

import (
	"errors"
	"fmt"

	"github.com/arnavkhatri/TrackSense/pkg/models"
)

// ErrTooShortForResolution means fewer samples exist than requested
// waveform points.
var ErrTooShortForResolution = errors.New("audio too short for requested resolution")

// Waveform partitions the mono signal into numPoints contiguous segments
// and emits the min/max sample of each. The last segment absorbs the
// division remainder so the whole signal is covered. The result always has
// exactly numPoints entries.
func Waveform(samples []float32, numPoints int) ([]models.WaveformPoint, error) {
	if numPoints <= 0 {
		return nil, fmt.Errorf("waveform point count must be positive, got %d", numPoints)
	}
	segmentSize := len(samples) / numPoints
	if segmentSize == 0 {
		return nil, fmt.Errorf("%w: %d samples for %d points", ErrTooShortForResolution, len(samples), numPoints)
	}

	points := make([]models.WaveformPoint, 0, numPoints)
	for i := 0; i < numPoints; i++ {
		start := i * segmentSize
		end := start + segmentSize
		if i == numPoints-1 || end > len(samples) {
			end = len(samples)
		}
		if start >= end {
			points = append(points, models.WaveformPoint{})
			continue
		}

		minV, maxV := samples[start], samples[start]
		for _, s := range samples[start+1 : end] {
			if s < minV {
				minV = s
			}
			if s > maxV {
				maxV = s
			}
		}
		points = append(points, models.WaveformPoint{Min: minV, Max: maxV})
	}

	return points, nil
}
