package tracksense

import (
	"context"

	"github.com/arnavkhatri/TrackSense/pkg/models"
)

// Service exposes the analysis and transcoding operations. Every call is
// stateless and safe for concurrent use; each owns its decoder, buffers
// and encoder exclusively and re-decodes from disk.
type Service interface {
	// Analyze detects tempo and key of the file. Both estimators must
	// succeed; there is no partial result.
	Analyze(ctx context.Context, path string) (*models.AnalysisResult, error)
	// Waveform summarizes the whole file into exactly numPoints min/max pairs.
	Waveform(ctx context.Context, path string, numPoints int) ([]models.WaveformPoint, error)
	// TrimTranscode re-encodes only [startTime, endTime) seconds of the
	// input into an MP3 at outputPath. endTime <= 0 means end of stream.
	TrimTranscode(ctx context.Context, inputPath, outputPath string, bitrateKbps int, startTime, endTime float64) error
	// Transcode re-encodes the whole input at the requested bitrate.
	Transcode(ctx context.Context, inputPath, outputPath string, bitrateKbps int) error
	// Metadata reads tag information from the file. Read-only.
	Metadata(path string) (*models.TrackMetadata, error)
}

type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
}
