package tracksense

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dhowden/tag"

	"github.com/arnavkhatri/TrackSense/internal/analysis"
	"github.com/arnavkhatri/TrackSense/internal/audio"
	"github.com/arnavkhatri/TrackSense/internal/transcode"
	"github.com/arnavkhatri/TrackSense/pkg/logger"
	"github.com/arnavkhatri/TrackSense/pkg/models"
)

type service struct {
	cfg *Config
	log Logger
}

// New builds a Service with the given options.
func New(opts ...Option) Service {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	log := cfg.Logger
	if log == nil {
		log = logger.GetLogger()
	}
	return &service{cfg: cfg, log: log}
}

func (s *service) Analyze(ctx context.Context, path string) (*models.AnalysisResult, error) {
	s.log.Infof("Analyzing %s", path)

	samples, rate, err := audio.ReadMono(path, s.cfg.MaxAnalysisSeconds)
	if err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("no audio samples decoded from %s", path)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bpm, bpmConf, err := analysis.DetectBPM(samples, rate)
	if err != nil {
		return nil, fmt.Errorf("tempo detection failed: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key, keyConf, err := analysis.DetectKey(samples, rate)
	if err != nil {
		return nil, fmt.Errorf("key detection failed: %w", err)
	}

	s.log.Infof("Detected %.0f BPM (%.1f%%), key %s (%.1f%%) for %s", bpm, bpmConf, key, keyConf, path)
	return &models.AnalysisResult{
		BPM:           bpm,
		BPMConfidence: bpmConf,
		Key:           key,
		KeyConfidence: keyConf,
	}, nil
}

func (s *service) Waveform(ctx context.Context, path string, numPoints int) ([]models.WaveformPoint, error) {
	s.log.Debugf("Summarizing waveform of %s into %d points", path, numPoints)

	samples, _, err := audio.ReadMono(path, 0)
	if err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("no audio samples decoded from %s", path)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return analysis.Waveform(samples, numPoints)
}

func (s *service) TrimTranscode(ctx context.Context, inputPath, outputPath string, bitrateKbps int, startTime, endTime float64) error {
	if bitrateKbps == 0 {
		bitrateKbps = s.cfg.BitrateKbps
	}
	s.log.Infof("Transcoding %s -> %s at %dkbps, window [%.3fs, %.3fs)", inputPath, outputPath, bitrateKbps, startTime, endTime)

	if err := transcode.Trim(ctx, inputPath, outputPath, bitrateKbps, startTime, endTime); err != nil {
		return fmt.Errorf("trim transcode failed: %w", err)
	}
	return nil
}

func (s *service) Transcode(ctx context.Context, inputPath, outputPath string, bitrateKbps int) error {
	return s.TrimTranscode(ctx, inputPath, outputPath, bitrateKbps, 0, 0)
}

func (s *service) Metadata(path string) (*models.TrackMetadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	meta, err := tag.ReadFrom(f)
	if err != nil {
		if errors.Is(err, tag.ErrNoTagsFound) {
			return nil, fmt.Errorf("no tags found in %s: %w", path, err)
		}
		return nil, fmt.Errorf("reading tags from %s: %w", path, err)
	}

	return &models.TrackMetadata{
		Title:  meta.Title(),
		Artist: meta.Artist(),
		Album:  meta.Album(),
		Genre:  meta.Genre(),
		Year:   meta.Year(),
		Format: string(meta.Format()),
	}, nil
}
