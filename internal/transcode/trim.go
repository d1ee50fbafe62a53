package transcode

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/arnavkhatri/TrackSense/internal/audio"
	"github.com/arnavkhatri/TrackSense/pkg/utils"
)

// sampleSource is the slice of audio.Source the trim loop needs.
type sampleSource interface {
	ReadSamples(dst []float32) (int, error)
}

const readChunkSamples = 8192

// Trim re-encodes the audio between startTime and endTime (seconds) of
// inputPath into an MP3 at outputPath, sample-accurate at packet
// resolution. endTime <= 0 means the end of the stream, which makes a
// full-file transcode the degenerate case.
//
// The output appears atomically: it is written next to outputPath as a
// temporary file and renamed into place only on success, so a failed
// operation leaves no partial output behind. ctx is polled between decode
// chunks; cancellation never interrupts an in-progress encode call.
func Trim(ctx context.Context, inputPath, outputPath string, bitrateKbps int, startTime, endTime float64) error {
	if startTime < 0 {
		return fmt.Errorf("trim start %.3fs is negative", startTime)
	}
	if endTime > 0 && endTime <= startTime {
		return fmt.Errorf("trim window [%.3fs, %.3fs) is empty", startTime, endTime)
	}

	src, err := audio.Open(inputPath)
	if err != nil {
		return err
	}
	defer src.Close()

	if err := utils.MakeDir(filepath.Dir(outputPath)); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmpPath := outputPath + ".tmp.mp3"
	out, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	enc, err := NewMP3Encoder(out, src.Channels(), src.SampleRate(), bitrateKbps)
	if err != nil {
		out.Close()
		utils.DeleteFile(tmpPath)
		return err
	}

	if err := trimStream(ctx, src, enc, src.Channels(), src.SampleRate(), startTime, endTime); err != nil {
		out.Close()
		utils.DeleteFile(tmpPath)
		return err
	}

	if err := out.Close(); err != nil {
		utils.DeleteFile(tmpPath)
		return fmt.Errorf("failed to close output file: %w", err)
	}
	if err := utils.MoveFile(tmpPath, outputPath); err != nil {
		utils.DeleteFile(tmpPath)
		return err
	}
	return nil
}

// Transcode re-encodes the whole input at the requested bitrate.
func Transcode(ctx context.Context, inputPath, outputPath string, bitrateKbps int) error {
	return Trim(ctx, inputPath, outputPath, bitrateKbps, 0, 0)
}

// trimStream runs the decode/clip/encode loop. A running frame counter
// tracks the absolute position of each decoded chunk, so the window edges
// are clipped with sample accuracy no matter how the decoder chunks its
// output. Chunks fully outside the window are dropped; chunks straddling
// an edge are clipped, converting frame offsets to interleaved offsets via
// the channel count.
func trimStream(ctx context.Context, src sampleSource, enc Encoder, channels, sampleRate int, startTime, endTime float64) error {
	startSample := uint64(startTime * float64(sampleRate))
	endSample := uint64(math.MaxUint64)
	if endTime > 0 {
		endSample = uint64(endTime * float64(sampleRate))
	}

	buf := make([]float32, readChunkSamples)
	var current uint64

	for current < endSample {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("transcode cancelled: %w", err)
		}

		n, err := src.ReadSamples(buf)
		if n > 0 {
			frames := uint64(n / channels)
			chunkStart := current
			chunkEnd := current + frames

			if chunkEnd > startSample && chunkStart < endSample {
				lo := 0
				if chunkStart < startSample {
					lo = int(startSample-chunkStart) * channels
				}
				hi := n
				if chunkEnd > endSample {
					hi = n - int(chunkEnd-endSample)*channels
				}
				if lo < hi {
					if err := enc.Encode(buf[lo:hi]); err != nil {
						return err
					}
				}
			}
			current = chunkEnd
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to decode input: %w", err)
		}
	}

	// Mandatory: LAME holds a partial frame back until flushed.
	return enc.Flush()
}
