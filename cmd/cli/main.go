package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/arnavkhatri/TrackSense/pkg/logger"
	"github.com/arnavkhatri/TrackSense/pkg/tracksense"
)

func main() {
	log := logger.GetLogger()

	printBanner()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	log.Debugf("Executing command: %s", command)

	switch command {
	case "analyze":
		handleAnalyze()
	case "waveform":
		handleWaveform()
	case "trim":
		handleTrim()
	case "convert":
		handleConvert()
	case "info":
		handleInfo()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printBanner() {
	banner := `
 _____               _     ____
|_   _| __ __ _  ___| | __/ ___|  ___ _ __  ___  ___
  | || '__/ _' |/ __| |/ /\___ \ / _ \ '_ \/ __|/ _ \
  | || | | (_| | (__|   <  ___) |  __/ | | \__ \  __/
  |_||_|  \__,_|\___|_|\_\|____/ \___|_| |_|___/\___|

        Tempo / Key / Waveform / Trim Tool
`
	fmt.Println(banner)
}

func printUsage() {
	fmt.Println(`Usage:
  tracksense analyze  <audiofile>
  tracksense waveform <audiofile> [-points N]
  tracksense trim     <input> <output.mp3> -start S -end S [-bitrate KBPS]
  tracksense convert  <input> <output.mp3> [-bitrate KBPS]
  tracksense info     <audiofile>

Environment:
  LOG_LEVEL  DEBUG | INFO | WARN | FATAL (default INFO)`)
}

// signalContext is cancelled on SIGINT/SIGTERM so long transcodes can stop
// between decode chunks.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func handleAnalyze() {
	log := logger.GetLogger()

	if len(os.Args) < 3 {
		fmt.Println("Error: audio file path required")
		printUsage()
		os.Exit(1)
	}
	path := os.Args[2]

	ctx, cancel := signalContext()
	defer cancel()

	svc := tracksense.New()
	result, err := svc.Analyze(ctx, path)
	if err != nil {
		log.Fatalf("Analysis failed: %v", err)
	}

	fmt.Printf("  BPM: %.0f (confidence %.1f%%)\n", result.BPM, result.BPMConfidence)
	fmt.Printf("  Key: %s (confidence %.1f%%)\n", result.Key, result.KeyConfidence)
}

func handleWaveform() {
	log := logger.GetLogger()

	if len(os.Args) < 3 {
		fmt.Println("Error: audio file path required")
		printUsage()
		os.Exit(1)
	}
	path := os.Args[2]

	waveCmd := flag.NewFlagSet("waveform", flag.ExitOnError)
	points := waveCmd.Int("points", 200, "Number of min/max points to produce")
	waveCmd.Parse(os.Args[3:])

	ctx, cancel := signalContext()
	defer cancel()

	svc := tracksense.New()
	waveform, err := svc.Waveform(ctx, path, *points)
	if err != nil {
		log.Fatalf("Waveform generation failed: %v", err)
	}

	out, err := json.Marshal(waveform)
	if err != nil {
		log.Fatalf("Failed to encode waveform: %v", err)
	}
	fmt.Println(string(out))
}

func handleTrim() {
	log := logger.GetLogger()

	if len(os.Args) < 4 {
		fmt.Println("Error: input and output paths required")
		printUsage()
		os.Exit(1)
	}
	input := os.Args[2]
	output := os.Args[3]

	trimCmd := flag.NewFlagSet("trim", flag.ExitOnError)
	start := trimCmd.Float64("start", 0, "Trim start in seconds")
	end := trimCmd.Float64("end", 0, "Trim end in seconds (0 = end of file)")
	bitrate := trimCmd.Int("bitrate", 192, "Output bitrate in kbps (128, 192, 256, 320)")
	trimCmd.Parse(os.Args[4:])

	ctx, cancel := signalContext()
	defer cancel()

	svc := tracksense.New()
	if err := svc.TrimTranscode(ctx, input, output, *bitrate, *start, *end); err != nil {
		log.Fatalf("Trim failed: %v", err)
	}
	fmt.Printf("Wrote %s\n", output)
}

func handleConvert() {
	log := logger.GetLogger()

	if len(os.Args) < 4 {
		fmt.Println("Error: input and output paths required")
		printUsage()
		os.Exit(1)
	}
	input := os.Args[2]
	output := os.Args[3]

	convCmd := flag.NewFlagSet("convert", flag.ExitOnError)
	bitrate := convCmd.Int("bitrate", 192, "Output bitrate in kbps (128, 192, 256, 320)")
	convCmd.Parse(os.Args[4:])

	ctx, cancel := signalContext()
	defer cancel()

	svc := tracksense.New()
	if err := svc.Transcode(ctx, input, output, *bitrate); err != nil {
		log.Fatalf("Conversion failed: %v", err)
	}
	fmt.Printf("Wrote %s\n", output)
}

func handleInfo() {
	log := logger.GetLogger()

	if len(os.Args) < 3 {
		fmt.Println("Error: audio file path required")
		printUsage()
		os.Exit(1)
	}
	path := os.Args[2]

	svc := tracksense.New()
	meta, err := svc.Metadata(path)
	if err != nil {
		log.Fatalf("Failed to read metadata: %v", err)
	}

	fmt.Printf("  Title:  %s\n", meta.Title)
	fmt.Printf("  Artist: %s\n", meta.Artist)
	fmt.Printf("  Album:  %s\n", meta.Album)
	fmt.Printf("  Genre:  %s\n", meta.Genre)
	if meta.Year != 0 {
		fmt.Printf("  Year:   %d\n", meta.Year)
	}
	fmt.Printf("  Format: %s\n", meta.Format)
}
