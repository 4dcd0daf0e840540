package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/df07/go-sphere-tracer/pkg/config"
	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/display"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
	"github.com/df07/go-sphere-tracer/pkg/snapshot"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load(".env")
	if err != nil {
		return err
	}

	flags := flag.NewFlagSet("sphere-tracer", flag.ContinueOnError)
	headless := flags.Bool("headless", false, "Render one frame to a PNG and exit instead of opening a window")
	help := flags.Bool("help", false, "Show help information")
	cfg.RegisterFlags(flags)
	if err := flags.Parse(args); err != nil {
		return err
	}

	// Show help if requested
	if *help {
		fmt.Println("Sphere Tracer")
		fmt.Println("Usage: sphere-tracer [options]")
		fmt.Println()
		fmt.Println("Options:")
		flags.SetOutput(os.Stdout)
		flags.PrintDefaults()
		fmt.Println()
		fmt.Println("Settings can also come from TRACER_* environment variables or a .env file.")
		fmt.Println("Headless renders are saved to <out>/sphere/render_<timestamp>.png and")
		fmt.Println("uploaded to S3 when S3_BUCKET is set.")
		return nil
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := renderer.NewDefaultLogger()
	sphere := geometry.NewTransformedSphere(cfg.SphereTransform())
	pr := renderer.NewParallelRenderer(sphere, cfg.Wall(), cfg.Parallel(), logger)
	defer pr.Close()

	if *headless {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		_, err := renderSnapshot(ctx, cfg, pr, logger)
		return err
	}

	return display.RunWindow(pr, display.Options{
		Width:   cfg.Width,
		Height:  cfg.Height,
		Upscale: cfg.Upscale,
	}, logger)
}

// renderSnapshot renders one frame, writes it under the output directory and
// uploads it when a bucket is configured. It returns the local file path.
func renderSnapshot(ctx context.Context, cfg *config.Config, pr *renderer.ParallelRenderer, logger core.Logger) (string, error) {
	frame := renderer.NewFrame(cfg.Width, cfg.Height)

	startTime := time.Now()
	stats, err := pr.RenderFrame(ctx, frame)
	if err != nil {
		return "", err
	}
	logger.Printf("Render completed in %v: %d/%d pixels hit (%.1f%%)\n",
		time.Since(startTime), stats.HitPixels, stats.TotalPixels, 100*stats.Coverage())

	data, err := snapshot.PNGBytes(frame.RGBA(), cfg.Upscale)
	if err != nil {
		return "", err
	}

	name := snapshot.Filename(time.Now())
	filename, err := snapshot.Save(filepath.Join(cfg.OutputDir, "sphere"), name, data)
	if err != nil {
		return "", err
	}
	logger.Printf("Render saved as %s\n", filename)

	if cfg.S3.Bucket != "" {
		uploader, err := snapshot.NewUploader(cfg.S3, logger)
		if err != nil {
			return filename, err
		}
		if _, err := uploader.Upload(ctx, name, data); err != nil {
			return filename, err
		}
	}

	return filename, nil
}
