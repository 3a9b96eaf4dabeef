package cmd

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/df07/go-interactive-raytracer/pkg/renderer"
	"github.com/df07/go-interactive-raytracer/pkg/tracer"
	"github.com/urfave/cli"
)

// RenderFrame renders a scene to completion and saves it as a PNG.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	backend, err := tracer.ParseBackend(ctx.String("backend"))
	if err != nil {
		return err
	}
	desc, err := loadDescription(ctx)
	if err != nil {
		return err
	}
	session, err := newSession(ctx, desc, backend)
	if err != nil {
		return err
	}
	defer session.Close()

	logger.Noticef("rendering %q at %d spp", desc.Name, session.Settings().SamplesPerPixel)
	start := time.Now()
	frame, frames := renderer.Frame{}, 0
	for !frame.Finished {
		frame, err = session.Frame()
		if err != nil {
			return err
		}
		frames++
		logger.Debugf("frame %d: %.1f%% done", frames, frame.Progress*100)
	}
	elapsed := time.Since(start)

	out := ctx.String("out")
	if err := writePNG(out, frame); err != nil {
		return err
	}

	result := renderer.BenchmarkResult{
		Name:    string(backend),
		Stats:   session.Stats(),
		Frames:  frames,
		Elapsed: elapsed,
	}
	logger.Noticef("frame statistics\n%s", renderer.FormatStatsTable([]renderer.BenchmarkResult{result}))
	logger.Noticef("average luminance %.4f, saved %s", renderer.AverageLuminance(frame.Pixels), out)
	return nil
}

// writePNG saves frame, creating the parent directory when needed
func writePNG(filename string, frame renderer.Frame) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating output directory: %w", err)
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}
	defer file.Close()

	img := &image.RGBA{
		Pix:    frame.Pixels,
		Stride: 4 * frame.Width,
		Rect:   image.Rect(0, 0, frame.Width, frame.Height),
	}
	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("error saving PNG: %w", err)
	}
	return file.Close()
}
