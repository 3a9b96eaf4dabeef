package cmd

import (
	"time"

	"github.com/df07/go-interactive-raytracer/pkg/renderer"
	"github.com/df07/go-interactive-raytracer/pkg/scene"
	"github.com/df07/go-interactive-raytracer/pkg/tracer"
	"github.com/urfave/cli"
)

// Benchmark renders the same frames with every backend and compares them.
func Benchmark(ctx *cli.Context) error {
	setupLogging(ctx)

	desc, err := loadDescription(ctx)
	if err != nil {
		return err
	}

	frames := ctx.Int("frames")
	results := make([]renderer.BenchmarkResult, 0, len(tracer.Backends()))
	for _, backend := range tracer.Backends() {
		result, err := benchmarkBackend(ctx, desc, backend, frames)
		if err != nil {
			return err
		}
		results = append(results, result)
	}

	logger.Noticef("backend comparison for %q\n%s", desc.Name, renderer.FormatStatsTable(results))
	return nil
}

// benchmarkBackend runs up to frames frames, stopping early once finished
func benchmarkBackend(ctx *cli.Context, desc scene.Description, backend tracer.Backend, frames int) (renderer.BenchmarkResult, error) {
	session, err := newSession(ctx, desc, backend)
	if err != nil {
		return renderer.BenchmarkResult{}, err
	}
	defer session.Close()

	result := renderer.BenchmarkResult{Name: string(backend)}
	start := time.Now()
	for result.Frames < frames {
		frame, err := session.Frame()
		if err != nil {
			return renderer.BenchmarkResult{}, err
		}
		result.Frames++
		if frame.Finished {
			break
		}
	}
	result.Elapsed = time.Since(start)
	result.Stats = session.Stats()
	return result, nil
}
