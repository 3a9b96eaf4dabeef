package cmd

import (
	"github.com/df07/go-interactive-raytracer/pkg/loaders"
	"github.com/df07/go-interactive-raytracer/pkg/renderer"
	"github.com/df07/go-interactive-raytracer/pkg/scene"
	"github.com/df07/go-interactive-raytracer/pkg/tracer"
	"github.com/urfave/cli"
)

// SceneFlags select and size the scene. Shared by render, bench and serve.
var SceneFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "scene, s",
		Value: "spheres",
		Usage: "preset scene id (see the scenes command)",
	},
	cli.StringFlag{
		Name:  "scene-file, f",
		Usage: "JSON scene file; overrides --scene",
	},
	cli.IntFlag{
		Name:  "width",
		Usage: "frame width (0 keeps the scene's own)",
	},
	cli.IntFlag{
		Name:  "height",
		Usage: "frame height (0 keeps the scene's own)",
	},
}

// SessionFlags configure progressive accumulation
var SessionFlags = []cli.Flag{
	cli.IntFlag{
		Name:  "spp",
		Value: renderer.DefaultSettings().SamplesPerPixel,
		Usage: "samples per pixel",
	},
	cli.IntFlag{
		Name:  "depth",
		Value: renderer.DefaultSettings().MaxDepth,
		Usage: "maximum ray bounces",
	},
	cli.DurationFlag{
		Name:  "budget",
		Value: renderer.DefaultSettings().TimeBudget,
		Usage: "time spent sampling per frame",
	},
	cli.Int64Flag{
		Name:  "seed",
		Value: renderer.DefaultStateConfig().Seed,
		Usage: "seed for pixel orders and sampling",
	},
	cli.IntFlag{
		Name:  "workers",
		Usage: "number of render workers (0 uses every CPU)",
	},
}

// loadDescription resolves the scene flags
func loadDescription(ctx *cli.Context) (scene.Description, error) {
	var (
		desc scene.Description
		err  error
	)
	if file := ctx.String("scene-file"); file != "" {
		logger.Noticef("loading scene file: %s", file)
		desc, err = loaders.LoadSceneFile(file)
	} else {
		desc, err = scene.LookupPreset(ctx.String("scene"))
	}
	if err != nil {
		return scene.Description{}, err
	}

	if w := ctx.Int("width"); w > 0 {
		desc.Camera.Width = w
	}
	if h := ctx.Int("height"); h > 0 {
		desc.Camera.Height = h
	}
	return desc, nil
}

func settingsFromFlags(ctx *cli.Context) renderer.Settings {
	return renderer.Settings{
		SamplesPerPixel: ctx.Int("spp"),
		MaxDepth:        ctx.Int("depth"),
		TimeBudget:      ctx.Duration("budget"),
	}
}

func stateConfigFromFlags(ctx *cli.Context) renderer.StateConfig {
	config := renderer.DefaultStateConfig()
	config.Seed = ctx.Int64("seed")
	config.NumWorkers = ctx.Int("workers")
	return config
}

// newSession builds the scene on backend and wraps it in a session
func newSession(ctx *cli.Context, desc scene.Description, backend tracer.Backend) (*renderer.Session, error) {
	sc, err := scene.New(desc, backend)
	if err != nil {
		return nil, err
	}
	logger.Infof("scene %q: %d geometries, %dx%d, %s backend", sc.Name, len(sc.Geometries), sc.Width(), sc.Height(), backend)
	return renderer.NewSession(sc, settingsFromFlags(ctx), stateConfigFromFlags(ctx)), nil
}
