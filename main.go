package main

import (
	"fmt"
	"os"

	"github.com/df07/go-interactive-raytracer/cmd"
	"github.com/df07/go-interactive-raytracer/pkg/tracer"
	"github.com/urfave/cli"
)

func newApp() *cli.App {
	backendFlag := cli.StringFlag{
		Name:  "backend, b",
		Value: string(tracer.BVH),
		Usage: "intersection backend: naive or bvh",
	}

	// The default version flag also claims -v, which is the verbose flag here
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "go-interactive-raytracer"
	app.Usage = "progressive path tracing, from the terminal or the browser"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a scene to a PNG file",
			Description: `
Accumulate samples frame by frame until every pixel reaches the requested
sample count, then write the image and print render statistics.`,
			Flags: flags(cmd.SceneFlags, cmd.SessionFlags, backendFlag, cli.StringFlag{
				Name:  "out, o",
				Value: "render.png",
				Usage: "image filename for the rendered frame",
			}),
			Action: cmd.RenderFrame,
		},
		{
			Name:  "bench",
			Usage: "compare intersection backends on the same scene",
			Flags: flags(cmd.SceneFlags, cmd.SessionFlags, cli.IntFlag{
				Name:  "frames",
				Value: 20,
				Usage: "frames rendered per backend",
			}),
			Action: cmd.Benchmark,
		},
		{
			Name:  "serve",
			Usage: "serve the interactive renderer over HTTP",
			Flags: flags(cmd.SceneFlags, cmd.SessionFlags, backendFlag, cli.IntFlag{
				Name:  "port, p",
				Value: 8080,
				Usage: "port to listen on",
			}),
			Action: cmd.Serve,
		},
		{
			Name:   "scenes",
			Usage:  "list preset scenes",
			Action: cmd.ListScenes,
		},
	}
	return app
}

func flags(scene, session []cli.Flag, extra ...cli.Flag) []cli.Flag {
	all := make([]cli.Flag, 0, len(scene)+len(session)+len(extra))
	all = append(all, scene...)
	all = append(all, session...)
	return append(all, extra...)
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
