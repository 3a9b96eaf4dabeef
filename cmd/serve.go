package cmd

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/df07/go-interactive-raytracer/pkg/log"
	"github.com/df07/go-interactive-raytracer/pkg/tracer"
	"github.com/df07/go-interactive-raytracer/web/server"
	"github.com/urfave/cli"
)

// Serve starts the interactive web server.
func Serve(ctx *cli.Context) error {
	setupLogging(ctx)

	// Mirror log output to connected clients
	console := server.NewConsole()
	log.SetSink(io.MultiWriter(os.Stderr, console))

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

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.NewServer(ctx.Int("port"), session, backend, console).Start(runCtx)
}
