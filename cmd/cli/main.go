package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/specialistvlad/jumpgridgo/internal/app"
	"github.com/specialistvlad/jumpgridgo/internal/cli"
	"github.com/specialistvlad/jumpgridgo/internal/config"
	"github.com/specialistvlad/jumpgridgo/internal/hcl"
	"github.com/specialistvlad/jumpgridgo/internal/levelgen"
)

// main is the entrypoint for the jumpgrid application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Stdout, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run wires the parsed configuration into an App and runs it until the tick
// budget is spent or ctx is cancelled.
func run(ctx context.Context, outW io.Writer, args []string) (err error) {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	// The app panics on critical load errors.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("application startup panicked: %v", r)
		}
	}()

	jumpgridApp := app.NewApp(outW, appConfig, newLoader(appConfig))
	return jumpgridApp.Run(ctx)
}

func newLoader(cfg *app.Config) config.Loader {
	if cfg.Generate {
		opts := levelgen.DefaultOptions()
		opts.Seed = int64(cfg.Seed)
		return levelgen.NewLoader(opts)
	}
	return hcl.NewLoader()
}
