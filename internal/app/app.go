package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/specialistvlad/jumpgridgo/internal/config"
	"github.com/specialistvlad/jumpgridgo/internal/ctxlog"
	"github.com/specialistvlad/jumpgridgo/internal/engine"
	"github.com/specialistvlad/jumpgridgo/internal/telemetry"
	"github.com/specialistvlad/jumpgridgo/internal/tuning"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	ctx    context.Context
	logger *slog.Logger
	config *Config

	tuning tuning.Tuning
	level  *config.Level
	sim    *engine.Simulation

	hub        *telemetry.Hub
	httpServer *http.Server
}

// NewApp is the constructor for the main application. It loads the tuning
// and the level and builds the simulation. A failure here is a fatal
// startup error and panics.
func NewApp(outW io.Writer, cfg *Config, loader config.Loader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	t, err := tuning.Load(cfg.TuningPath)
	if err != nil {
		panic(fmt.Errorf("failed to load configuration: %w", err))
	}
	logger.Debug("Tuning loaded.", "path", cfg.TuningPath)

	var paths []string
	if cfg.LevelPath != "" {
		paths = append(paths, cfg.LevelPath)
	}
	level, err := loader.Load(ctx, config.Env{AgentRadius: t.Roster.Character.Radius}, paths...)
	if err != nil {
		panic(fmt.Errorf("failed to load configuration: %w", err))
	}
	logger.Debug("Level loaded and translated into unified model.", "level", level.Name)

	sim, err := engine.Build(ctx, level, t, cfg.Seed)
	if err != nil {
		panic(err)
	}

	return &App{
		outW:   outW,
		ctx:    ctx,
		logger: logger,
		config: cfg,
		tuning: t,
		level:  level,
		sim:    sim,
		hub:    telemetry.NewHub(logger, max(cfg.TelemetryEvery, 1)),
	}
}

// Simulation returns the application's simulation. This is primarily for testing.
func (a *App) Simulation() *engine.Simulation {
	return a.sim
}

// Level returns the loaded level.
func (a *App) Level() *config.Level {
	return a.level
}
