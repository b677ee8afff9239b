package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/specialistvlad/jumpgridgo/internal/ctxlog"
	"github.com/specialistvlad/jumpgridgo/internal/persistence"
	"github.com/specialistvlad/jumpgridgo/internal/telemetry"
)

// Run attaches the configured observers, runs the simulation and tears the
// observers down again.
func (a *App) Run(ctx context.Context) (err error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")
	cfg := a.config

	var closers []io.Closer
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			err = errors.Join(err, closers[i].Close())
		}
	}()

	if cfg.HealthcheckPort > 0 {
		if _, err := a.startHealthcheckServer(cfg.HealthcheckPort); err != nil {
			return err
		}
		closers = append(closers, closerFunc(a.closeHealthCheckServer))
		a.sim.AddObserver(a.hub)
	}

	var rec *persistence.Recorder
	if cfg.DBPath != "" {
		rec, err = persistence.Open(ctx, cfg.DBPath)
		if err != nil {
			return fmt.Errorf("failed to open run database: %w", err)
		}
		closers = append(closers, rec)
		if _, err := rec.StartRun(ctx, persistence.Run{Level: a.level.Name, Seed: cfg.Seed, DT: cfg.DT}); err != nil {
			return err
		}
		a.sim.AddObserver(rec)
	}

	if cfg.TracePath != "" {
		tw, err := persistence.CreateTrace(cfg.TracePath, cfg.TraceEvery)
		if err != nil {
			return err
		}
		closers = append(closers, tw)
		a.sim.AddObserver(tw)
	}

	if cfg.TelemetryURL != "" {
		pub, err := telemetry.DialSocketIO(ctx, telemetry.SocketIOOptions{
			URL:       cfg.TelemetryURL,
			Namespace: cfg.TelemetryNamespace,
			Every:     cfg.TelemetryEvery,
		})
		if err != nil {
			return err
		}
		closers = append(closers, pub)
		a.sim.AddObserver(pub)
	}

	a.logger.Info("🚀 Starting simulation...", "level", a.level.Name, "ticks", cfg.Ticks, "dt", cfg.DT, "seed", cfg.Seed)
	if cfg.Realtime {
		err = a.sim.RunRealtime(ctx, cfg.Ticks, cfg.DT)
	} else {
		err = a.sim.Run(ctx, cfg.Ticks, cfg.DT)
	}
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}
	a.logger.Info("🏁 Simulation finished.", "ticks", a.sim.Ticks(), "agents", a.sim.Roster().Len())

	if rec != nil {
		if err := rec.FinishRun(ctx, a.sim.Elapsed()); err != nil {
			return err
		}
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }
