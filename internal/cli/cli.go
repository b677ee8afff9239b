package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/jumpgridgo/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) *ExitError {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("jumpgrid", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
JumpGrid - Hierarchical platformer navigation for swarms of autonomous agents.

Usage:
  jumpgrid [options] [LEVEL_PATH]
  jumpgrid -generate [options]

Arguments:
  LEVEL_PATH
    Path to a single .hcl level file or a directory containing .hcl files.

Options:
`)
		flagSet.PrintDefaults()
	}

	levelFlag := flagSet.String("level", "", "Path to the level file or directory.")
	lFlag := flagSet.String("l", "", "Path to the level file or directory (shorthand).")
	generateFlag := flagSet.Bool("generate", false, "Generate a procedural level instead of loading one.")
	seedFlag := flagSet.Uint64("seed", 1, "Seed for spawn selection and level generation.")
	tuningFlag := flagSet.String("tuning", "", "Path to a YAML tuning file.")
	ticksFlag := flagSet.Int("ticks", 0, "Number of ticks to simulate. 0 runs until interrupted.")
	dtFlag := flagSet.Float64("dt", app.DefaultDT, "Tick length in seconds.")
	realtimeFlag := flagSet.Bool("realtime", false, "Pace ticks with the wall clock.")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the HTTP health check and /ws snapshot stream. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	dbFlag := flagSet.String("db", "", "SQLite database to record the run into.")
	traceFlag := flagSet.String("trace", "", "Write snapshots to this .jsonl.zst file.")
	traceEveryFlag := flagSet.Int("trace-every", 1, "Keep one snapshot in this many in the trace.")
	telemetryURLFlag := flagSet.String("telemetry-url", "", "socket.io server to publish snapshots to.")
	telemetryNSFlag := flagSet.String("telemetry-namespace", "/", "socket.io namespace for telemetry.")
	telemetryEveryFlag := flagSet.Int("telemetry-every", 6, "Publish one snapshot in this many.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	switch {
	case *levelFlag != "":
		path = *levelFlag
	case *lFlag != "":
		path = *lFlag
	case flagSet.NArg() > 0:
		path = flagSet.Arg(0)
	}
	slog.Debug("Level path determined.", "path", path, "generate", *generateFlag)

	if path == "" && !*generateFlag {
		slog.Debug("No level path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}
	if path != "" && *generateFlag {
		return nil, false, usageError("a level path and -generate are mutually exclusive")
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, usageError("invalid log-format: must be 'text' or 'json'")
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, usageError("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}

	if *traceEveryFlag < 1 || *telemetryEveryFlag < 1 {
		return nil, false, usageError("trace-every and telemetry-every must be at least 1")
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		LevelPath:          path,
		Generate:           *generateFlag,
		Seed:               *seedFlag,
		TuningPath:         *tuningFlag,
		Ticks:              *ticksFlag,
		DT:                 *dtFlag,
		Realtime:           *realtimeFlag,
		LogFormat:          logFormat,
		LogLevel:           logLevel,
		HealthcheckPort:    *healthPortFlag,
		DBPath:             *dbFlag,
		TracePath:          *traceFlag,
		TraceEvery:         *traceEveryFlag,
		TelemetryURL:       *telemetryURLFlag,
		TelemetryNamespace: *telemetryNSFlag,
		TelemetryEvery:     *telemetryEveryFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
