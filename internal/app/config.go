package app

import (
	"errors"
	"fmt"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	LevelPath string // .hcl file or directory
	Generate  bool   // generate a level instead of loading LevelPath
	Seed      uint64

	TuningPath string // optional YAML overrides
	Ticks      int    // 0 runs until interrupted
	DT         float64
	Realtime   bool

	LogFormat       string
	LogLevel        string
	HealthcheckPort int

	DBPath             string
	TracePath          string
	TraceEvery         int
	TelemetryURL       string
	TelemetryNamespace string
	TelemetryEvery     int
}

// DefaultDT is one sixtieth of a second.
const DefaultDT = 1.0 / 60

func NewConfig(cfg Config) (*Config, error) {
	if cfg.LevelPath == "" && !cfg.Generate {
		return nil, errors.New("LevelPath is a required configuration field unless a level is generated")
	}
	if cfg.DT == 0 {
		cfg.DT = DefaultDT
	}
	if cfg.DT < 0 {
		return nil, fmt.Errorf("DT must be positive, got %g", cfg.DT)
	}
	if cfg.Ticks < 0 {
		return nil, fmt.Errorf("Ticks must not be negative, got %d", cfg.Ticks)
	}
	if cfg.HealthcheckPort < 0 || cfg.HealthcheckPort > 65535 {
		return nil, fmt.Errorf("HealthcheckPort out of range: %d", cfg.HealthcheckPort)
	}
	return &cfg, nil
}
