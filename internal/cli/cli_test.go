package cli

import (
	"bytes"
	"testing"

	"github.com/specialistvlad/jumpgridgo/internal/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Valid(t *testing.T) {
	testCases := []struct {
		name  string
		args  []string
		check func(t *testing.T, cfg *app.Config)
	}{
		{
			name: "positional path with defaults",
			args: []string{"levels/tower.hcl"},
			check: func(t *testing.T, cfg *app.Config) {
				assert.Equal(t, "levels/tower.hcl", cfg.LevelPath)
				assert.Equal(t, uint64(1), cfg.Seed)
				assert.Equal(t, app.DefaultDT, cfg.DT)
				assert.Equal(t, "json", cfg.LogFormat)
				assert.Equal(t, "info", cfg.LogLevel)
				assert.Zero(t, cfg.Ticks)
			},
		},
		{
			name: "flag beats positional",
			args: []string{"-level", "a", "b"},
			check: func(t *testing.T, cfg *app.Config) {
				assert.Equal(t, "a", cfg.LevelPath)
			},
		},
		{
			name: "shorthand",
			args: []string{"-l", "levels"},
			check: func(t *testing.T, cfg *app.Config) {
				assert.Equal(t, "levels", cfg.LevelPath)
			},
		},
		{
			name: "generated level with recorders",
			args: []string{"-generate", "-seed", "9", "-ticks", "600", "-db", "runs.db", "-trace", "t.jsonl.zst", "-log-format", "TEXT"},
			check: func(t *testing.T, cfg *app.Config) {
				assert.True(t, cfg.Generate)
				assert.Empty(t, cfg.LevelPath)
				assert.Equal(t, uint64(9), cfg.Seed)
				assert.Equal(t, 600, cfg.Ticks)
				assert.Equal(t, "runs.db", cfg.DBPath)
				assert.Equal(t, "t.jsonl.zst", cfg.TracePath)
				assert.Equal(t, "text", cfg.LogFormat)
			},
		},
		{
			name: "telemetry",
			args: []string{"-telemetry-url", "http://localhost:3000", "-telemetry-namespace", "/viewer", "x.hcl"},
			check: func(t *testing.T, cfg *app.Config) {
				assert.Equal(t, "http://localhost:3000", cfg.TelemetryURL)
				assert.Equal(t, "/viewer", cfg.TelemetryNamespace)
				assert.Equal(t, 6, cfg.TelemetryEvery)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, exit, err := Parse(tc.args, &bytes.Buffer{})

			require.NoError(t, err)
			require.False(t, exit)
			tc.check(t, cfg)
		})
	}
}

func TestParse_UsageErrors(t *testing.T) {
	testCases := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{name: "unknown flag", args: []string{"-nope"}, wantMsg: "flag provided but not defined"},
		{name: "bad format", args: []string{"-log-format", "xml", "x"}, wantMsg: "invalid log-format"},
		{name: "bad level", args: []string{"-log-level", "loud", "x"}, wantMsg: "invalid log-level"},
		{name: "path and generate", args: []string{"-generate", "x"}, wantMsg: "mutually exclusive"},
		{name: "negative dt", args: []string{"-dt", "-0.1", "x"}, wantMsg: "DT must be positive"},
		{name: "zero trace sampling", args: []string{"-trace-every", "0", "x"}, wantMsg: "at least 1"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Parse(tc.args, &bytes.Buffer{})

			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.wantMsg)
		})
	}
}

func TestParse_NoPathPrintsUsage(t *testing.T) {
	out := &bytes.Buffer{}

	cfg, exit, err := Parse(nil, out)

	require.NoError(t, err)
	assert.True(t, exit)
	assert.Nil(t, cfg)
	assert.Contains(t, out.String(), "Usage:")
}
