// Package testutil holds the harness used by the end-to-end scenario tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/jumpgridgo/internal/app"
	"github.com/specialistvlad/jumpgridgo/internal/hcl"
	"github.com/stretchr/testify/require"
)

// HarnessResult holds the outcomes of a scenario run.
type HarnessResult struct {
	LogOutput string
	Err       error
	App       *app.App
}

// RunLevel writes files into a temporary level directory, builds the app
// from them and runs it for ticks ticks.
func RunLevel(t *testing.T, files map[string]string, ticks int) *HarnessResult {
	t.Helper()
	return RunLevelWithContext(context.Background(), t, files, &app.Config{Ticks: ticks})
}

// RunLevelWithContext is RunLevel with a caller supplied context and
// configuration. LevelPath is filled in by the harness.
func RunLevelWithContext(ctx context.Context, t *testing.T, files map[string]string, cfg *app.Config) *HarnessResult {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	cfg.LevelPath = dir
	return Run(ctx, t, cfg)
}

// Run builds the app for cfg using the HCL loader and runs it. A startup
// panic is reported through Err.
func Run(ctx context.Context, t *testing.T, cfg *app.Config) *HarnessResult {
	t.Helper()

	cfg, err := app.NewConfig(*cfg)
	require.NoError(t, err)

	logBuffer := &app.SafeBuffer{}
	cfg.LogLevel = "debug"
	cfg.LogFormat = "text"

	var testApp *app.App
	var panicErr any
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicErr = r
			}
		}()
		testApp = app.NewApp(logBuffer, cfg, hcl.NewLoader())
	}()

	if os.Getenv("JUMPGRID_TEST_LOGS") == "true" {
		t.Cleanup(func() {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		})
	}

	if panicErr != nil {
		return &HarnessResult{
			LogOutput: logBuffer.String(),
			Err:       fmt.Errorf("application startup panicked | %v", panicErr),
		}
	}

	runErr := testApp.Run(ctx)
	return &HarnessResult{
		LogOutput: logBuffer.String(),
		Err:       runErr,
		App:       testApp,
	}
}
