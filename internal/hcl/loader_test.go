package hcl

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/jumpgridgo/internal/config"
	"github.com/specialistvlad/jumpgridgo/internal/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var env = config.Env{AgentRadius: 9}

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
	return dir
}

const fullLevel = `
world {
  name       = "tower"
  gravity    = [0, 98]
  kill_plane = 650
}

platform "ground" {
  center = [400, 700]
  size   = [1700, 80]
}

lift "west" {
  size   = [60, 10]
  from   = [180, -60]
  to     = [180, -300]
  speed  = 30
  dampen = 1
}

hazard "spikes" {
  center = [0, 650]
  size   = [40, 20]
}

spawn "floor" {
  position = [60, 660 - agent.radius]
}

goal {
  position = [max(700, 800), -800]
  patrol   = [[800, -800], [-100, 640]]
  dwell    = 12
}
`

func TestLoader_DecodesEveryBlock(t *testing.T) {
	// --- Arrange ---
	dir := writeFiles(t, map[string]string{"tower.hcl": fullLevel})

	// --- Act ---
	level, err := NewLoader().Load(context.Background(), env, dir)

	// --- Assert ---
	require.NoError(t, err)
	want := &config.Level{
		Name:      "tower",
		Gravity:   geom.V(0, 98),
		KillPlane: 650,
		Platforms: []config.Box{{Name: "ground", Center: geom.V(400, 700), Width: 1700, Height: 80}},
		Lifts: []config.Lift{{
			Name: "west", Width: 60, Height: 10,
			From: geom.V(180, -60), To: geom.V(180, -300), Speed: 30, Dampen: 1,
		}},
		Hazards: []config.Box{{Name: "spikes", Center: geom.V(0, 650), Width: 40, Height: 20}},
		Spawns:  []config.Spawn{{Name: "floor", Position: geom.V(60, 651)}},
		Goal: config.Goal{
			Position: geom.V(800, -800),
			Patrol:   []geom.Vec2{geom.V(800, -800), geom.V(-100, 640)},
			Dwell:    12,
		},
	}
	if diff := cmp.Diff(want, level); diff != "" {
		t.Errorf("level mismatch (-want +got):\n%s", diff)
	}
}

func TestLoader_MergesFilesInPathOrder(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a_statics.hcl": `
platform "one" {
  center = [0, 0]
  size   = [100, 20]
}
spawn "s" { position = [0, -20] }
`,
		"b_more/extra.hcl": `
platform "two" {
  center = [300, 0]
  size   = [100, 20]
}
goal { position = [300, -20] }
`,
	})

	level, err := NewLoader().Load(context.Background(), env, dir)

	require.NoError(t, err)
	assert.Equal(t, "a_statics", level.Name, "defaults to the first file's name")
	require.Len(t, level.Platforms, 2)
	assert.Equal(t, "one", level.Platforms[0].Name)
	assert.Equal(t, "two", level.Platforms[1].Name)
	assert.Equal(t, geom.V(300, -20), level.Goal.Position)
	assert.True(t, level.Gravity.IsZero(), "left for the caller to default")
}

func TestLoader_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "syntax error",
			content: "platform \"a\" {\n  center = [0, 0]\n",
			wantErr: "failed to parse HCL file",
		},
		{
			name:    "unknown block",
			content: "portal \"x\" {}\nspawn \"s\" { position = [0, 0] }\n",
			wantErr: "failed to decode HCL file",
		},
		{
			name:    "three coordinates",
			content: "spawn \"s\" { position = [0, 0, 0] }\n",
			wantErr: "expected 2 numbers, got 3",
		},
		{
			name:    "string coordinates",
			content: "spawn \"s\" { position = [\"left\", 0] }\n",
			wantErr: "Invalid coordinates",
		},
		{
			name:    "unknown variable",
			content: "spawn \"s\" { position = [0, player.height] }\n",
			wantErr: "failed to decode HCL file",
		},
		{
			name:    "fails validation",
			content: "platform \"flat\" {\n  center = [0, 0]\n  size = [100, 0]\n}\nspawn \"s\" { position = [0, 0] }\n",
			wantErr: `platform "flat": size must be positive`,
		},
		{
			name:    "no spawns",
			content: "platform \"a\" {\n  center = [0, 0]\n  size = [100, 10]\n}\n",
			wantErr: "at least one spawn point is required",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			dir := writeFiles(t, map[string]string{"level.hcl": tc.content})

			_, err := NewLoader().Load(context.Background(), env, filepath.Join(dir, "level.hcl"))

			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoader_EmptyDirectory(t *testing.T) {
	_, err := NewLoader().Load(context.Background(), env, t.TempDir())

	assert.ErrorContains(t, err, "no .hcl files found")
}

func TestLoader_AgentRadiusComesFromEnv(t *testing.T) {
	dir := writeFiles(t, map[string]string{"l.hcl": `spawn "s" { position = [0, -agent.diameter] }`})

	level, err := NewLoader().Load(context.Background(), config.Env{AgentRadius: 12}, dir)

	require.NoError(t, err)
	assert.Equal(t, geom.V(0, -24), level.Spawns[0].Position)
}
