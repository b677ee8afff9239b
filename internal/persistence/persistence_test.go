package persistence

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/specialistvlad/jumpgridgo/internal/engine"
	"github.com/specialistvlad/jumpgridgo/internal/geom"
	"github.com/specialistvlad/jumpgridgo/internal/roster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openMemory(t *testing.T) *Recorder {
	t.Helper()
	r, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestRecorder_StoresRunAndEvents(t *testing.T) {
	// --- Arrange ---
	ctx := context.Background()
	rec := openMemory(t)
	runID, err := rec.StartRun(ctx, Run{Level: "tower", Seed: 42, DT: 1.0 / 60})
	require.NoError(t, err)
	agent := uuid.New()

	// --- Act ---
	require.NoError(t, rec.Observe(ctx, &engine.Snapshot{Tick: 1}))
	require.NoError(t, rec.Observe(ctx, &engine.Snapshot{Tick: 2, Events: []roster.Event{
		{Kind: roster.Spawned, Agent: agent, Position: geom.V(10, 20), At: 2.0},
	}}))
	require.NoError(t, rec.Observe(ctx, &engine.Snapshot{Tick: 3, Events: []roster.Event{
		{Kind: roster.Despawned, Agent: agent, Reason: roster.OutOfBounds, Position: geom.V(10, 800), At: 3.5},
	}}))
	require.NoError(t, rec.FinishRun(ctx, 3.5))

	// --- Assert ---
	runs, err := rec.Runs(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, runID.String(), runs[0].ID)
	assert.Equal(t, "tower", runs[0].Level)
	assert.Equal(t, int64(42), runs[0].Seed)
	assert.Equal(t, 3, runs[0].Ticks)
	assert.Equal(t, 3.5, runs[0].Elapsed)
	require.NotNil(t, runs[0].FinishedAt)

	events, err := rec.Events(ctx, runID)
	require.NoError(t, err)
	assert.Equal(t, []EventRow{
		{RunID: runID.String(), Tick: 2, At: 2.0, Agent: agent.String(), Kind: "spawned", Reason: "", X: 10, Y: 20},
		{RunID: runID.String(), Tick: 3, At: 3.5, Agent: agent.String(), Kind: "despawned", Reason: "out_of_bounds", X: 10, Y: 800},
	}, events)
}

func TestRecorder_RequiresRun(t *testing.T) {
	rec := openMemory(t)

	assert.ErrorIs(t, rec.Observe(context.Background(), &engine.Snapshot{Tick: 1}), ErrNoRun)
	assert.ErrorIs(t, rec.FinishRun(context.Background(), 0), ErrNoRun)
}

func TestRecorder_ReopensFileDatabase(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "runs.db")

	rec, err := Open(ctx, path)
	require.NoError(t, err)
	_, err = rec.StartRun(ctx, Run{Level: "a"})
	require.NoError(t, err)
	require.NoError(t, rec.Close())

	rec, err = Open(ctx, path)
	require.NoError(t, err)
	defer rec.Close()
	_, err = rec.StartRun(ctx, Run{Level: "b"})
	require.NoError(t, err)

	runs, err := rec.Runs(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "a", runs[0].Level)
	assert.Equal(t, "b", runs[1].Level)
}

func TestTraceWriter_RoundTripsKeptSnapshots(t *testing.T) {
	// --- Arrange ---
	var buf bytes.Buffer
	tw, err := NewTraceWriter(&buf, 2)
	require.NoError(t, err)
	agent := uuid.New()

	// --- Act ---
	for tick := 1; tick <= 5; tick++ {
		snap := &engine.Snapshot{
			Tick: tick,
			Time: float64(tick) / 60,
			Goal: geom.V(800, -800),
			Agents: []engine.AgentState{{
				ID: agent, State: "walking", Position: geom.V(float64(tick), 0), Radius: 9, Node: "0.1.3", PathLen: 2,
			}},
		}
		if tick == 4 {
			snap.Events = []roster.Event{{Kind: roster.Despawned, Agent: agent, Reason: roster.Shrunk}}
		}
		require.NoError(t, tw.Observe(context.Background(), snap))
	}
	require.NoError(t, tw.Close())

	// --- Assert ---
	snaps, err := ReadTrace(&buf)
	require.NoError(t, err)
	require.Len(t, snaps, 2)
	assert.Equal(t, 2, snaps[0].Tick)
	assert.Equal(t, 4, snaps[1].Tick)
	assert.Equal(t, geom.V(4, 0), snaps[1].Agents[0].Position)
	assert.Equal(t, "0.1.3", snaps[1].Agents[0].Node)
	require.Len(t, snaps[1].Events, 1)
	assert.Equal(t, roster.Shrunk, snaps[1].Events[0].Reason)
	assert.Equal(t, agent, snaps[1].Events[0].Agent)
}

func TestCreateTrace_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.jsonl.zst")
	tw, err := CreateTrace(path, 1)
	require.NoError(t, err)
	require.NoError(t, tw.Observe(context.Background(), &engine.Snapshot{Tick: 1}))
	require.NoError(t, tw.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	snaps, err := ReadTrace(f)
	require.NoError(t, err)
	assert.Len(t, snaps, 1)
}
