package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/specialistvlad/jumpgridgo/internal/ctxlog"
	"github.com/specialistvlad/jumpgridgo/internal/engine"
	"github.com/specialistvlad/jumpgridgo/internal/roster"
	_ "modernc.org/sqlite"
)

// ErrNoRun is returned when events arrive before StartRun.
var ErrNoRun = errors.New("no run started")

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	level TEXT NOT NULL,
	seed INTEGER NOT NULL,
	dt REAL NOT NULL,
	started_at INTEGER NOT NULL,
	finished_at INTEGER,
	ticks INTEGER NOT NULL DEFAULT 0,
	elapsed REAL NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS agent_events (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id TEXT NOT NULL REFERENCES runs(id),
	tick INTEGER NOT NULL,
	at REAL NOT NULL,
	agent TEXT NOT NULL,
	kind TEXT NOT NULL,
	reason TEXT NOT NULL,
	x REAL NOT NULL,
	y REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_agent_events_run ON agent_events(run_id, tick);
`

// Run describes a run when it starts.
type Run struct {
	Level string
	Seed  uint64
	DT    float64
}

// RunRow is a stored run.
type RunRow struct {
	ID         string  `db:"id"`
	Level      string  `db:"level"`
	Seed       int64   `db:"seed"`
	DT         float64 `db:"dt"`
	StartedAt  int64   `db:"started_at"`
	FinishedAt *int64  `db:"finished_at"`
	Ticks      int     `db:"ticks"`
	Elapsed    float64 `db:"elapsed"`
}

// EventRow is a stored roster event.
type EventRow struct {
	RunID  string  `db:"run_id"`
	Tick   int     `db:"tick"`
	At     float64 `db:"at"`
	Agent  string  `db:"agent"`
	Kind   string  `db:"kind"`
	Reason string  `db:"reason"`
	X      float64 `db:"x"`
	Y      float64 `db:"y"`
}

// Recorder writes runs and their roster events to SQLite.
type Recorder struct {
	db    *sqlx.DB
	run   uuid.UUID
	ticks int
	now   func() time.Time
}

// Open opens or creates the database at path. ":memory:" gives a private
// in-memory database.
func Open(ctx context.Context, path string) (*Recorder, error) {
	db, err := sqlx.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// One connection keeps an in-memory database alive and serialises writes.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	ctxlog.FromContext(ctx).Debug("Run database opened.", "path", path)
	return &Recorder{db: db, now: time.Now}, nil
}

// Close closes the database.
func (r *Recorder) Close() error {
	return r.db.Close()
}

// StartRun inserts a new run and makes it the target of later events.
func (r *Recorder) StartRun(ctx context.Context, run Run) (uuid.UUID, error) {
	id := uuid.New()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO runs (id, level, seed, dt, started_at) VALUES (?, ?, ?, ?, ?)`,
		id.String(), run.Level, int64(run.Seed), run.DT, r.now().UnixMilli())
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert run: %w", err)
	}
	r.run = id
	r.ticks = 0
	ctxlog.FromContext(ctx).Info("Run recording started.", "run", id, "level", run.Level)
	return id, nil
}

// Observe stores the snapshot's roster events.
func (r *Recorder) Observe(ctx context.Context, snap *engine.Snapshot) error {
	if r.run == uuid.Nil {
		return ErrNoRun
	}
	r.ticks = snap.Tick
	if len(snap.Events) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for _, e := range snap.Events {
		row := eventRow(r.run, snap.Tick, e)
		_, err := tx.NamedExecContext(ctx,
			`INSERT INTO agent_events (run_id, tick, at, agent, kind, reason, x, y)
			 VALUES (:run_id, :tick, :at, :agent, :kind, :reason, :x, :y)`, row)
		if err != nil {
			return fmt.Errorf("insert event: %w", err)
		}
	}
	return tx.Commit()
}

// FinishRun stamps the current run with its length.
func (r *Recorder) FinishRun(ctx context.Context, elapsed float64) error {
	if r.run == uuid.Nil {
		return ErrNoRun
	}
	_, err := r.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ?, ticks = ?, elapsed = ? WHERE id = ?`,
		r.now().UnixMilli(), r.ticks, elapsed, r.run.String())
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	ctxlog.FromContext(ctx).Info("Run recording finished.", "run", r.run, "ticks", r.ticks)
	return nil
}

// Runs lists stored runs, oldest first.
func (r *Recorder) Runs(ctx context.Context) ([]RunRow, error) {
	var rows []RunRow
	err := r.db.SelectContext(ctx, &rows, `SELECT * FROM runs ORDER BY started_at, rowid`)
	return rows, err
}

// Events lists a run's events in the order they happened.
func (r *Recorder) Events(ctx context.Context, run uuid.UUID) ([]EventRow, error) {
	var rows []EventRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT run_id, tick, at, agent, kind, reason, x, y FROM agent_events WHERE run_id = ? ORDER BY id`,
		run.String())
	return rows, err
}

func eventRow(run uuid.UUID, tick int, e roster.Event) EventRow {
	row := EventRow{
		RunID: run.String(),
		Tick:  tick,
		At:    e.At,
		Agent: e.Agent.String(),
		Kind:  e.Kind.String(),
		X:     e.Position.X,
		Y:     e.Position.Y,
	}
	if e.Kind == roster.Despawned {
		row.Reason = e.Reason.String()
	}
	return row
}

var _ engine.Observer = (*Recorder)(nil)
