// Package persistence records simulation runs.
//
// Recorder keeps a SQLite database of runs and the spawn and despawn events
// of each. TraceWriter streams every snapshot as zstd-compressed JSON lines
// for replay and offline analysis. Both implement engine.Observer.
package persistence
