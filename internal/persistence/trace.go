package persistence

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/specialistvlad/jumpgridgo/internal/engine"
)

// TraceWriter writes snapshots as zstd-compressed JSON lines.
type TraceWriter struct {
	dst   io.Closer
	enc   *zstd.Encoder
	w     *bufio.Writer
	every int
}

// NewTraceWriter compresses into w, keeping one snapshot in every. every < 1
// keeps all of them. Closing the writer closes w when it is an io.Closer.
func NewTraceWriter(w io.Writer, every int) (*TraceWriter, error) {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, err
	}
	t := &TraceWriter{enc: enc, w: bufio.NewWriterSize(enc, 128*1024), every: max(every, 1)}
	if c, ok := w.(io.Closer); ok {
		t.dst = c
	}
	return t, nil
}

// CreateTrace creates the file at path and writes the trace into it.
func CreateTrace(path string, every int) (*TraceWriter, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create trace: %w", err)
	}
	t, err := NewTraceWriter(f, every)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return t, nil
}

// Observe writes snap when its tick is kept.
func (t *TraceWriter) Observe(_ context.Context, snap *engine.Snapshot) error {
	if snap.Tick%t.every != 0 {
		return nil
	}
	b, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	if _, err := t.w.Write(b); err != nil {
		return err
	}
	return t.w.WriteByte('\n')
}

// Close flushes the trace and closes the underlying writer.
func (t *TraceWriter) Close() error {
	err := t.w.Flush()
	err = errors.Join(err, t.enc.Close())
	if t.dst != nil {
		err = errors.Join(err, t.dst.Close())
	}
	return err
}

// ReadTrace decodes every snapshot in a trace.
func ReadTrace(r io.Reader) ([]engine.Snapshot, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	var out []engine.Snapshot
	jd := json.NewDecoder(dec)
	for {
		var s engine.Snapshot
		if err := jd.Decode(&s); err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return out, fmt.Errorf("decode snapshot %d: %w", len(out), err)
		}
		out = append(out, s)
	}
}

var _ engine.Observer = (*TraceWriter)(nil)
