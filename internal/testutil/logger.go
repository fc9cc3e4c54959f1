// Package testutil provides logging helpers for tests.
package testutil

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"testing"
)

// NewTestLogger returns a debug logger that writes to t.Log. Lines logged
// after the test finishes, e.g. from a timer or a reconnect loop, are dropped.
func NewTestLogger(t testing.TB) *slog.Logger {
	t.Helper()
	w := &testWriter{t: t}
	t.Cleanup(w.stop)
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

type testWriter struct {
	mu   sync.Mutex
	t    testing.TB
	done bool
}

func (w *testWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.done {
		w.t.Log(string(p))
	}
	return len(p), nil
}

func (w *testWriter) stop() {
	w.mu.Lock()
	w.done = true
	w.mu.Unlock()
}

// Record is one captured log line.
type Record struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// Recorder is a slog.Handler that keeps every record for assertions.
// Handlers derived with WithAttrs share the same records.
type Recorder struct {
	log   *recordLog
	attrs []slog.Attr
}

type recordLog struct {
	mu      sync.Mutex
	records []Record
}

// NewRecorder returns a logger and the Recorder behind it.
func NewRecorder() (*slog.Logger, *Recorder) {
	r := &Recorder{log: &recordLog{}}
	return slog.New(r), r
}

// Enabled implements slog.Handler.
func (r *Recorder) Enabled(context.Context, slog.Level) bool { return true }

// Handle implements slog.Handler.
func (r *Recorder) Handle(_ context.Context, rec slog.Record) error {
	attrs := make(map[string]any, len(r.attrs)+rec.NumAttrs())
	for _, a := range r.attrs {
		attrs[a.Key] = a.Value.Any()
	}
	rec.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Any()
		return true
	})

	r.log.mu.Lock()
	defer r.log.mu.Unlock()
	r.log.records = append(r.log.records, Record{Level: rec.Level, Message: rec.Message, Attrs: attrs})
	return nil
}

// WithAttrs implements slog.Handler. Groups are not tracked.
func (r *Recorder) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Recorder{log: r.log, attrs: append(slices.Clip(r.attrs), attrs...)}
}

// WithGroup implements slog.Handler.
func (r *Recorder) WithGroup(string) slog.Handler { return r }

// Records returns the records captured so far.
func (r *Recorder) Records() []Record {
	r.log.mu.Lock()
	defer r.log.mu.Unlock()
	return slices.Clone(r.log.records)
}

// Find returns the first record with msg.
func (r *Recorder) Find(msg string) (Record, bool) {
	for _, rec := range r.Records() {
		if rec.Message == msg {
			return rec, true
		}
	}
	return Record{}, false
}
