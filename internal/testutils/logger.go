package testutils

import (
	"context"
	"log/slog"
	"sync"
)

// LogRecord is a simplified view of one captured log record.
type LogRecord struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// RecordingHandler is a memory-backed slog.Handler for tests.
type RecordingHandler struct {
	mu      sync.Mutex
	attrs   []slog.Attr
	records []LogRecord
}

// NewRecordingLogger returns a logger wired to a RecordingHandler, plus the
// handler for inspecting what was logged.
func NewRecordingLogger() (*slog.Logger, *RecordingHandler) {
	h := &RecordingHandler{}
	return slog.New(h), h
}

// Enabled satisfies slog.Handler; every level is captured.
func (h *RecordingHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return true
}

// Handle satisfies slog.Handler.
func (h *RecordingHandler) Handle(_ context.Context, r slog.Record) error {
	rec := LogRecord{
		Level:   r.Level,
		Message: r.Message,
		Attrs:   make(map[string]any),
	}
	for _, attr := range h.attrs {
		rec.Attrs[attr.Key] = attr.Value.Any()
	}
	r.Attrs(func(attr slog.Attr) bool {
		rec.Attrs[attr.Key] = attr.Value.Any()
		return true
	})

	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, rec)
	return nil
}

// WithAttrs satisfies slog.Handler. The derived handler shares the record
// buffer so captures stay visible on the root.
func (h *RecordingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &derivedHandler{root: h, attrs: append(append([]slog.Attr{}, h.attrs...), attrs...)}
}

// WithGroup satisfies slog.Handler; groups are flattened for simplicity.
func (h *RecordingHandler) WithGroup(_ string) slog.Handler {
	return h
}

// Records returns a copy of everything captured so far.
func (h *RecordingHandler) Records() []LogRecord {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]LogRecord, len(h.records))
	copy(out, h.records)
	return out
}

// Messages returns just the captured messages, in order.
func (h *RecordingHandler) Messages() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.records))
	for i, rec := range h.records {
		out[i] = rec.Message
	}
	return out
}

// derivedHandler carries per-logger attrs while writing into the root
// handler's buffer.
type derivedHandler struct {
	root  *RecordingHandler
	attrs []slog.Attr
}

func (d *derivedHandler) Enabled(_ context.Context, _ slog.Level) bool { return true }

func (d *derivedHandler) Handle(_ context.Context, r slog.Record) error {
	rec := LogRecord{
		Level:   r.Level,
		Message: r.Message,
		Attrs:   make(map[string]any),
	}
	for _, attr := range d.attrs {
		rec.Attrs[attr.Key] = attr.Value.Any()
	}
	r.Attrs(func(attr slog.Attr) bool {
		rec.Attrs[attr.Key] = attr.Value.Any()
		return true
	})

	d.root.mu.Lock()
	defer d.root.mu.Unlock()
	d.root.records = append(d.root.records, rec)
	return nil
}

func (d *derivedHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &derivedHandler{root: d.root, attrs: append(append([]slog.Attr{}, d.attrs...), attrs...)}
}

func (d *derivedHandler) WithGroup(_ string) slog.Handler { return d }
