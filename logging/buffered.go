package logging

import (
	"bytes"
	"log/slog"
	"sync"
)

// BufferedHandler is a text slog.Handler that keeps its output in memory so
// tests can inspect what a run logged.
//
//	h := logging.NewBufferedHandler(nil)
//	logging.SetLogger(slog.New(h))
//	// ... rebuild ...
//	if h.Contains("xref_object=3") { ... }
type BufferedHandler struct {
	slog.Handler
	buf *lockedBuffer
}

// NewBufferedHandler creates a handler with an empty buffer. With nil opts
// every level down to Debug is captured.
func NewBufferedHandler(opts *slog.HandlerOptions) *BufferedHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{Level: slog.LevelDebug}
	}
	buf := &lockedBuffer{}
	return &BufferedHandler{Handler: slog.NewTextHandler(buf, opts), buf: buf}
}

// WithAttrs returns a handler writing to the same buffer
func (h *BufferedHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &BufferedHandler{Handler: h.Handler.WithAttrs(attrs), buf: h.buf}
}

// WithGroup returns a handler writing to the same buffer
func (h *BufferedHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &BufferedHandler{Handler: h.Handler.WithGroup(name), buf: h.buf}
}

// String returns everything captured so far
func (h *BufferedHandler) String() string {
	h.buf.mu.Lock()
	defer h.buf.mu.Unlock()
	return h.buf.b.String()
}

// Contains reports whether the captured output contains s
func (h *BufferedHandler) Contains(s string) bool {
	h.buf.mu.Lock()
	defer h.buf.mu.Unlock()
	return bytes.Contains(h.buf.b.Bytes(), []byte(s))
}

// Len returns the number of captured bytes
func (h *BufferedHandler) Len() int {
	h.buf.mu.Lock()
	defer h.buf.mu.Unlock()
	return h.buf.b.Len()
}

// Reset clears the captured output
func (h *BufferedHandler) Reset() {
	h.buf.mu.Lock()
	defer h.buf.mu.Unlock()
	h.buf.b.Reset()
}

type lockedBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (l *lockedBuffer) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.b.Write(p)
}
