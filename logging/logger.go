// Package logging holds the *slog.Logger used by xrefix
package logging

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// logger is the package-level logger; nil means discard
var logger atomic.Pointer[slog.Logger]

func discard() *slog.Logger {
	return slog.New(discardHandler{})
}

// discardHandler drops every record
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }

// SetLogger installs the logger used by the rebuild pipeline. Pass nil to
// discard all output again.
//
// SetLogger is safe for concurrent use.
//
// Example enabling debug output to stderr:
//
//	logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
func SetLogger(sl *slog.Logger) {
	if sl == nil {
		sl = discard()
	}
	logger.Store(sl)
}

// Logger returns the package-level logger, a discarding one if none was set.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	l := logger.Load()
	if l == nil {
		l = discard()
		logger.CompareAndSwap(nil, l)
		return logger.Load()
	}
	return l
}
