package logging_test

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/tsawler/xrefix/logging"
)

func TestSetLogger(t *testing.T) {
	old := logging.Logger()
	defer logging.SetLogger(old)

	h := logging.NewBufferedHandler(nil)
	logging.SetLogger(slog.New(h))

	logging.Logger().Debug("scanned", slog.Int("objects", 3))

	if !h.Contains("msg=scanned") || !h.Contains("objects=3") {
		t.Errorf("expected record in buffer, got %q", h.String())
	}
}

func TestSetLoggerNil(t *testing.T) {
	old := logging.Logger()
	defer logging.SetLogger(old)

	logging.SetLogger(nil)
	log := logging.Logger()
	if log == nil {
		t.Fatal("expected non-nil logger after SetLogger(nil)")
	}
	if log.Enabled(context.Background(), slog.LevelError) {
		t.Error("expected discard logger to drop errors")
	}
}

func TestLoggerReturnsSameInstance(t *testing.T) {
	old := logging.Logger()
	defer logging.SetLogger(old)

	logging.SetLogger(slog.New(logging.NewBufferedHandler(nil)))
	if logging.Logger() != logging.Logger() {
		t.Error("expected Logger() to return the installed instance")
	}
}

func TestLoggerConcurrentAccess(t *testing.T) {
	old := logging.Logger()
	defer logging.SetLogger(old)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			if n%2 == 0 {
				logging.SetLogger(slog.New(logging.NewBufferedHandler(nil)))
				return
			}
			if log := logging.Logger(); log == nil {
				t.Error("Logger() returned nil during concurrent access")
			} else {
				log.Debug("concurrent")
			}
		}(i)
	}
	wg.Wait()
}

func TestBufferedHandlerLevels(t *testing.T) {
	h := logging.NewBufferedHandler(&slog.HandlerOptions{Level: slog.LevelWarn})
	log := slog.New(h)

	log.Debug("hidden")
	log.Info("hidden too")
	log.Warn("compressed entry overwritten", slog.Int("object", 4))

	if h.Contains("hidden") {
		t.Errorf("records below Warn should be dropped: %q", h.String())
	}
	if !h.Contains("level=WARN") || !h.Contains("object=4") {
		t.Errorf("expected warning record, got %q", h.String())
	}
	if lines := strings.Count(h.String(), "\n"); lines != 1 {
		t.Errorf("expected 1 line, got %d", lines)
	}
}

func TestBufferedHandlerSharedBuffer(t *testing.T) {
	h := logging.NewBufferedHandler(nil)

	slog.New(h.WithAttrs([]slog.Attr{slog.String("stage", "merge")})).Info("a")
	slog.New(h.WithGroup("xref")).Info("b", slog.Int("size", 6))

	if !h.Contains("stage=merge") {
		t.Errorf("expected attrs from derived handler, got %q", h.String())
	}
	if !h.Contains("xref.size=6") {
		t.Errorf("expected grouped attr, got %q", h.String())
	}
	if h.WithGroup("") != slog.Handler(h) {
		t.Error("expected WithGroup(\"\") to return the same handler")
	}
}

func TestBufferedHandlerReset(t *testing.T) {
	h := logging.NewBufferedHandler(nil)
	slog.New(h).Info("before reset")
	if h.Len() == 0 {
		t.Fatal("expected output before reset")
	}

	h.Reset()
	if h.Len() != 0 || h.String() != "" {
		t.Errorf("expected empty buffer after reset, got %q", h.String())
	}
}
