package logging

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// DailyFileHandler writes log records to a per-day file under logDir
// while mirroring every record to a stdout handler. Rotation happens
// lazily on the first record of a new day.
type DailyFileHandler struct {
	mu             *sync.Mutex
	file           *os.File
	fileName       string
	logDir         string
	defaultHandler slog.Handler
}

func NewDailyFileHandler(logDir string, opts *slog.HandlerOptions) (*DailyFileHandler, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	h := &DailyFileHandler{
		mu:             &sync.Mutex{},
		logDir:         logDir,
		defaultHandler: slog.NewTextHandler(os.Stdout, opts),
	}

	if err := h.rotateIfNeeded(); err != nil {
		return nil, err
	}

	return h, nil
}

func (h *DailyFileHandler) rotateIfNeeded() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	fileName := fmt.Sprintf("analyzer-%s.log", time.Now().Format("2006-01-02"))
	if fileName == h.fileName {
		return nil
	}

	if h.file != nil {
		h.file.Close()
	}

	f, err := os.OpenFile(filepath.Join(h.logDir, fileName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	h.file = f
	h.fileName = fileName
	return nil
}

func (h *DailyFileHandler) Handle(ctx context.Context, r slog.Record) error {
	if err := h.rotateIfNeeded(); err != nil {
		// Rotation failing should not lose the record; stdout still gets it.
		return h.defaultHandler.Handle(ctx, r)
	}

	var attrs string
	r.Attrs(func(a slog.Attr) bool {
		attrs += fmt.Sprintf(" %s=%v", a.Key, a.Value)
		return true
	})

	logLine := fmt.Sprintf("[%s] %-5s %s%s\n",
		r.Time.Format("2006/01/02 15:04:05.000"), r.Level.String(), r.Message, attrs)

	h.mu.Lock()
	_, err := h.file.WriteString(logLine)
	h.mu.Unlock()

	if err2 := h.defaultHandler.Handle(ctx, r); err2 != nil && err == nil {
		err = err2
	}

	return err
}

func (h *DailyFileHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.defaultHandler = h.defaultHandler.WithAttrs(attrs)
	return &clone
}

func (h *DailyFileHandler) WithGroup(name string) slog.Handler {
	clone := *h
	clone.defaultHandler = h.defaultHandler.WithGroup(name)
	return &clone
}

func (h *DailyFileHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.defaultHandler.Enabled(ctx, level)
}
