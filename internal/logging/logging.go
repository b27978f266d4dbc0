// Package logging builds the structured logger used by the display.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
	slogmulti "github.com/samber/slog-multi"
	"github.com/samber/oops"
)

// Options selects the log sinks
type Options struct {
	// File receives JSON records; empty disables the file sink
	File  string
	Level string
	// Console receives text records, used when no TUI owns the terminal
	Console io.Writer
}

// ParseLevel maps debug, info, warn and error to a slog level, defaulting to info
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New returns a logger fanning out to every configured sink, and a closer
// for the log file. Without any sink records are discarded.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	handlerOpts := &slog.HandlerOptions{Level: ParseLevel(opts.Level)}
	var handlers []slog.Handler
	var closer io.Closer = nopCloser{}

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, nil, oops.With("log_file", opts.File).Wrap(err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, oops.With("log_file", opts.File).Wrap(err)
		}
		handlers = append(handlers, slog.NewJSONHandler(f, handlerOpts))
		closer = f
	}
	if opts.Console != nil {
		handlers = append(handlers, slog.NewTextHandler(opts.Console, handlerOpts))
	}

	handlers = lo.Ternary(len(handlers) == 0, []slog.Handler{slog.NewTextHandler(io.Discard, nil)}, handlers)
	return slog.New(slogmulti.Fanout(handlers...)), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
