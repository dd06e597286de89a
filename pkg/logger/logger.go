// Package logger builds the *slog.Logger shared by the server, the CLIs and
// the background engine.
package logger

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
)

// New returns a logger writing to stderr. See NewWithWriter.
func New(level, format string) *slog.Logger {
	return NewWithWriter(os.Stderr, level, format)
}

// NewWithWriter returns a logger writing to w. Format "json" selects the
// JSON handler and anything else gives logfmt-style text.
func NewWithWriter(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// ForSource scopes a logger to one deal source.
func ForSource(l *slog.Logger, source string) *slog.Logger {
	if l == nil {
		l = slog.Default()
	}
	return l.With("source", source)
}

// ParseLevel maps debug, info, warn (or warning) and error to a slog level,
// ignoring case. Anything else is info.
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

// Tee returns a logger that hands every record to l's handler and to each
// of extra. Each handler keeps its own level.
func Tee(l *slog.Logger, extra ...slog.Handler) *slog.Logger {
	hs := make(tee, 0, len(extra)+1)
	hs = append(hs, l.Handler())
	for _, h := range extra {
		if h != nil {
			hs = append(hs, h)
		}
	}
	return slog.New(hs)
}

type tee []slog.Handler

func (t tee) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range t {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (t tee) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range t {
		if h.Enabled(ctx, r.Level) {
			errs = append(errs, h.Handle(ctx, r.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (t tee) WithAttrs(attrs []slog.Attr) slog.Handler {
	return t.each(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

func (t tee) WithGroup(name string) slog.Handler {
	return t.each(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

func (t tee) each(f func(slog.Handler) slog.Handler) tee {
	out := make(tee, len(t))
	for i, h := range t {
		out[i] = f(h)
	}
	return out
}
