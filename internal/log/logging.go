// Package log provides helpers for creating a configured slog.Logger.
//
// Without a log file, records below error go to stdout and errors go to
// stderr. With a log file, the file receives everything at the configured
// level and stderr only keeps warnings and errors.
package log

import (
	"context"
	"io"
	"log/slog"
	"math"
	"os"
)

// LevelTrace is below Debug and used for per-row output.
const LevelTrace slog.Level = -8

var levels = map[string]slog.Level{
	"trace": LevelTrace,
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// ParseLevel maps a --log.level value to a slog level. Unknown names mean info.
func ParseLevel(s string) slog.Level {
	if l, ok := levels[s]; ok {
		return l
	}
	return slog.LevelInfo
}

// replaceLevel prints LevelTrace as TRACE instead of DEBUG-4.
func replaceLevel(_ []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey {
		return a
	}
	if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == LevelTrace {
		a.Value = slog.StringValue("TRACE")
	}
	return a
}

// MultiHandler fans out records to multiple handlers.
type MultiHandler struct{ hs []slog.Handler }

func NewMultiHandler(hs ...slog.Handler) MultiHandler {
	return MultiHandler{hs: hs}
}

func (m MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.hs {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m MultiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range m.hs {
		if h.Enabled(ctx, r.Level) {
			_ = h.Handle(ctx, r.Clone())
		}
	}
	return nil
}

func (m MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return m.each(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

func (m MultiHandler) WithGroup(name string) slog.Handler {
	return m.each(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

func (m MultiHandler) each(fn func(slog.Handler) slog.Handler) MultiHandler {
	out := make([]slog.Handler, len(m.hs))
	for i, h := range m.hs {
		out[i] = fn(h)
	}
	return MultiHandler{hs: out}
}

// LevelRange passes records with Min <= level < Max to H.
type LevelRange struct {
	Min, Max slog.Level
	H        slog.Handler
}

func (f LevelRange) in(l slog.Level) bool { return l >= f.Min && l < f.Max }

func (f LevelRange) Enabled(ctx context.Context, level slog.Level) bool {
	return f.in(level) && f.H.Enabled(ctx, level)
}

func (f LevelRange) Handle(ctx context.Context, r slog.Record) error {
	if !f.in(r.Level) {
		return nil
	}
	return f.H.Handle(ctx, r)
}

func (f LevelRange) WithAttrs(attrs []slog.Attr) slog.Handler {
	return LevelRange{Min: f.Min, Max: f.Max, H: f.H.WithAttrs(attrs)}
}

func (f LevelRange) WithGroup(name string) slog.Handler {
	return LevelRange{Min: f.Min, Max: f.Max, H: f.H.WithGroup(name)}
}

func newHandler(w io.Writer, format string, level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{Level: level, ReplaceAttr: replaceLevel}
	if format == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// SetupLogger builds a slog.Logger with console and optional file handlers.
// format is "text" or "json". The returned closers must be closed on exit.
func SetupLogger(logLevel, logFile, format string) (*slog.Logger, []io.Closer, error) {
	level := ParseLevel(logLevel)

	if logFile == "" {
		return slog.New(NewMultiHandler(
			LevelRange{Min: math.MinInt, Max: slog.LevelError, H: newHandler(os.Stdout, format, level)},
			LevelRange{Min: slog.LevelError, Max: math.MaxInt, H: newHandler(os.Stderr, format, slog.LevelError)},
		)), nil, nil
	}

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	logger := slog.New(NewMultiHandler(
		newHandler(os.Stderr, format, max(level, slog.LevelWarn)),
		newHandler(f, format, level),
	))
	return logger, []io.Closer{f}, nil
}

// Discard returns a logger that drops everything, for tests and library use.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
