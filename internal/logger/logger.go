// Package logger provides structured logging for tablecsv.
// Logs are written to stderr so that stdout carries only converted output.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/jmylchreest/tablecsv/pkg/table"
)

var (
	defaultLogger = newLogger(Options{})
	mu            sync.RWMutex
)

// Options configures the logger.
type Options struct {
	Debug  bool         // Enable debug level logging
	Quiet  bool         // Only show errors
	JSON   bool         // Output as JSON
	Output io.Writer    // Output destination (default: stderr)
	Logger *slog.Logger // Custom logger (overrides all other options)
}

// Init replaces the package logger according to opts.
func Init(opts Options) {
	l := newLogger(opts)
	mu.Lock()
	defaultLogger = l
	mu.Unlock()
}

func newLogger(opts Options) *slog.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}

	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}
	if opts.Quiet {
		level = slog.LevelError
	}

	output := opts.Output
	if output == nil {
		output = os.Stderr
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	if opts.JSON {
		return slog.New(slog.NewJSONHandler(output, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(output, handlerOpts))
}

func current() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return defaultLogger
}

// Enabled reports whether records at level would be written.
func Enabled(level slog.Level) bool {
	return current().Enabled(context.Background(), level)
}

// Debug logs a debug message.
func Debug(msg string, args ...any) { current().Debug(msg, args...) }

// Info logs an info message.
func Info(msg string, args ...any) { current().Info(msg, args...) }

// Warn logs a warning message.
func Warn(msg string, args ...any) { current().Warn(msg, args...) }

// Error logs an error message.
func Error(msg string, args ...any) { current().Error(msg, args...) }

// DebugContext logs a debug message with context.
func DebugContext(ctx context.Context, msg string, args ...any) {
	current().DebugContext(ctx, msg, args...)
}

// InfoContext logs an info message with context.
func InfoContext(ctx context.Context, msg string, args ...any) {
	current().InfoContext(ctx, msg, args...)
}

// ErrorContext logs an error message with context.
func ErrorContext(ctx context.Context, msg string, args ...any) {
	current().ErrorContext(ctx, msg, args...)
}

// Tracer returns a table.Tracer that logs every scan event at debug level.
// Cell text is included so malformed input can be located in the output.
func Tracer() table.Tracer {
	return table.TracerFunc(func(e table.Event) {
		if !Enabled(slog.LevelDebug) {
			return
		}
		attrs := []any{"event", string(e.Kind), "offset", e.Offset}
		if e.Table > 0 {
			attrs = append(attrs, "table", e.Table)
		}
		if e.Row > 0 {
			attrs = append(attrs, "row", e.Row)
		}
		if e.Column > 0 {
			attrs = append(attrs, "column", e.Column)
		}
		if e.Tag != "" {
			attrs = append(attrs, "tag", e.Tag)
		}
		if e.Kind == table.EventCell {
			attrs = append(attrs, "text", e.Text)
		}
		Debug("table scan", attrs...)
	})
}
