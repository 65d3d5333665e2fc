// Package logger provides a structured application logger backed by zerolog.
package logger

import (
	"context"
	"io"

	"github.com/rs/zerolog"
)

// Level is the minimum severity the logger emits.
type Level = zerolog.Level

// Supported log levels.
const (
	LevelDebug = zerolog.DebugLevel
	LevelInfo  = zerolog.InfoLevel
	LevelWarn  = zerolog.WarnLevel
	LevelError = zerolog.ErrorLevel
)

// ParseLevel converts a level name such as "debug" into a Level.
// Unknown names fall back to info.
func ParseLevel(s string) Level {
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || lvl == zerolog.NoLevel {
		return LevelInfo
	}
	return lvl
}

// TraceIDFn extracts a trace id from the context for log correlation.
type TraceIDFn func(ctx context.Context) string

// Logger writes JSON records tagged with the service name and, when
// available, the trace id of the request being served.
type Logger struct {
	log       zerolog.Logger
	traceIDFn TraceIDFn
}

// New constructs a Logger writing to w at or above the given level.
// traceIDFn may be nil.
func New(w io.Writer, level Level, service string, traceIDFn TraceIDFn) *Logger {
	log := zerolog.New(w).Level(level).With().Timestamp().Str("service", service).Logger()
	return &Logger{log: log, traceIDFn: traceIDFn}
}

// Debug logs at debug level with alternating key/value args.
func (l *Logger) Debug(ctx context.Context, msg string, args ...any) {
	l.write(ctx, l.log.Debug(), msg, args)
}

// Info logs at info level with alternating key/value args.
func (l *Logger) Info(ctx context.Context, msg string, args ...any) {
	l.write(ctx, l.log.Info(), msg, args)
}

// Warn logs at warn level with alternating key/value args.
func (l *Logger) Warn(ctx context.Context, msg string, args ...any) {
	l.write(ctx, l.log.Warn(), msg, args)
}

// Error logs at error level with alternating key/value args.
func (l *Logger) Error(ctx context.Context, msg string, args ...any) {
	l.write(ctx, l.log.Error(), msg, args)
}

func (l *Logger) write(ctx context.Context, e *zerolog.Event, msg string, args []any) {
	if l.traceIDFn != nil {
		if id := l.traceIDFn(ctx); id != "" {
			e = e.Str("trace_id", id)
		}
	}
	e.Fields(args).Msg(msg)
}
