// Package logger provides structured logging for the vitals runtime.
// Every recovery run should be traceable through this.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger provides structured logging with context.
type Logger struct {
	z zerolog.Logger
}

// NewLogger creates a console logger writing to stdout.
func NewLogger() *Logger {
	return NewConsole(os.Stdout)
}

// NewConsole creates a human-readable logger writing to w.
func NewConsole(w io.Writer) *Logger {
	return New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.DateTime})
}

// New creates a logger writing to w. A plain writer receives JSON lines.
func New(w io.Writer) *Logger {
	return &Logger{z: zerolog.New(w).With().Timestamp().Logger()}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{z: zerolog.Nop()}
}

// SetLevel parses a zerolog level name ("debug", "info", ...) and applies it.
// Unknown names leave the level unchanged and return the parse error.
func (l *Logger) SetLevel(level string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return err
	}
	l.z = l.z.Level(lvl)
	return nil
}

// With returns a child logger carrying key=value on every entry.
func (l *Logger) With(key, value string) *Logger {
	return &Logger{z: l.z.With().Str(key, value).Logger()}
}

// Zerolog exposes the underlying logger for call sites that want typed fields.
func (l *Logger) Zerolog() *zerolog.Logger {
	return &l.z
}

// Debug logs verbose diagnostics.
func (l *Logger) Debug(msg string) {
	l.z.Debug().Msg(msg)
}

// Info logs informational messages.
func (l *Logger) Info(msg string) {
	l.z.Info().Msg(msg)
}

// Warn logs warning messages.
func (l *Logger) Warn(msg string) {
	l.z.Warn().Msg(msg)
}

// Error logs error messages.
func (l *Logger) Error(msg string) {
	l.z.Error().Msg(msg)
}

// Event logs a specific game event against the actor it concerns.
func (l *Logger) Event(eventType string, actorID string, details string) {
	l.z.Info().Str("event", eventType).Str("actor", actorID).Msg(details)
}
