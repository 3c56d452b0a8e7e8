// Package logging adapts the teacher's small database.Logger interface and
// LOG_LEVEL-driven slog setup into the ambient logging used across this
// repository's CLI and dispatcher.
package logging

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Logger is threaded through the dispatcher to report each line it drops
// for a skip_rows table, independent of slog's structured fields.
type Logger interface {
	Print(v ...any)
	Printf(format string, v ...any)
	Println(v ...any)
}

// StderrLogger writes every call directly to stderr, so trace output never
// shares stdout with the sanitized dump it is reporting on.
type StderrLogger struct{}

func (StderrLogger) Print(v ...any)                 { fmt.Fprint(os.Stderr, v...) }
func (StderrLogger) Printf(format string, v ...any) { fmt.Fprintf(os.Stderr, format, v...) }
func (StderrLogger) Println(v ...any)               { fmt.Fprintln(os.Stderr, v...) }

// NullLogger discards everything; used when --verbose is not set.
type NullLogger struct{}

func (NullLogger) Print(v ...any)                 {}
func (NullLogger) Printf(format string, v ...any) {}
func (NullLogger) Println(v ...any)               {}

// InitSlog configures the default slog logger from the LOG_LEVEL
// environment variable. Supported levels: debug, info, warn, error.
func InitSlog() {
	logLevel, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		return
	}

	var level slog.Level
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
