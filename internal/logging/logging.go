// Package logging wraps log/slog with the level and handler choices used by
// every gravwell host.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// LevelEnv names the environment variable that selects the log level.
const LevelEnv = "GRAVWELL_LOG_LEVEL"

type Logger struct {
	*slog.Logger
}

// New returns a text logger writing to w at the level taken from
// GRAVWELL_LOG_LEVEL (INFO when unset).
func New(w io.Writer) *Logger {
	return NewWithLevel(w, LevelFromEnv())
}

func NewWithLevel(w io.Writer, level slog.Level) *Logger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return &Logger{slog.New(h)}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return NewWithLevel(io.Discard, slog.LevelError+1)
}

// OpenFile returns a logger appending to path, for hosts that own the
// terminal. The returned closer must be closed by the caller.
func OpenFile(path string) (*Logger, io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, err
	}
	return New(f), f, nil
}

func (l *Logger) With(args ...any) *Logger {
	return &Logger{l.Logger.With(args...)}
}

// Error logs msg with err attached under the "error" key.
func (l *Logger) Error(msg string, err error, args ...any) {
	if err != nil {
		args = append(args, "error", err.Error())
	}
	l.Log(context.Background(), slog.LevelError, msg, args...)
}

func LevelFromEnv() slog.Level {
	return ParseLevel(os.Getenv(LevelEnv))
}

func ParseLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
