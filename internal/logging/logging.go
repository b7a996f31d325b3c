// Package logging holds the logger shared by the rendering packages.
package logging

import (
	"io"
	"log/slog"
	"sync/atomic"
)

// loggerPtr stores the active logger. Nil means slog.Default().
var loggerPtr atomic.Pointer[slog.Logger]

// SetLogger configures the logger used by every internal package.
// Pass nil to fall back to slog.Default().
func SetLogger(l *slog.Logger) {
	loggerPtr.Store(l)
}

// Logger returns the current logger.
func Logger() *slog.Logger {
	if l := loggerPtr.Load(); l != nil {
		return l
	}
	return slog.Default()
}

// New builds the stderr logger used by the entry points. Text output is used
// for terminals and JSON otherwise.
func New(w io.Writer, level slog.Level, terminal bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if terminal {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// ParseLevel maps a config level name onto a slog level. Unknown names map to info.
func ParseLevel(name string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
