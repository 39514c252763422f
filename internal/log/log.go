// Package log provides leveled, category-tagged logging for the TUI.
// Output goes to a file because stdout/stderr belong to the terminal UI.
// Logging is disabled until Init is called, so library code can log
// unconditionally without polluting test output.
package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

// Category tags a log line with the subsystem that produced it.
type Category string

const (
	CatAPI     Category = "api"
	CatConfig  Category = "config"
	CatContest Category = "contest"
	CatDraft   Category = "draft"
	CatSession Category = "session"
	CatSubmit  Category = "submit"
	CatUI      Category = "ui"
)

// Level controls the minimum severity that gets written.
type Level int8

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps a config string to a Level, defaulting to info.
func ParseLevel(s string) Level {
	switch s {
	case "debug":
		return LevelDebug
	case "warn":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

var (
	mu     sync.RWMutex
	logger = zerolog.New(io.Discard)
	closer io.Closer
)

// Init opens the log file at path and routes all subsequent log calls to it.
// Calling Init again closes the previous file.
func Init(path string, level Level) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if closer != nil {
		_ = closer.Close()
	}
	closer = f
	logger = zerolog.New(f).Level(zerologLevel(level)).With().Timestamp().Logger()
	return nil
}

// Close flushes and closes the log file. Safe to call when Init never ran.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if closer != nil {
		_ = closer.Close()
		closer = nil
	}
	logger = zerolog.New(io.Discard)
}

// Debug logs a debug-level message under the given category.
func Debug(cat Category, format string, args ...any) {
	write(zerolog.DebugLevel, cat, format, args...)
}

// Info logs an info-level message under the given category.
func Info(cat Category, format string, args ...any) {
	write(zerolog.InfoLevel, cat, format, args...)
}

// Warn logs a warning under the given category.
func Warn(cat Category, format string, args ...any) {
	write(zerolog.WarnLevel, cat, format, args...)
}

// Error logs an error under the given category.
func Error(cat Category, format string, args ...any) {
	write(zerolog.ErrorLevel, cat, format, args...)
}

func write(level zerolog.Level, cat Category, format string, args ...any) {
	mu.RLock()
	l := logger
	mu.RUnlock()
	l.WithLevel(level).Str("category", string(cat)).Msgf(format, args...)
}

func zerologLevel(l Level) zerolog.Level {
	switch l {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
