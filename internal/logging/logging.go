// Package logging builds the structured loggers used by the CLI and the MCP
// server. Output always goes to a caller-supplied writer (stderr in practice,
// since stdout carries either the palette report or the MCP protocol).
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// LevelEnv names the environment variable that selects the log level.
const LevelEnv = "RECOLOR_LOG_LEVEL"

// legacyLevelEnv is honored when LevelEnv is unset.
const legacyLevelEnv = "IMAGE_MCP_LOG_LEVEL"

// ParseLevel maps "debug", "info", "warn" and "error" (case-insensitive) to
// a slog level. The empty string means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// New returns a tint-backed logger writing to w at the given level. Colors
// are disabled unless w is a terminal.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		NoColor:    !isTerminal(w),
	}))
}

// FromEnv builds a stderr logger using the level named by RECOLOR_LOG_LEVEL
// (or IMAGE_MCP_LOG_LEVEL). An unrecognized value falls back to info and is
// reported through the returned logger.
func FromEnv() *slog.Logger {
	raw, ok := os.LookupEnv(LevelEnv)
	if !ok {
		raw = os.Getenv(legacyLevelEnv)
	}
	level, err := ParseLevel(raw)
	logger := New(os.Stderr, level)
	if err != nil {
		logger.Warn("ignoring log level", "env", LevelEnv, "err", err)
	}
	return logger
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(1000)}))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
