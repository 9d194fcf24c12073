package logging

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// EnvTracing names the environment variable that turns diagnostics on.
const EnvTracing = "ENABLE_TRACING"

const (
	maxSizeMB  = 10
	maxBackups = 5
)

// Enabled reports whether value switches tracing on ("1" or "true").
func Enabled(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true":
		return true
	default:
		return false
	}
}

// EnabledFromEnv reads EnvTracing from the process environment.
func EnabledFromEnv() bool {
	return Enabled(os.Getenv(EnvTracing))
}

// Setup returns a logger writing to path, or a discard logger when enabled
// is false. The returned cleanup closes the log file and is always non-nil.
func Setup(path string, enabled bool) (*slog.Logger, func() error, error) {
	if !enabled {
		return Discard(), func() error { return nil }, nil
	}
	if strings.TrimSpace(path) == "" {
		return nil, nil, fmt.Errorf("setup logging: log path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}

	sink := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
	}
	logger := slog.New(slog.NewTextHandler(sink, &slog.HandlerOptions{Level: slog.LevelDebug}))
	logger.Info("tracing enabled", "path", path)
	return logger, sink.Close, nil
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
