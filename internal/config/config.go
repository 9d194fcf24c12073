package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds the user-tunable pager settings.
type Config struct {
	Theme          string
	BatchFactor    int
	StartupTimeout time.Duration
	Tick           time.Duration
	Syntax         bool
	LogDir         string
}

const (
	defaultConfigPath     = "~/.config/gitpeek/config.toml"
	defaultTheme          = "Nightfox"
	defaultBatchFactor    = 4
	defaultStartupTimeout = time.Second
	defaultTick           = 250 * time.Millisecond
	defaultLogDir         = ".logs"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Theme:          defaultTheme,
		BatchFactor:    defaultBatchFactor,
		StartupTimeout: defaultStartupTimeout,
		Tick:           defaultTick,
		Syntax:         true,
		LogDir:         mustExpand(defaultLogDir),
	}
}

// Load locates and parses the config file, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Theme          string `toml:"theme"`
		BatchFactor    *int   `toml:"batch_factor"`
		StartupTimeout string `toml:"startup_timeout"`
		Tick           string `toml:"tick"`
		Syntax         *bool  `toml:"syntax"`
		LogDir         string `toml:"log_dir"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if theme := strings.TrimSpace(raw.Theme); theme != "" {
		cfg.Theme = theme
	}

	if raw.BatchFactor != nil {
		if *raw.BatchFactor < 1 {
			return Config{}, fmt.Errorf("parse config: batch_factor must be at least 1, got %d", *raw.BatchFactor)
		}
		cfg.BatchFactor = *raw.BatchFactor
	}

	if cfg.StartupTimeout, err = parseDuration("startup_timeout", raw.StartupTimeout, cfg.StartupTimeout); err != nil {
		return Config{}, err
	}
	if cfg.Tick, err = parseDuration("tick", raw.Tick, cfg.Tick); err != nil {
		return Config{}, err
	}

	if raw.Syntax != nil {
		cfg.Syntax = *raw.Syntax
	}

	if logDir := strings.TrimSpace(raw.LogDir); logDir != "" {
		cfg.LogDir = mustExpand(logDir)
	}

	return cfg, nil
}

// LogPath returns the diagnostic log file path.
func (c Config) LogPath() string {
	if strings.TrimSpace(c.LogDir) == "" {
		return filepath.Join(mustExpand(defaultLogDir), "runlog.log")
	}
	return filepath.Join(c.LogDir, "runlog.log")
}

// parseDuration parses a positive Go duration, returning fallback when
// value is blank.
func parseDuration(field, value string, fallback time.Duration) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("parse config: %s: %w", field, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("parse config: %s must be positive, got %s", field, value)
	}
	return d, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
