// Package config reads process-level settings for spindle from the
// environment, optionally seeded from .env files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	// EnvMaxThreads bounds how many spindle threads may run at once.
	EnvMaxThreads = "SPINDLE_MAX_THREADS"
	// EnvLogLevel is one of debug, info, warn or error.
	EnvLogLevel = "SPINDLE_LOG_LEVEL"

	// DefaultMaxThreads matches the Go runtime's own thread ceiling.
	DefaultMaxThreads int64 = 10000
)

type Config struct {
	MaxThreads int64
	LogLevel   slog.Level
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		MaxThreads: DefaultMaxThreads,
		LogLevel:   slog.LevelInfo,
	}
}

// Load reads the given .env files (".env" when none are given) into the
// process environment and then parses it. Missing files are not an error.
// Variables already set in the environment win over the files.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Default(), fmt.Errorf("config: loading env files: %w", err)
	}
	return FromEnv()
}

// FromEnv parses the settings from the current environment.
func FromEnv() (Config, error) {
	cfg := Default()

	if raw, ok := os.LookupEnv(EnvMaxThreads); ok && strings.TrimSpace(raw) != "" {
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return Default(), fmt.Errorf("config: %s: %w", EnvMaxThreads, err)
		}
		if n < 1 {
			return Default(), fmt.Errorf("config: %s must be positive, got %d", EnvMaxThreads, n)
		}
		cfg.MaxThreads = n
	}

	if raw, ok := os.LookupEnv(EnvLogLevel); ok && strings.TrimSpace(raw) != "" {
		level, err := ParseLevel(raw)
		if err != nil {
			return Default(), err
		}
		cfg.LogLevel = level
	}

	return cfg, nil
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("config: %s: %w", EnvLogLevel, err)
	}
	return level, nil
}
