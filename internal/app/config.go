package app

import (
	"errors"
	"fmt"
	"log/slog"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	DataPath string // directory of .hcl definition files

	LogFormat string
	LogLevel  string
	Dump      bool

	level slog.Level
}

// NewConfig validates and returns an app configuration. Empty log options
// fall back to json/info; anything else must name a real handler format and
// slog level.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.DataPath == "" {
		return nil, errors.New("DataPath is a required configuration field and cannot be empty")
	}

	switch cfg.LogFormat {
	case "":
		cfg.LogFormat = "json"
	case "text", "json":
	default:
		return nil, fmt.Errorf("unsupported log format %q", cfg.LogFormat)
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if err := cfg.level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return nil, fmt.Errorf("unsupported log level %q: %w", cfg.LogLevel, err)
	}
	return &cfg, nil
}
