package app

import (
	"io"
	"log/slog"
)

// newLogger builds the app's isolated logger from an already validated
// config. It never touches the global default, so tests can run several apps
// side by side.
func newLogger(cfg *Config, outW io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(outW, opts))
	}
	return slog.New(slog.NewTextHandler(outW, opts))
}
