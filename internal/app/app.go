// Package app wires the loader, the prototype schemas and the registry into
// the two-phase load a caller actually runs: decode every definition in
// order, then resolve every deferred reference in one validation pass.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/davecgh/go-spew/spew"

	"github.com/vk/prototable/internal/ctxlog"
	"github.com/vk/prototable/internal/hcl"
	"github.com/vk/prototable/internal/prototypes"
	"github.com/vk/prototable/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	registry *registry.Registry
}

// New returns a fully initialized App instance with its own isolated logger
// and an empty registry.
func New(outW io.Writer, cfg *Config) *App {
	return &App{
		outW:     outW,
		logger:   newLogger(cfg, outW),
		config:   cfg,
		registry: registry.New(),
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Run executes one load. The registry is only safe to consume after Run
// returns nil; any error means the load as a whole is invalid.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	loader := hcl.NewLoader()
	defs, err := loader.LoadDir(ctx, a.config.DataPath)
	if err != nil {
		return fmt.Errorf("failed to load definitions: %w", err)
	}
	a.logger.Info("Definitions loaded.", "count", len(defs))

	if err := prototypes.Load(ctx, a.registry, defs); err != nil {
		return fmt.Errorf("decode phase failed: %w", err)
	}
	a.logger.Info("Decode phase complete.",
		"categories", a.registry.Categories(),
		"pending_references", a.registry.PendingReferences(),
	)

	if err := a.registry.ValidateReferences(ctx); err != nil {
		return fmt.Errorf("reference validation failed: %w", err)
	}
	a.logger.Info("Reference validation passed.")

	if a.config.Dump {
		a.dump()
	}
	return nil
}

// dump prints every decoded prototype, category by category.
func (a *App) dump() {
	cfg := &spew.ConfigState{
		Indent:                  "  ",
		DisablePointerAddresses: true,
		DisableCapacities:       true,
		SortKeys:                true,
	}
	for _, category := range a.registry.Categories() {
		fmt.Fprintf(a.outW, "## %s (%d)\n", category, a.registry.Len(category))
		for _, p := range a.registry.All(category) {
			cfg.Fdump(a.outW, p)
		}
	}
}
