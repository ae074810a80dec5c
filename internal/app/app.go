package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/specialistvlad/stepbuilder/internal/config"
	"github.com/specialistvlad/stepbuilder/internal/ctxlog"
	"github.com/specialistvlad/stepbuilder/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	loader   config.Loader
	registry *registry.Registry
}

// NewApp is the constructor for the main application. Generated source goes
// to outW under a dry run, logs go to logW. The app gets its own isolated
// logger and registry; without explicit modules the core modules are used.
func NewApp(outW, logW io.Writer, cfg *Config, loader config.Loader, modules ...registry.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	ctxlog.FromContext(ctx).Debug("All generator modules registered.", "count", len(modules))

	return &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		loader:   loader,
		registry: reg,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}
