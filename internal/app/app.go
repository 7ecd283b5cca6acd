package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/bootgridgo/internal/config"
	"github.com/vk/bootgridgo/internal/ctxlog"
	"github.com/vk/bootgridgo/internal/registry"
)

// Config holds all the configuration an App instance needs to run.
type Config struct {
	// DeployfilePath locates the HCL deployfile describing the pipeline.
	DeployfilePath string

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.DeployfilePath == "" {
		return nil, fmt.Errorf("DeployfilePath is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}

// Loader translates a deployfile into the deployment model. The HCL
// implementation lives in internal/hclcfg; tests substitute their own.
type Loader interface {
	Load(ctx context.Context, path string) (*config.Deployment, error)
}

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW       io.Writer
	logger     *slog.Logger
	registry   *registry.Registry
	deployment *config.Deployment
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and registry.
// Configuration errors are fatal startup errors and panic; run() in main
// recovers them into a clean exit.
func NewApp(outW io.Writer, appConfig *Config, loader Loader, modules ...registry.Module) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	deployment, err := loader.Load(ctx, appConfig.DeployfilePath)
	if err != nil {
		panic(fmt.Errorf("failed to load deployfile: %w", err))
	}
	logger.Debug("Deployfile loaded and translated into unified model.")

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All Go modules registered.", "count", len(modules))

	if err := reg.Validate(ctx, deployment); err != nil {
		// A mismatch between code and config is a programmer error.
		panic(err)
	}
	logger.Debug("Registry validation passed.")

	return &App{
		outW:       outW,
		logger:     logger,
		registry:   reg,
		deployment: deployment,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Deployment returns the loaded deployment model. Primarily for testing.
func (a *App) Deployment() *config.Deployment {
	return a.deployment
}
