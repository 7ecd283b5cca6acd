package installdeps

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/vk/bootgridgo/internal/boot"
	"github.com/vk/bootgridgo/internal/config"
	"github.com/vk/bootgridgo/internal/ctxlog"
	"github.com/vk/bootgridgo/internal/manifest"
)

// runCommandFunc executes one package-manager invocation and returns its
// combined output. Injectable for tests.
type runCommandFunc func(ctx context.Context, argv []string) ([]byte, error)

// Installer is the install_deps stage handler. The first package that fails
// to install aborts the whole build; a partial dependency set is never an
// acceptable terminal state.
type Installer struct {
	cfg        *config.InstallDeps
	runCommand runCommandFunc
}

// NewInstaller creates the stage handler for the given configuration.
func NewInstaller(cfg *config.InstallDeps) *Installer {
	return &Installer{
		cfg: cfg,
		runCommand: func(ctx context.Context, argv []string) ([]byte, error) {
			cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
			return cmd.CombinedOutput()
		},
	}
}

// Name returns the stage's deployfile block type.
func (i *Installer) Name() string { return config.StageInstallDeps }

// Phase returns the machine state entered while the stage runs.
func (i *Installer) Phase() boot.Phase { return boot.PhaseInstallDeps }

// Run parses the manifest and installs every package in declaration order.
func (i *Installer) Run(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	packages, err := manifest.ParseFile(i.cfg.ManifestPath)
	if err != nil {
		return err
	}
	logger.Info("Installing dependencies.", "manifest", i.cfg.ManifestPath, "count", len(packages))

	for _, pkg := range packages {
		argv := append(append([]string{}, i.cfg.InstallCommand...), pkg.Spec())
		logger.Debug("Installing package.", "package", pkg.Spec())

		output, err := i.runCommand(ctx, argv)
		if err != nil {
			return fmt.Errorf("failed to install %s: %w\n%s", pkg.Spec(), err, output)
		}
	}

	i.cleanCache(ctx)
	return nil
}

// cleanCache removes the package-manager cache contents after a successful
// install. This is an image-footprint concern, so failures are only logged.
func (i *Installer) cleanCache(ctx context.Context) {
	if i.cfg.CachePath == "" {
		return
	}
	logger := ctxlog.FromContext(ctx)

	entries, err := os.ReadDir(i.cfg.CachePath)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("Could not read package cache.", "path", i.cfg.CachePath, "error", err)
		}
		return
	}

	for _, entry := range entries {
		target := filepath.Join(i.cfg.CachePath, entry.Name())
		if err := os.RemoveAll(target); err != nil {
			logger.Warn("Could not remove cache entry.", "path", target, "error", err)
		}
	}
	logger.Debug("Package cache cleaned.", "path", i.cfg.CachePath)
}
