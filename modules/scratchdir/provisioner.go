package scratchdir

import (
	"context"
	"fmt"
	"os"

	"github.com/vk/bootgridgo/internal/boot"
	"github.com/vk/bootgridgo/internal/config"
	"github.com/vk/bootgridgo/internal/ctxlog"
	"github.com/vk/bootgridgo/internal/fsutil"
)

// Provisioner is the scratch_dir stage handler. The default policy grants
// access to the configured owner only; a world-writable 0777 mode remains
// available as an explicit opt-in.
type Provisioner struct {
	cfg *config.ScratchDir
}

// NewProvisioner creates the stage handler for the given configuration.
func NewProvisioner(cfg *config.ScratchDir) *Provisioner {
	return &Provisioner{cfg: cfg}
}

// Name returns the stage's deployfile block type.
func (p *Provisioner) Name() string { return config.StageProvisionScratch }

// Phase returns the machine state entered while the stage runs.
func (p *Provisioner) Phase() boot.Phase { return boot.PhaseProvisionScratch }

// Run ensures the scratch directory exists with the configured mode and
// ownership, and proves it is writable before the launch stage may begin.
// It must succeed when the directory already exists.
func (p *Provisioner) Run(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	mode := os.FileMode(0o700)
	if p.cfg.WorldWritable {
		mode = 0o777
	}

	if err := os.MkdirAll(p.cfg.Path, mode); err != nil {
		return fmt.Errorf("failed to create scratch directory %s: %w", p.cfg.Path, err)
	}
	// MkdirAll leaves the mode of a pre-existing directory untouched, so
	// enforce it explicitly to stay idempotent.
	if err := os.Chmod(p.cfg.Path, mode); err != nil {
		return fmt.Errorf("failed to set mode on scratch directory %s: %w", p.cfg.Path, err)
	}

	if p.cfg.OwnerUID >= 0 || p.cfg.OwnerGID >= 0 {
		if err := os.Chown(p.cfg.Path, p.cfg.OwnerUID, p.cfg.OwnerGID); err != nil {
			return fmt.Errorf("failed to chown scratch directory %s to %d:%d: %w",
				p.cfg.Path, p.cfg.OwnerUID, p.cfg.OwnerGID, err)
		}
	}

	// The runtime invariant: scratch must be writable before the server
	// process starts, or temporary-file writes will fail at runtime.
	if err := fsutil.VerifyWritable(p.cfg.Path); err != nil {
		return err
	}

	logger.Info("Scratch directory provisioned.",
		"path", p.cfg.Path, "mode", mode.String(), "world_writable", p.cfg.WorldWritable)
	return nil
}
