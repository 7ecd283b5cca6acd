// Package scratchdir implements the scratch_dir stage: it idempotently
// provisions the guaranteed-writable scratch location the served
// application receives as explicit configuration.
package scratchdir

import (
	"context"

	"github.com/vk/bootgridgo/internal/boot"
	"github.com/vk/bootgridgo/internal/config"
	"github.com/vk/bootgridgo/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the scratch_dir stage factory with the registry.
func (m Module) Register(r *registry.Registry) {
	r.RegisterStage(config.StageProvisionScratch, newStage)
}

func newStage(ctx context.Context, r *registry.Registry, d *config.Deployment) (boot.Stage, error) {
	return NewProvisioner(d.ScratchDir), nil
}
