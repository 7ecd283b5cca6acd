// Package installdeps implements the install_deps stage: it resolves the
// dependency manifest and installs every listed package into the image.
package installdeps

import (
	"context"

	"github.com/vk/bootgridgo/internal/boot"
	"github.com/vk/bootgridgo/internal/config"
	"github.com/vk/bootgridgo/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the install_deps stage factory with the registry.
func (m Module) Register(r *registry.Registry) {
	r.RegisterStage(config.StageInstallDeps, newStage)
}

func newStage(ctx context.Context, r *registry.Registry, d *config.Deployment) (boot.Stage, error) {
	return NewInstaller(d.InstallDeps), nil
}
