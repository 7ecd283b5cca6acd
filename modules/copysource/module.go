// Package copysource implements the copy_source stage: it materializes the
// application source tree into the image working directory verbatim.
package copysource

import (
	"context"

	"github.com/vk/bootgridgo/internal/boot"
	"github.com/vk/bootgridgo/internal/config"
	"github.com/vk/bootgridgo/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the copy_source stage factory with the registry.
func (m Module) Register(r *registry.Registry) {
	r.RegisterStage(config.StageCopySource, newStage)
}

func newStage(ctx context.Context, r *registry.Registry, d *config.Deployment) (boot.Stage, error) {
	return NewMaterializer(d.CopySource), nil
}
