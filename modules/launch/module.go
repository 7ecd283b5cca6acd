// Package launch implements the terminal launch stage: it binds the
// configured address and hands the listener to the registered application.
// Its return, clean or crashed, ends the container.
package launch

import (
	"context"
	"fmt"

	"github.com/vk/bootgridgo/internal/boot"
	"github.com/vk/bootgridgo/internal/config"
	"github.com/vk/bootgridgo/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the launch stage factory with the registry.
func (m Module) Register(r *registry.Registry) {
	r.RegisterStage(config.StageLaunch, newStage)
}

func newStage(ctx context.Context, r *registry.Registry, d *config.Deployment) (boot.Stage, error) {
	app, ok := r.Application(d.Launch.Application)
	if !ok {
		// Registry validation catches this earlier; failing here keeps the
		// factory safe when invoked standalone.
		return nil, fmt.Errorf("application %q is not registered", d.Launch.Application)
	}
	return NewLauncher(d.Launch, app), nil
}
