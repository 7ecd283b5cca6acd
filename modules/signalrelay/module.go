// Package signalrelay registers the built-in signal relay under the name
// the deployfile's launch block references by default.
package signalrelay

import (
	"context"
	"net"

	"github.com/vk/bootgridgo/internal/config"
	"github.com/vk/bootgridgo/internal/registry"
	"github.com/vk/bootgridgo/internal/relay"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the relay application with the registry.
func (m Module) Register(r *registry.Registry) {
	r.RegisterApplication(config.DefaultApplication, application{})
}

// application defers reading the environment until launch so deployments
// that boot a different application never require relay credentials.
type application struct{}

// Serve builds the relay from the environment and serves it on ln. A
// missing bot token is a boot-fatal error surfaced through the launcher.
func (application) Serve(ctx context.Context, ln net.Listener) error {
	cfg, err := relay.ConfigFromEnv()
	if err != nil {
		return err
	}
	return relay.NewServer(cfg).Serve(ctx, ln)
}
