// Package registry wires deployfile block types to Go stage handlers and
// holds the named applications the launcher can boot. Everything is
// registered explicitly at startup; there is no dynamic discovery.
package registry

import (
	"context"
	"fmt"

	"github.com/vk/bootgridgo/internal/boot"
	"github.com/vk/bootgridgo/internal/config"
)

// StageFactory builds a stage handler from the loaded deployment model.
type StageFactory func(ctx context.Context, r *Registry, d *config.Deployment) (boot.Stage, error)

// Module is implemented by packages under modules/ to register their
// handlers with the application's registry.
type Module interface {
	Register(r *Registry)
}

// Registry maps stage block types to factories and application names to
// implementations. It is populated once at startup and read-only afterwards.
type Registry struct {
	stageFactories map[string]StageFactory
	applications   map[string]boot.Application
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		stageFactories: make(map[string]StageFactory),
		applications:   make(map[string]boot.Application),
	}
}

// RegisterStage registers the factory for a stage block type. Double
// registration is a programmer error.
func (r *Registry) RegisterStage(blockType string, factory StageFactory) {
	if _, exists := r.stageFactories[blockType]; exists {
		panic(fmt.Sprintf("registry: stage %q registered twice", blockType))
	}
	r.stageFactories[blockType] = factory
}

// RegisterApplication registers a bootable application under a name the
// deployfile's launch block can reference.
func (r *Registry) RegisterApplication(name string, app boot.Application) {
	if _, exists := r.applications[name]; exists {
		panic(fmt.Sprintf("registry: application %q registered twice", name))
	}
	r.applications[name] = app
}

// Application looks up a registered application by name.
func (r *Registry) Application(name string) (boot.Application, bool) {
	app, ok := r.applications[name]
	return app, ok
}
