package registry

import (
	"context"
	"fmt"

	"github.com/vk/bootgridgo/internal/boot"
	"github.com/vk/bootgridgo/internal/config"
	"github.com/vk/bootgridgo/internal/ctxlog"
)

// Validate checks that every stage the deployment configures has a
// registered factory and that the launch block references a registered
// application. A mismatch between config and code is a startup error, not
// something to discover mid-build.
func (r *Registry) Validate(ctx context.Context, d *config.Deployment) error {
	logger := ctxlog.FromContext(ctx)

	for _, blockType := range d.ConfiguredStages() {
		if _, ok := r.stageFactories[blockType]; !ok {
			return fmt.Errorf("no stage handler registered for block type %q", blockType)
		}
	}

	if d.Launch != nil {
		if _, ok := r.applications[d.Launch.Application]; !ok {
			return fmt.Errorf("launch references unregistered application %q", d.Launch.Application)
		}
	}

	logger.Debug("Registry validation passed.",
		"stages", len(r.stageFactories), "applications", len(r.applications))
	return nil
}

// BuildStages instantiates the configured build stages in execution order
// and the terminal launcher. Validate must have passed first.
func (r *Registry) BuildStages(ctx context.Context, d *config.Deployment) ([]boot.Stage, boot.Launcher, error) {
	var build []boot.Stage
	var launcher boot.Launcher

	for _, blockType := range d.ConfiguredStages() {
		factory := r.stageFactories[blockType]
		stage, err := factory(ctx, r, d)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to build stage %q: %w", blockType, err)
		}

		if blockType == config.StageLaunch {
			l, ok := stage.(boot.Launcher)
			if !ok {
				return nil, nil, fmt.Errorf("stage %q does not implement the launcher contract", blockType)
			}
			launcher = l
			continue
		}
		build = append(build, stage)
	}

	if launcher == nil {
		return nil, nil, fmt.Errorf("deployment has no %s stage", config.StageLaunch)
	}

	return build, launcher, nil
}
