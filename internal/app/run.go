package app

import (
	"context"
	"fmt"

	"github.com/vk/bootgridgo/internal/boot"
	"github.com/vk/bootgridgo/internal/ctxlog"
)

// Run executes the boot sequence to its terminal state. It returns only
// when the served process has exited or a stage has failed; the error, if
// any, decides the process exit code.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	build, launcher, err := a.registry.BuildStages(ctx, a.deployment)
	if err != nil {
		return fmt.Errorf("failed to assemble pipeline: %w", err)
	}
	a.logger.Debug("Pipeline assembled.", "build_stages", len(build))

	pipeline := boot.NewPipeline(build, launcher)
	a.logger.Info("🚀 Starting boot sequence.", "stages", a.deployment.ConfiguredStages())

	if err := pipeline.Run(ctx); err != nil {
		a.logger.Error("Boot sequence ended in failure.", "phase", string(pipeline.Phase()))
		return err
	}

	a.logger.Info("🏁 Boot sequence finished.", "phase", string(pipeline.Phase()))
	return nil
}
