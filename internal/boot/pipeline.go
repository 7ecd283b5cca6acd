package boot

import (
	"context"
	"fmt"
	"net"

	"github.com/vk/bootgridgo/internal/ctxlog"
)

// Stage is one step of the boot sequence. Run must be idempotent for the
// build stages: re-running a stage with unchanged inputs yields the same
// result.
type Stage interface {
	// Name returns the stage's deployfile block type.
	Name() string
	// Phase returns the machine state entered while the stage runs.
	Phase() Phase
	// Run executes the stage. Any returned error is terminal.
	Run(ctx context.Context) error
}

// Launcher is the terminal stage. Run blocks in the foreground until the
// served process exits or fails; Serving is closed once the listener is
// bound and the service is accepting connections.
type Launcher interface {
	Stage
	Serving() <-chan struct{}
}

// Application is the external collaborator the launcher boots.
// Implementations are registered by name and handed a bound listener;
// there is no dynamic entry-point lookup.
type Application interface {
	// Serve accepts connections on ln until it fails or ctx is canceled.
	// A nil return is a clean shutdown.
	Serve(ctx context.Context, ln net.Listener) error
}

// Pipeline executes build stages strictly sequentially and then hands the
// process over to the launcher. It is single-use.
type Pipeline struct {
	build   []Stage
	launch  Launcher
	machine *machine
}

// NewPipeline assembles a pipeline from its ordered build stages and the
// terminal launcher.
func NewPipeline(build []Stage, launch Launcher) *Pipeline {
	return &Pipeline{
		build:   build,
		launch:  launch,
		machine: newMachine(),
	}
}

// Phase returns the machine's current state.
func (p *Pipeline) Phase() Phase {
	return p.machine.current()
}

// Run drives the machine to completion. Build-stage failures return a
// wrapped error with the machine in BUILD_FAILED; launch failures (bind
// errors included) leave it in CRASHED. There is no retry path.
func (p *Pipeline) Run(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	for _, stage := range p.build {
		p.machine.to(stage.Phase())
		logger.Info("Stage starting.", "stage", stage.Name(), "phase", string(stage.Phase()))

		if err := stage.Run(ctx); err != nil {
			p.machine.to(PhaseBuildFailed)
			logger.Error("Stage failed, build aborted.", "stage", stage.Name(), "error", err)
			return fmt.Errorf("build failed at stage %s: %w", stage.Name(), err)
		}
		logger.Info("Stage completed.", "stage", stage.Name())
	}

	p.machine.to(PhaseLaunch)
	logger.Info("Stage starting.", "stage", p.launch.Name(), "phase", string(PhaseLaunch))

	// Flip to RUNNING as soon as the launcher reports a bound listener. The
	// watcher is stopped when Run returns so a crashed launcher can never
	// be observed as RUNNING afterwards.
	watchDone := make(chan struct{})
	defer close(watchDone)
	go func() {
		select {
		case <-p.launch.Serving():
			if p.machine.advance(PhaseLaunch, PhaseRunning) {
				logger.Info("Service is accepting connections.")
			}
		case <-watchDone:
		}
	}()

	if err := p.launch.Run(ctx); err != nil {
		p.machine.to(PhaseCrashed)
		logger.Error("Launch stage failed.", "stage", p.launch.Name(), "error", err)
		return fmt.Errorf("launch failed: %w", err)
	}

	logger.Info("Served process exited cleanly.")
	return nil
}
