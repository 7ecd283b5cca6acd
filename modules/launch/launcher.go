package launch

import (
	"context"
	"fmt"
	"net"

	"github.com/vk/bootgridgo/internal/boot"
	"github.com/vk/bootgridgo/internal/config"
	"github.com/vk/bootgridgo/internal/ctxlog"
)

// Launcher is the launch stage handler. Run blocks in the foreground until
// the application exits; a bind failure (port already in use) or a Serve
// error returns immediately without any retry.
type Launcher struct {
	cfg     *config.Launch
	app     boot.Application
	serving chan struct{}
}

// NewLauncher creates the stage handler for the given configuration and
// application.
func NewLauncher(cfg *config.Launch, app boot.Application) *Launcher {
	return &Launcher{
		cfg:     cfg,
		app:     app,
		serving: make(chan struct{}),
	}
}

// Name returns the stage's deployfile block type.
func (l *Launcher) Name() string { return config.StageLaunch }

// Phase returns the machine state entered while the stage runs.
func (l *Launcher) Phase() boot.Phase { return boot.PhaseLaunch }

// Serving is closed once the listener is bound.
func (l *Launcher) Serving() <-chan struct{} {
	return l.serving
}

// Run binds the configured address and serves the application on it.
func (l *Launcher) Run(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	addr := l.cfg.Addr()

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to bind %s: %w", addr, err)
	}
	close(l.serving)
	logger.Info("Listener bound, handing over to application.",
		"addr", addr, "application", l.cfg.Application)

	return l.app.Serve(ctx, ln)
}
