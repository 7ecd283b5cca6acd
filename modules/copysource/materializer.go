package copysource

import (
	"context"
	"fmt"

	"github.com/vk/bootgridgo/internal/boot"
	"github.com/vk/bootgridgo/internal/config"
	"github.com/vk/bootgridgo/internal/ctxlog"
	"github.com/vk/bootgridgo/internal/fsutil"
)

// Materializer is the copy_source stage handler. The whole working tree is
// copied with relative paths preserved; no filtering, transformation, or
// validation is performed on the way through.
type Materializer struct {
	cfg *config.CopySource
}

// NewMaterializer creates the stage handler for the given configuration.
func NewMaterializer(cfg *config.CopySource) *Materializer {
	return &Materializer{cfg: cfg}
}

// Name returns the stage's deployfile block type.
func (m *Materializer) Name() string { return config.StageCopySource }

// Phase returns the machine state entered while the stage runs.
func (m *Materializer) Phase() boot.Phase { return boot.PhaseCopySource }

// Run copies the source tree into the target directory.
func (m *Materializer) Run(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	logger.Info("Materializing source tree.", "from", m.cfg.From, "to", m.cfg.To)

	if err := fsutil.CopyTree(m.cfg.From, m.cfg.To); err != nil {
		return fmt.Errorf("failed to materialize source tree: %w", err)
	}
	return nil
}
