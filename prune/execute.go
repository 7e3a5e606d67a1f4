package prune

import (
	"context"
	"fmt"

	"github.com/projecteru2/core/log"

	"github.com/projecteru2/svcimage/types"
)

const (
	deregisterTool   = "euca-deregister"
	deleteBundleTool = "euca-delete-bundle"
)

// commandRunner is the part of runner.Runner the executor uses.
type commandRunner interface {
	Tool(ctx context.Context, name string, args ...string) (string, error)
}

// Executor drives the external deregistration and bundle-deletion tools.
type Executor struct {
	run commandRunner
}

// NewExecutor creates an Executor.
func NewExecutor(run commandRunner) *Executor {
	return &Executor{run: run}
}

// Execute removes every image in the plan: deregister first, then delete
// the backing bundle at the location's bucket/prefix split. The first tool
// failure aborts the run; images removed so far stay removed — there is no
// rollback. Returns the IDs fully removed.
func (e *Executor) Execute(ctx context.Context, plan *Plan) ([]string, error) {
	logger := log.WithFunc("prune.Execute")
	for _, skipped := range plan.Skipped {
		logger.Warnf(ctx, "skipping version %s: image(s) %v still enabled (use --force to remove)",
			skipped.Version, skipped.Enabled)
	}

	var removed []string
	for _, img := range plan.Delete {
		if err := e.remove(ctx, img); err != nil {
			return removed, err
		}
		removed = append(removed, img.ID)
		logger.Infof(ctx, "removed %s (%s)", img.ID, img.Location)
	}
	return removed, nil
}

func (e *Executor) remove(ctx context.Context, img *types.Image) error {
	if _, err := e.run.Tool(ctx, deregisterTool, img.ID); err != nil {
		return fmt.Errorf("deregister %s: %w", img.ID, err)
	}
	if _, err := e.run.Tool(ctx, deleteBundleTool, "-b", img.Bucket(), "-p", img.Prefix(), "--clear"); err != nil {
		return fmt.Errorf("delete bundle of %s: %w", img.ID, err)
	}
	return nil
}
