package commands

import (
	"context"
	"log/slog"
	"sync/atomic"

	"statusflow/internal/core/ports"
	"statusflow/internal/pkg/errs"

	"golang.org/x/sync/errgroup"
)

// ResyncResult counts what a resync pass did.
type ResyncResult struct {
	Refreshed int
	Skipped   int
	Failed    int
}

// ResyncEntitiesCommandHandler refreshes board entries from the owning
// services.
//
// Entries with a pending transition are skipped because the transition flow
// resyncs them itself. Terminal entries are skipped because no transition can
// change them. A failed fetch is recorded on its entry and does not stop the
// pass.
type ResyncEntitiesCommandHandler struct {
	workflows WorkflowResolver
	board     ports.EntityBoard
	syncer    StatusSyncer
	logger    *slog.Logger
}

func NewResyncEntitiesCommandHandler(
	workflows WorkflowResolver,
	board ports.EntityBoard,
	syncer StatusSyncer,
	logger *slog.Logger,
) (ResyncEntitiesCommandHandler, error) {
	switch {
	case workflows == nil:
		return ResyncEntitiesCommandHandler{}, errs.NewValueIsRequiredError("workflows")
	case board == nil:
		return ResyncEntitiesCommandHandler{}, errs.NewValueIsRequiredError("board")
	case syncer == nil:
		return ResyncEntitiesCommandHandler{}, errs.NewValueIsRequiredError("syncer")
	case logger == nil:
		return ResyncEntitiesCommandHandler{}, errs.NewValueIsRequiredError("logger")
	}
	return ResyncEntitiesCommandHandler{
		workflows: workflows,
		board:     board,
		syncer:    syncer,
		logger:    logger.With("component", "resync_entities"),
	}, nil
}

func (h ResyncEntitiesCommandHandler) Handle(ctx context.Context, command ResyncEntitiesCommand) (ResyncResult, error) {
	if err := command.Validate(); err != nil {
		return ResyncResult{}, err
	}

	var refreshed, skipped, failed atomic.Int64

	g := new(errgroup.Group)
	g.SetLimit(command.Concurrency())

	for _, entry := range h.board.Entries() {
		if ctx.Err() != nil {
			break
		}
		if h.settled(entry) {
			skipped.Add(1)
			continue
		}
		g.Go(func() error {
			if _, err := h.syncer.Sync(ctx, entry.Ref); err != nil {
				failed.Add(1)
				h.logger.WarnContext(ctx, "resync failed", "entity", entry.Ref.String(), "error", err)
				return nil
			}
			refreshed.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	result := ResyncResult{
		Refreshed: int(refreshed.Load()),
		Skipped:   int(skipped.Load()),
		Failed:    int(failed.Load()),
	}
	return result, ctx.Err()
}

// settled reports entries that a fetch cannot or need not change now.
func (h ResyncEntitiesCommandHandler) settled(entry ports.BoardEntry) bool {
	if entry.InFlight {
		return true
	}
	engine, err := h.workflows.Engine(entry.Ref.Domain)
	if err != nil {
		return true
	}
	return engine.IsTerminal(entry.Status)
}
