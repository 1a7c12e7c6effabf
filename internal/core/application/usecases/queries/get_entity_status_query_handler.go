package queries

import (
	"context"
	"errors"

	"statusflow/internal/core/domain/services"
	"statusflow/internal/core/ports"
	"statusflow/internal/pkg/errs"
)

type GetEntityStatusQueryHandler struct {
	workflows WorkflowResolver
	board     ports.EntityBoard
	syncer    StatusSyncer
	planner   services.TransitionPlanner
}

func NewGetEntityStatusQueryHandler(
	workflows WorkflowResolver,
	board ports.EntityBoard,
	syncer StatusSyncer,
) GetEntityStatusQueryHandler {
	return GetEntityStatusQueryHandler{
		workflows: workflows,
		board:     board,
		syncer:    syncer,
		planner:   services.NewTransitionPlanner(),
	}
}

// Handle offers no actions while a transition for the entity is pending. A
// failed refresh of a tracked entity returns the last known status with
// LastError set.
func (h GetEntityStatusQueryHandler) Handle(
	ctx context.Context,
	query GetEntityStatusQuery,
) (GetEntityStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetEntityStatusQueryResponse{}, err
	}

	engine, err := h.workflows.Engine(query.Domain())
	if err != nil {
		return GetEntityStatusQueryResponse{}, err
	}

	ref := ports.EntityRef{Domain: engine.Name(), ID: query.EntityID()}
	entry, tracked := h.board.Get(ref)
	known := tracked && entry.Status != ""
	if !known || query.Refresh() {
		synced, err := h.syncer.Sync(ctx, ref)
		switch {
		case err == nil:
			entry = synced
		case known && !errors.Is(err, errs.ErrObjectNotFound):
			// Serve the last known status with the failure attached.
			entry, _ = h.board.Get(ref)
		default:
			return GetEntityStatusQueryResponse{}, err
		}
	}

	actions := []services.Action{}
	if !entry.InFlight {
		actions = h.planner.Actions(engine, entry.Status)
	}

	return GetEntityStatusQueryResponse{
		EntityID:   ref.ID,
		Domain:     ref.Domain,
		Status:     engine.StatusInfo(entry.Status),
		PhaseIndex: engine.PhaseIndex(entry.Status),
		Actions:    actions,
		InFlight:   entry.InFlight,
		SyncedAt:   entry.SyncedAt,
		LastError:  entry.LastError,
	}, nil
}
