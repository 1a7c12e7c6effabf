package queries

import (
	"context"

	"statusflow/internal/core/domain/services"
)

type GetNextStatusesQueryHandler struct {
	workflows WorkflowResolver
	planner   services.TransitionPlanner
}

func NewGetNextStatusesQueryHandler(workflows WorkflowResolver) GetNextStatusesQueryHandler {
	return GetNextStatusesQueryHandler{workflows: workflows, planner: services.NewTransitionPlanner()}
}

// Handle returns an empty action list for terminal and unknown statuses.
func (h GetNextStatusesQueryHandler) Handle(
	_ context.Context,
	query GetNextStatusesQuery,
) (GetNextStatusesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetNextStatusesQueryResponse{}, err
	}

	engine, err := h.workflows.Engine(query.Domain())
	if err != nil {
		return GetNextStatusesQueryResponse{}, err
	}

	return GetNextStatusesQueryResponse{
		Current: engine.StatusInfo(query.Code()),
		Actions: h.planner.Actions(engine, query.Code()),
	}, nil
}
