package queries

import (
	"context"
	"errors"

	"statusflow/internal/core/domain/services"
)

type CheckTransitionQueryHandler struct {
	workflows WorkflowResolver
	planner   services.TransitionPlanner
}

func NewCheckTransitionQueryHandler(workflows WorkflowResolver) CheckTransitionQueryHandler {
	return CheckTransitionQueryHandler{workflows: workflows, planner: services.NewTransitionPlanner()}
}

// Handle reports a disallowed transition in the response, not as an error.
func (h CheckTransitionQueryHandler) Handle(
	_ context.Context,
	query CheckTransitionQuery,
) (CheckTransitionQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return CheckTransitionQueryResponse{}, err
	}

	engine, err := h.workflows.Engine(query.Domain())
	if err != nil {
		return CheckTransitionQueryResponse{}, err
	}

	action, err := h.planner.Check(engine, query.From(), query.To())
	switch {
	case errors.Is(err, services.ErrTransitionNotAllowed):
		return CheckTransitionQueryResponse{Allowed: false, Reason: err.Error()}, nil
	case err != nil:
		return CheckTransitionQueryResponse{}, err
	}
	return CheckTransitionQueryResponse{Allowed: true, Action: action}, nil
}
