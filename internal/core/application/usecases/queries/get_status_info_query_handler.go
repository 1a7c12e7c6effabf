package queries

import "context"

type GetStatusInfoQueryHandler struct {
	workflows WorkflowResolver
}

func NewGetStatusInfoQueryHandler(workflows WorkflowResolver) GetStatusInfoQueryHandler {
	return GetStatusInfoQueryHandler{workflows: workflows}
}

func (h GetStatusInfoQueryHandler) Handle(_ context.Context, query GetStatusInfoQuery) (GetStatusInfoQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetStatusInfoQueryResponse{}, err
	}

	engine, err := h.workflows.Engine(query.Domain())
	if err != nil {
		return GetStatusInfoQueryResponse{}, err
	}

	return GetStatusInfoQueryResponse{
		Info:       engine.StatusInfo(query.Code()),
		PhaseIndex: engine.PhaseIndex(query.Code()),
	}, nil
}
