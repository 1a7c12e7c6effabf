package queries

import "context"

type GetWorkflowQueryHandler struct {
	workflows WorkflowResolver
}

func NewGetWorkflowQueryHandler(workflows WorkflowResolver) GetWorkflowQueryHandler {
	return GetWorkflowQueryHandler{workflows: workflows}
}

func (h GetWorkflowQueryHandler) Handle(_ context.Context, query GetWorkflowQuery) (GetWorkflowQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetWorkflowQueryResponse{}, err
	}

	engine, err := h.workflows.Engine(query.Domain())
	if err != nil {
		return GetWorkflowQueryResponse{}, err
	}

	statuses := engine.Statuses()
	resp := GetWorkflowQueryResponse{
		Name:            engine.Name(),
		Phases:          engine.Phases(),
		InitialStatuses: engine.InitialStatuses(),
		EscapeStatus:    engine.EscapeStatus(),
		Statuses:        make([]StatusEntry, 0, len(statuses)),
	}
	for _, info := range statuses {
		resp.Statuses = append(resp.Statuses, StatusEntry{
			Info: info,
			Next: engine.ValidNextStatuses(info.Code),
		})
	}
	return resp, nil
}
