package queries

import (
	"errors"

	"statusflow/internal/core/domain/model/workflow"
	"statusflow/internal/pkg/guard"
)

var ErrGetWorkflowQueryIsNotConstructed = errors.New(
	"GetWorkflowQuery must be created via NewGetWorkflowQuery constructor",
)

// GetWorkflowQuery returns the full catalog of one workflow, for filter lists,
// legends and steppers.
type GetWorkflowQuery struct {
	domain string

	guard guard.ConstructorGuard
}

func NewGetWorkflowQuery(domain string) (GetWorkflowQuery, error) {
	d, err := requireDomain(domain)
	if err != nil {
		return GetWorkflowQuery{}, err
	}
	return GetWorkflowQuery{domain: d, guard: guard.NewConstructorGuard()}, nil
}

func (q GetWorkflowQuery) Validate() error {
	return q.guard.Validate(ErrGetWorkflowQueryIsNotConstructed)
}

func (q GetWorkflowQuery) Domain() string {
	return q.domain
}

// StatusEntry is a status with its ordered successors.
type StatusEntry struct {
	Info workflow.StatusInfo
	Next []string
}

type GetWorkflowQueryResponse struct {
	Name            string
	Phases          []workflow.Phase
	InitialStatuses []string
	EscapeStatus    string
	Statuses        []StatusEntry
}
