package queries

import (
	"errors"

	"statusflow/internal/core/domain/model/workflow"
	"statusflow/internal/core/domain/services"
	"statusflow/internal/pkg/guard"
)

var ErrGetNextStatusesQueryIsNotConstructed = errors.New(
	"GetNextStatusesQuery must be created via NewGetNextStatusesQuery constructor",
)

// GetNextStatusesQuery lists the actions an operator may take from a status,
// in the order the buttons should appear.
type GetNextStatusesQuery struct {
	domain string
	code   string

	guard guard.ConstructorGuard
}

func NewGetNextStatusesQuery(domain, code string) (GetNextStatusesQuery, error) {
	d, err := requireDomain(domain)
	if err != nil {
		return GetNextStatusesQuery{}, err
	}
	return GetNextStatusesQuery{domain: d, code: code, guard: guard.NewConstructorGuard()}, nil
}

func (q GetNextStatusesQuery) Validate() error {
	return q.guard.Validate(ErrGetNextStatusesQueryIsNotConstructed)
}

func (q GetNextStatusesQuery) Domain() string {
	return q.domain
}

func (q GetNextStatusesQuery) Code() string {
	return q.code
}

type GetNextStatusesQueryResponse struct {
	Current workflow.StatusInfo
	Actions []services.Action
}
