package queries

import (
	"errors"

	"statusflow/internal/core/domain/model/workflow"
	"statusflow/internal/pkg/guard"
)

var ErrGetStatusInfoQueryIsNotConstructed = errors.New(
	"GetStatusInfoQuery must be created via NewGetStatusInfoQuery constructor",
)

// GetStatusInfoQuery returns how a status renders. The code may be anything
// read from stored data: unknown codes get the Unknown fallback, not an error.
type GetStatusInfoQuery struct {
	domain string
	code   string

	guard guard.ConstructorGuard
}

func NewGetStatusInfoQuery(domain, code string) (GetStatusInfoQuery, error) {
	d, err := requireDomain(domain)
	if err != nil {
		return GetStatusInfoQuery{}, err
	}
	return GetStatusInfoQuery{domain: d, code: code, guard: guard.NewConstructorGuard()}, nil
}

func (q GetStatusInfoQuery) Validate() error {
	return q.guard.Validate(ErrGetStatusInfoQueryIsNotConstructed)
}

func (q GetStatusInfoQuery) Domain() string {
	return q.domain
}

func (q GetStatusInfoQuery) Code() string {
	return q.code
}

type GetStatusInfoQueryResponse struct {
	Info       workflow.StatusInfo
	PhaseIndex int
}
