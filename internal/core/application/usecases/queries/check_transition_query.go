package queries

import (
	"errors"
	"strings"

	"statusflow/internal/core/domain/services"
	"statusflow/internal/pkg/errs"
	"statusflow/internal/pkg/guard"
)

var ErrCheckTransitionQueryIsNotConstructed = errors.New(
	"CheckTransitionQuery must be created via NewCheckTransitionQuery constructor",
)

// CheckTransitionQuery asks whether from -> to is a declared transition.
type CheckTransitionQuery struct {
	domain string
	from   string
	to     string

	guard guard.ConstructorGuard
}

func NewCheckTransitionQuery(domain, from, to string) (CheckTransitionQuery, error) {
	q := CheckTransitionQuery{guard: guard.NewConstructorGuard()}

	d, domainErr := requireDomain(domain)
	q.domain = d
	q.from = strings.TrimSpace(from)
	q.to = strings.TrimSpace(to)

	var fromErr, toErr error
	if q.from == "" {
		fromErr = errs.NewValueIsRequiredError("from")
	}
	if q.to == "" {
		toErr = errs.NewValueIsRequiredError("to")
	}
	if err := errors.Join(domainErr, fromErr, toErr); err != nil {
		return CheckTransitionQuery{}, err
	}
	return q, nil
}

func (q CheckTransitionQuery) Validate() error {
	return q.guard.Validate(ErrCheckTransitionQueryIsNotConstructed)
}

func (q CheckTransitionQuery) Domain() string {
	return q.domain
}

func (q CheckTransitionQuery) From() string {
	return q.from
}

func (q CheckTransitionQuery) To() string {
	return q.to
}

// CheckTransitionQueryResponse carries the planned action when allowed and
// the reason otherwise.
type CheckTransitionQueryResponse struct {
	Allowed bool
	Action  services.Action
	Reason  string
}
