package queries

import (
	"errors"
	"time"

	"statusflow/internal/core/domain/model/kernel"
	"statusflow/internal/core/domain/model/workflow"
	"statusflow/internal/core/domain/services"
	"statusflow/internal/pkg/guard"
)

var ErrGetEntityStatusQueryIsNotConstructed = errors.New(
	"GetEntityStatusQuery must be created via NewGetEntityStatusQuery constructor",
)

// GetEntityStatusQuery returns what the dashboard knows about an entity.
// The owning service is asked when the entity is not tracked yet or when
// refresh is set.
type GetEntityStatusQuery struct {
	domain   string
	entityID kernel.UUID
	refresh  bool

	guard guard.ConstructorGuard
}

func NewGetEntityStatusQuery(domain string, entityID kernel.UUID, refresh bool) (GetEntityStatusQuery, error) {
	d, domainErr := requireDomain(domain)
	if err := errors.Join(domainErr, entityID.Validate()); err != nil {
		return GetEntityStatusQuery{}, err
	}
	return GetEntityStatusQuery{
		domain:   d,
		entityID: entityID,
		refresh:  refresh,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q GetEntityStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetEntityStatusQueryIsNotConstructed)
}

func (q GetEntityStatusQuery) Domain() string {
	return q.domain
}

func (q GetEntityStatusQuery) EntityID() kernel.UUID {
	return q.entityID
}

func (q GetEntityStatusQuery) Refresh() bool {
	return q.refresh
}

type GetEntityStatusQueryResponse struct {
	EntityID   kernel.UUID
	Domain     string
	Status     workflow.StatusInfo
	PhaseIndex int
	Actions    []services.Action
	InFlight   bool
	SyncedAt   time.Time
	LastError  string
}
