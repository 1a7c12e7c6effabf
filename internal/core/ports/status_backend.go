package ports

import (
	"context"
	"errors"

	"statusflow/internal/core/domain/model/kernel"
)

var (
	// ErrTransitionRejected marks a business rejection by the owning service,
	// for example a conflicting concurrent update.
	ErrTransitionRejected = errors.New("transition rejected by backend")

	// ErrBackendUnavailable marks transport failures and unexpected responses.
	ErrBackendUnavailable = errors.New("backend unavailable")
)

// EntitySnapshot is the authoritative state of an entity as reported by the
// service that owns it.
type EntitySnapshot struct {
	ID     kernel.UUID
	Status string
}

// TransitionRequest is the collaborator contract payload
// {entityId, targetStatus, notes?}.
type TransitionRequest struct {
	EntityID     kernel.UUID
	TargetStatus string
	Notes        string
}

// StatusBackend is the service that owns the entities of one workflow domain
// and re-validates every transition independently.
type StatusBackend interface {
	// FetchStatus returns the current authoritative status.
	// Returns errs.ObjectNotFoundError when the service does not know the entity.
	FetchStatus(ctx context.Context, id kernel.UUID) (EntitySnapshot, error)

	// RequestTransition asks the service to move the entity.
	// A business refusal wraps ErrTransitionRejected; anything that prevented
	// a decision wraps ErrBackendUnavailable.
	RequestTransition(ctx context.Context, req TransitionRequest) (EntitySnapshot, error)
}

// StatusBackends resolves the owning service of a workflow domain.
type StatusBackends interface {
	Backend(domain string) (StatusBackend, error)
}
