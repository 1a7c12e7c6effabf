// Package commands contains the operations that change what the dashboard
// knows about an entity: requesting a status transition from the owning
// service and refreshing tracked entities.
package commands

import (
	"context"

	"statusflow/internal/core/domain/model/workflow"
	"statusflow/internal/core/ports"
)

// Narrow views of the collaborators, so handlers can be tested with mocks.
type (
	// WorkflowResolver finds the engine of a workflow domain.
	WorkflowResolver interface {
		Engine(name string) (*workflow.Engine, error)
	}

	// StatusSyncer re-reads authoritative statuses onto the entity board.
	StatusSyncer interface {
		// Sync may share a fetch already in progress for the entity.
		Sync(ctx context.Context, ref ports.EntityRef) (ports.BoardEntry, error)

		// Resync always issues a fresh fetch.
		Resync(ctx context.Context, ref ports.EntityRef) (ports.BoardEntry, error)
	}
)
