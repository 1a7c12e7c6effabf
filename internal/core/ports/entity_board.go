package ports

import (
	"time"

	"statusflow/internal/core/domain/model/kernel"
)

// EntityRef identifies an entity within a workflow domain.
type EntityRef struct {
	Domain string
	ID     kernel.UUID
}

func (r EntityRef) String() string {
	return r.Domain + "/" + r.ID.String()
}

// BoardEntry is the last known authoritative state of a tracked entity.
//
// Status is empty until the first successful fetch. LastError holds the most
// recent fetch failure and is cleared by the next successful one.
type BoardEntry struct {
	Ref       EntityRef
	Status    string
	SyncedAt  time.Time
	InFlight  bool
	LastError string
}

// EntityBoard records what the dashboard knows about each entity and which
// entities have a transition request pending.
type EntityBoard interface {
	// Acquire marks ref as having a pending transition request.
	// Returns false if a request for ref is already pending.
	Acquire(ref EntityRef) bool

	// Release clears the pending flag set by Acquire.
	Release(ref EntityRef)

	// Store records a successfully fetched status.
	Store(ref EntityRef, status string, syncedAt time.Time)

	// RecordError notes a failed fetch on an already tracked entity.
	RecordError(ref EntityRef, err error)

	Get(ref EntityRef) (BoardEntry, bool)

	// Entries returns a snapshot copy of every tracked entity.
	Entries() []BoardEntry

	Forget(ref EntityRef)
}
