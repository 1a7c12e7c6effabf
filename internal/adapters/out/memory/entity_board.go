package memory

import (
	"slices"
	"strings"
	"sync"
	"time"

	"statusflow/internal/core/ports"
)

var _ ports.EntityBoard = (*EntityBoard)(nil)

type boardEntry struct {
	status    string
	syncedAt  time.Time
	inFlight  bool
	lastError string
}

// EntityBoard is a mutex guarded map of tracked entities. Entities are keyed
// by domain and id, so a pending request on one entity never blocks another.
type EntityBoard struct {
	mu      sync.Mutex
	entries map[ports.EntityRef]*boardEntry
}

func NewEntityBoard() *EntityBoard {
	return &EntityBoard{entries: make(map[ports.EntityRef]*boardEntry)}
}

func (b *EntityBoard) Acquire(ref ports.EntityRef) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	e, ok := b.entries[ref]
	if !ok {
		e = &boardEntry{}
		b.entries[ref] = e
	}
	if e.inFlight {
		return false
	}
	e.inFlight = true
	return true
}

func (b *EntityBoard) Release(ref ports.EntityRef) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if e, ok := b.entries[ref]; ok {
		e.inFlight = false
	}
}

func (b *EntityBoard) Store(ref ports.EntityRef, status string, syncedAt time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()

	e, ok := b.entries[ref]
	if !ok {
		e = &boardEntry{}
		b.entries[ref] = e
	}
	e.status = status
	e.syncedAt = syncedAt
	e.lastError = ""
}

// RecordError keeps the previous status. Untracked refs are ignored so that
// lookups of unknown entities do not leave empty entries behind.
func (b *EntityBoard) RecordError(ref ports.EntityRef, err error) {
	if err == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if e, ok := b.entries[ref]; ok {
		e.lastError = err.Error()
	}
}

func (b *EntityBoard) Get(ref ports.EntityRef) (ports.BoardEntry, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	e, ok := b.entries[ref]
	if !ok {
		return ports.BoardEntry{}, false
	}
	return e.snapshot(ref), true
}

// Entries returns copies ordered by domain and id.
func (b *EntityBoard) Entries() []ports.BoardEntry {
	b.mu.Lock()
	out := make([]ports.BoardEntry, 0, len(b.entries))
	for ref, e := range b.entries {
		out = append(out, e.snapshot(ref))
	}
	b.mu.Unlock()

	slices.SortFunc(out, func(x, y ports.BoardEntry) int {
		if c := strings.Compare(x.Ref.Domain, y.Ref.Domain); c != 0 {
			return c
		}
		return strings.Compare(x.Ref.ID.String(), y.Ref.ID.String())
	})
	return out
}

// Forget drops ref unless a transition request for it is pending.
func (b *EntityBoard) Forget(ref ports.EntityRef) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if e, ok := b.entries[ref]; ok && !e.inFlight {
		delete(b.entries, ref)
	}
}

func (e *boardEntry) snapshot(ref ports.EntityRef) ports.BoardEntry {
	return ports.BoardEntry{
		Ref:       ref,
		Status:    e.status,
		SyncedAt:  e.syncedAt,
		InFlight:  e.inFlight,
		LastError: e.lastError,
	}
}
