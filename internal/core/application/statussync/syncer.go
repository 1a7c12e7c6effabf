// Package statussync re-reads authoritative statuses from the owning services
// and records them on the entity board.
package statussync

import (
	"context"
	"errors"
	"time"

	"statusflow/internal/core/ports"
	"statusflow/internal/pkg/errs"

	"golang.org/x/sync/singleflight"
)

// Syncer coalesces concurrent fetches of the same entity into one backend
// call. It is safe for concurrent use.
type Syncer struct {
	backends ports.StatusBackends
	board    ports.EntityBoard
	group    singleflight.Group
	now      func() time.Time
}

func NewSyncer(backends ports.StatusBackends, board ports.EntityBoard) (*Syncer, error) {
	if backends == nil {
		return nil, errs.NewValueIsRequiredError("backends")
	}
	if board == nil {
		return nil, errs.NewValueIsRequiredError("board")
	}
	return &Syncer{backends: backends, board: board, now: time.Now}, nil
}

// Sync fetches the status of ref and stores it on the board. Callers arriving
// while a fetch for the same ref is running share its result.
//
// The shared fetch ignores the cancellation of whichever caller started it.
// A caller whose ctx ends returns ctx.Err() without waiting; the fetch keeps
// running for the others and still updates the board.
func (s *Syncer) Sync(ctx context.Context, ref ports.EntityRef) (ports.BoardEntry, error) {
	detached := context.WithoutCancel(ctx)
	ch := s.group.DoChan(ref.String(), func() (any, error) {
		return s.fetch(detached, ref)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return ports.BoardEntry{}, res.Err
		}
		return res.Val.(ports.BoardEntry), nil
	case <-ctx.Done():
		return ports.BoardEntry{}, ctx.Err()
	}
}

// Resync is Sync without joining a fetch that started earlier. Use it after
// a transition so the answer reflects the request that was just sent.
func (s *Syncer) Resync(ctx context.Context, ref ports.EntityRef) (ports.BoardEntry, error) {
	s.group.Forget(ref.String())
	return s.Sync(ctx, ref)
}

func (s *Syncer) fetch(ctx context.Context, ref ports.EntityRef) (ports.BoardEntry, error) {
	backend, err := s.backends.Backend(ref.Domain)
	if err != nil {
		return ports.BoardEntry{}, err
	}

	snap, err := backend.FetchStatus(ctx, ref.ID)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			s.board.Forget(ref)
		} else {
			s.board.RecordError(ref, err)
		}
		return ports.BoardEntry{}, err
	}

	s.board.Store(ref, snap.Status, s.now())
	entry, _ := s.board.Get(ref)
	return entry, nil
}
