package commands

import (
	"errors"

	"statusflow/internal/pkg/errs"
	"statusflow/internal/pkg/guard"
)

// MaxResyncConcurrency caps parallel fetches against the owning services.
const MaxResyncConcurrency = 64

var ErrResyncEntitiesCommandIsNotConstructed = errors.New(
	"ResyncEntitiesCommand must be created via NewResyncEntitiesCommand constructor",
)

// ResyncEntitiesCommand refreshes every tracked entity that may still change.
type ResyncEntitiesCommand struct {
	concurrency int

	guard guard.ConstructorGuard
}

func NewResyncEntitiesCommand(concurrency int) (ResyncEntitiesCommand, error) {
	if concurrency < 1 || concurrency > MaxResyncConcurrency {
		return ResyncEntitiesCommand{}, errs.NewValueIsOutOfRangeError("concurrency", concurrency, 1, MaxResyncConcurrency)
	}
	return ResyncEntitiesCommand{
		concurrency: concurrency,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c ResyncEntitiesCommand) Validate() error {
	return c.guard.Validate(ErrResyncEntitiesCommandIsNotConstructed)
}

// Concurrency is the number of fetches allowed to run at once.
func (c ResyncEntitiesCommand) Concurrency() int {
	return c.concurrency
}
