package commands

import (
	"errors"
	"strings"
	"unicode/utf8"

	"statusflow/internal/core/domain/model/kernel"
	"statusflow/internal/pkg/errs"
	"statusflow/internal/pkg/guard"
)

// MaxNotesLength bounds the operator notes forwarded to the owning service.
const MaxNotesLength = 2000

var ErrRequestTransitionCommandIsNotConstructed = errors.New(
	"RequestTransitionCommand must be created via NewRequestTransitionCommand constructor",
)

// RequestTransitionCommand asks the service owning an entity to move it to a
// new status.
//
// Example:
//
//	cmd, err := NewRequestTransitionCommand("orders", id, "shipping", "tracking RX-1142")
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, cmd)
type RequestTransitionCommand struct {
	domain       string
	entityID     kernel.UUID
	targetStatus string
	notes        string

	guard guard.ConstructorGuard
}

// NewRequestTransitionCommand validates the request. The domain and target
// are trimmed; notes are optional.
func NewRequestTransitionCommand(
	domain string,
	entityID kernel.UUID,
	targetStatus string,
	notes string,
) (RequestTransitionCommand, error) {
	cmd := RequestTransitionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDomain(domain),
		cmd.setEntityID(entityID),
		cmd.setTargetStatus(targetStatus),
		cmd.setNotes(notes),
	); err != nil {
		return RequestTransitionCommand{}, err
	}

	return cmd, nil
}

func (c RequestTransitionCommand) Validate() error {
	return c.guard.Validate(ErrRequestTransitionCommandIsNotConstructed)
}

func (c RequestTransitionCommand) Domain() string {
	return c.domain
}

func (c RequestTransitionCommand) EntityID() kernel.UUID {
	return c.entityID
}

func (c RequestTransitionCommand) TargetStatus() string {
	return c.targetStatus
}

func (c RequestTransitionCommand) Notes() string {
	return c.notes
}

func (c *RequestTransitionCommand) setDomain(domain string) error {
	domain = strings.TrimSpace(domain)
	if domain == "" {
		return errs.NewValueIsRequiredError("domain")
	}
	c.domain = domain
	return nil
}

func (c *RequestTransitionCommand) setEntityID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.entityID = id
	return nil
}

func (c *RequestTransitionCommand) setTargetStatus(target string) error {
	target = strings.TrimSpace(target)
	if target == "" {
		return errs.NewValueIsRequiredError("targetStatus")
	}
	c.targetStatus = target
	return nil
}

func (c *RequestTransitionCommand) setNotes(notes string) error {
	notes = strings.TrimSpace(notes)
	if n := utf8.RuneCountInString(notes); n > MaxNotesLength {
		return errs.NewValueIsOutOfRangeError("notes", n, 0, MaxNotesLength)
	}
	c.notes = notes
	return nil
}
