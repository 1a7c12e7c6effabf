package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"statusflow/internal/core/domain/services"
	"statusflow/internal/core/ports"
	"statusflow/internal/pkg/errs"
)

var (
	// ErrTransitionNotAllowed is returned, without calling the owning service,
	// when the target is not a declared successor of the current status.
	ErrTransitionNotAllowed = services.ErrTransitionNotAllowed

	// ErrTransitionInFlight is returned when a request for the same entity is
	// still pending.
	ErrTransitionInFlight = errors.New("transition already in flight")
)

// TransitionRequestError reports that the owning service did not apply a
// transition. Cause wraps ports.ErrTransitionRejected for business refusals
// and ports.ErrBackendUnavailable when no decision was made.
type TransitionRequestError struct {
	Ref          ports.EntityRef
	TargetStatus string
	Cause        error
}

func (e *TransitionRequestError) Error() string {
	return fmt.Sprintf("transition of %s to %s failed: %v", e.Ref, e.TargetStatus, e.Cause)
}

func (e *TransitionRequestError) Unwrap() error {
	return e.Cause
}

// Rejected reports whether the owning service refused the transition.
func (e *TransitionRequestError) Rejected() bool {
	return errors.Is(e.Cause, ports.ErrTransitionRejected)
}

// TransitionResult is the state of the entity after a request.
//
// Entry always comes from a fetch made after the request was answered, never
// from the requested target. Resynced is false when that fetch failed and
// Entry holds the last known state instead.
type TransitionResult struct {
	Entry    ports.BoardEntry
	Action   services.Action
	Resynced bool
}

// RequestTransitionCommandHandler runs the transition request flow:
// single-flight per entity, fresh read, local pre-flight check, backend call,
// and a resync whatever the backend answered.
type RequestTransitionCommandHandler struct {
	workflows WorkflowResolver
	backends  ports.StatusBackends
	board     ports.EntityBoard
	syncer    StatusSyncer
	observer  ports.TransitionObserver
	planner   services.TransitionPlanner
	logger    *slog.Logger
}

func NewRequestTransitionCommandHandler(
	workflows WorkflowResolver,
	backends ports.StatusBackends,
	board ports.EntityBoard,
	syncer StatusSyncer,
	observer ports.TransitionObserver,
	logger *slog.Logger,
) (RequestTransitionCommandHandler, error) {
	switch {
	case workflows == nil:
		return RequestTransitionCommandHandler{}, errs.NewValueIsRequiredError("workflows")
	case backends == nil:
		return RequestTransitionCommandHandler{}, errs.NewValueIsRequiredError("backends")
	case board == nil:
		return RequestTransitionCommandHandler{}, errs.NewValueIsRequiredError("board")
	case syncer == nil:
		return RequestTransitionCommandHandler{}, errs.NewValueIsRequiredError("syncer")
	case observer == nil:
		return RequestTransitionCommandHandler{}, errs.NewValueIsRequiredError("observer")
	case logger == nil:
		return RequestTransitionCommandHandler{}, errs.NewValueIsRequiredError("logger")
	}
	return RequestTransitionCommandHandler{
		workflows: workflows,
		backends:  backends,
		board:     board,
		syncer:    syncer,
		observer:  observer,
		planner:   services.NewTransitionPlanner(),
		logger:    logger.With("component", "request_transition"),
	}, nil
}

func (h RequestTransitionCommandHandler) Handle(
	ctx context.Context,
	command RequestTransitionCommand,
) (TransitionResult, error) {
	if err := command.Validate(); err != nil {
		return TransitionResult{}, err
	}

	started := time.Now()
	result, outcome, err := h.handle(ctx, command)
	h.observer.ObserveTransition(h.domainLabel(command.Domain()), outcome, time.Since(started))

	log := h.logger.With(
		"domain", command.Domain(),
		"entity_id", command.EntityID().String(),
		"target", command.TargetStatus(),
		"outcome", string(outcome),
	)
	if err != nil {
		log.WarnContext(ctx, "transition request failed", "error", err)
	} else {
		log.InfoContext(ctx, "transition applied", "status", result.Entry.Status)
	}
	return result, err
}

func (h RequestTransitionCommandHandler) handle(
	ctx context.Context,
	command RequestTransitionCommand,
) (TransitionResult, ports.TransitionOutcome, error) {
	engine, err := h.workflows.Engine(command.Domain())
	if err != nil {
		return TransitionResult{}, ports.OutcomeNotFound, err
	}
	backend, err := h.backends.Backend(engine.Name())
	if err != nil {
		return TransitionResult{}, ports.OutcomeNotFound, err
	}

	ref := ports.EntityRef{Domain: engine.Name(), ID: command.EntityID()}
	if !h.board.Acquire(ref) {
		entry, _ := h.board.Get(ref)
		return TransitionResult{Entry: entry}, ports.OutcomeInFlight, fmt.Errorf("%w: %s", ErrTransitionInFlight, ref)
	}
	defer h.board.Release(ref)

	// Once the slot is held the request runs to completion and resyncs even
	// if the caller goes away. The HTTP client timeout still bounds it.
	ctx = context.WithoutCancel(ctx)

	current, err := h.syncer.Sync(ctx, ref)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return TransitionResult{}, ports.OutcomeNotFound, err
		}
		entry, _ := h.board.Get(ref)
		return TransitionResult{Entry: entry}, ports.OutcomeUnavailable, &TransitionRequestError{
			Ref: ref, TargetStatus: command.TargetStatus(), Cause: err,
		}
	}

	action, err := h.planner.Check(engine, current.Status, command.TargetStatus())
	if err != nil {
		return TransitionResult{Entry: current, Resynced: true}, ports.OutcomeNotAllowed, err
	}

	_, requestErr := backend.RequestTransition(ctx, ports.TransitionRequest{
		EntityID:     command.EntityID(),
		TargetStatus: action.Target.Code,
		Notes:        command.Notes(),
	})

	result := TransitionResult{Action: action, Resynced: true}
	result.Entry, err = h.syncer.Resync(ctx, ref)
	if err != nil {
		result.Resynced = false
		result.Entry, _ = h.board.Get(ref)
		h.logger.WarnContext(ctx, "resync after transition failed", "entity", ref.String(), "error", err)
	}

	if requestErr != nil {
		outcome := ports.OutcomeUnavailable
		switch {
		case errors.Is(requestErr, ports.ErrTransitionRejected):
			outcome = ports.OutcomeRejected
		case errors.Is(requestErr, errs.ErrObjectNotFound):
			return result, ports.OutcomeNotFound, requestErr
		}
		return result, outcome, &TransitionRequestError{
			Ref: ref, TargetStatus: action.Target.Code, Cause: requestErr,
		}
	}
	return result, ports.OutcomeApplied, nil
}

// domainLabel keeps metric label values bounded to registered workflows.
func (h RequestTransitionCommandHandler) domainLabel(domain string) string {
	engine, err := h.workflows.Engine(domain)
	if err != nil {
		return "unknown"
	}
	return engine.Name()
}
