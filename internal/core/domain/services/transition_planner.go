package services

import (
	"errors"
	"fmt"

	"statusflow/internal/core/domain/model/workflow"
)

// ErrTransitionNotAllowed is returned when the requested target is not a
// declared successor of the current status.
var ErrTransitionNotAllowed = errors.New("transition not allowed")

// ActionKind classifies an action relative to the current status.
type ActionKind string

const (
	// ActionForward moves to a status declared later in the workflow.
	ActionForward ActionKind = "forward"

	// ActionBackward moves to a status declared earlier, such as a
	// renegotiation or a rework loop.
	ActionBackward ActionKind = "backward"

	// ActionEscape moves to the escape status of the workflow. Dashboards
	// render it as a destructive action.
	ActionEscape ActionKind = "escape"
)

// Action is one legal move out of a status.
type Action struct {
	Target workflow.StatusInfo
	Kind   ActionKind
}

// TransitionPlanner derives operator actions from a workflow engine.
//
// Business rules:
//   - actions keep the declared transition order
//   - terminal and unknown statuses offer no actions
//   - the planner never calls the owning service; it only reports legality
type TransitionPlanner struct{}

func NewTransitionPlanner() TransitionPlanner {
	return TransitionPlanner{}
}

// Actions returns the legal moves out of current.
func (p TransitionPlanner) Actions(engine *workflow.Engine, current string) []Action {
	from := engine.Position(current)
	next := engine.ValidNextStatuses(current)
	actions := make([]Action, 0, len(next))
	for _, code := range next {
		actions = append(actions, Action{
			Target: engine.StatusInfo(code),
			Kind:   p.kind(engine, from, code),
		})
	}
	return actions
}

// Check returns the planned action for current -> target, or
// ErrTransitionNotAllowed when the table does not declare it.
func (p TransitionPlanner) Check(engine *workflow.Engine, current, target string) (Action, error) {
	if !engine.CanTransition(current, target) {
		switch {
		case !engine.IsKnown(current):
			return Action{}, fmt.Errorf("%w: current status %q is unknown to %s",
				ErrTransitionNotAllowed, current, engine.Name())
		case engine.IsTerminal(current):
			return Action{}, fmt.Errorf("%w: %s is terminal in %s",
				ErrTransitionNotAllowed, engine.StatusInfo(current).Code, engine.Name())
		default:
			return Action{}, fmt.Errorf("%w: %s -> %q in %s",
				ErrTransitionNotAllowed, engine.StatusInfo(current).Code, target, engine.Name())
		}
	}
	code := engine.StatusInfo(target).Code
	return Action{
		Target: engine.StatusInfo(code),
		Kind:   p.kind(engine, engine.Position(current), code),
	}, nil
}

func (p TransitionPlanner) kind(engine *workflow.Engine, from int, target string) ActionKind {
	switch {
	case target == engine.EscapeStatus():
		return ActionEscape
	case engine.Position(target) > from:
		return ActionForward
	default:
		return ActionBackward
	}
}
