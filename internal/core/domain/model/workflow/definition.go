package workflow

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNameRequired                = errors.New("workflow: name required")
	ErrNoStatuses                  = errors.New("workflow: definition requires at least one status")
	ErrStatusCodeRequired          = errors.New("workflow: status code required")
	ErrStatusCodeNotNormalized     = errors.New("workflow: status code must be lower case without surrounding spaces")
	ErrDuplicateStatus             = errors.New("workflow: duplicate status")
	ErrLabelRequired               = errors.New("workflow: status label required")
	ErrColorInvalid                = errors.New("workflow: status color invalid")
	ErrPhaseUnknown                = errors.New("workflow: status references undeclared phase")
	ErrDuplicatePhase              = errors.New("workflow: duplicate phase")
	ErrTerminalHasTransitions      = errors.New("workflow: terminal status declares transitions")
	ErrTransientWithoutTransitions = errors.New("workflow: non-terminal status declares no transitions")
	ErrTransitionTargetUnknown     = errors.New("workflow: transition references unknown status")
	ErrSelfTransition              = errors.New("workflow: status transitions to itself")
	ErrDuplicateTransition         = errors.New("workflow: duplicate transition")
	ErrEscapeMissing               = errors.New("workflow: escape status not reachable")
	ErrInitialInvalid              = errors.New("workflow: invalid initial status")
)

// State declares one status of a workflow: its metadata and the ordered list
// of statuses reachable from it in one step. Next order is significant: it is
// the order in which actions are offered to the operator.
type State[S ~string] struct {
	Code        S
	Label       string
	Phase       Phase
	Description string
	Color       Color
	Terminal    bool
	Next        []S
}

// Definition is the declarative source of an Engine.
//
// Escape names the terminal status every non-terminal status must be able to
// reach directly (cancellation). Initial lists the statuses an entity may be
// created in; the caller picks one.
type Definition[S ~string] struct {
	Name    string
	Phases  []Phase
	States  []State[S]
	Initial []S
	Escape  S
}

// validate reports every violated invariant joined into a single error.
func (d Definition[S]) validate() error {
	var problems []error
	if strings.TrimSpace(d.Name) == "" {
		problems = append(problems, ErrNameRequired)
	}
	if len(d.States) == 0 {
		return errors.Join(append(problems, ErrNoStatuses)...)
	}

	phases := make(map[Phase]struct{}, len(d.Phases))
	for _, p := range d.Phases {
		if _, dup := phases[p]; dup {
			problems = append(problems, fmt.Errorf("%w: %s", ErrDuplicatePhase, p))
		}
		phases[p] = struct{}{}
	}

	declared := make(map[S]State[S], len(d.States))
	for i, st := range d.States {
		code := string(st.Code)
		switch {
		case code == "":
			problems = append(problems, fmt.Errorf("%w at index %d", ErrStatusCodeRequired, i))
			continue
		case normalize(code) != code:
			problems = append(problems, fmt.Errorf("%w: %q", ErrStatusCodeNotNormalized, code))
		}
		if _, dup := declared[st.Code]; dup {
			problems = append(problems, fmt.Errorf("%w: %s", ErrDuplicateStatus, code))
			continue
		}
		declared[st.Code] = st

		if strings.TrimSpace(st.Label) == "" {
			problems = append(problems, fmt.Errorf("%w: %s", ErrLabelRequired, code))
		}
		if err := st.Color.Validate(); err != nil {
			problems = append(problems, fmt.Errorf("%w: %s uses %q", ErrColorInvalid, code, string(st.Color)))
		}
		if _, ok := phases[st.Phase]; !ok {
			problems = append(problems, fmt.Errorf("%w: %s uses %q", ErrPhaseUnknown, code, string(st.Phase)))
		}
	}

	for _, st := range d.States {
		if _, ok := declared[st.Code]; !ok || st.Code == "" {
			continue
		}
		problems = append(problems, d.validateTransitions(st, declared)...)
	}

	escape, ok := declared[d.Escape]
	switch {
	case !ok:
		problems = append(problems, fmt.Errorf("%w: %q is not declared", ErrEscapeMissing, string(d.Escape)))
	case !escape.Terminal:
		problems = append(problems, fmt.Errorf("%w: %s is not terminal", ErrEscapeMissing, string(d.Escape)))
	}

	if len(d.Initial) == 0 {
		problems = append(problems, fmt.Errorf("%w: none declared", ErrInitialInvalid))
	}
	for _, code := range d.Initial {
		st, ok := declared[code]
		switch {
		case !ok:
			problems = append(problems, fmt.Errorf("%w: %q is not declared", ErrInitialInvalid, string(code)))
		case st.Terminal:
			problems = append(problems, fmt.Errorf("%w: %s is terminal", ErrInitialInvalid, string(code)))
		}
	}

	return errors.Join(problems...)
}

func (d Definition[S]) validateTransitions(st State[S], declared map[S]State[S]) []error {
	var problems []error
	code := string(st.Code)

	if st.Terminal {
		if len(st.Next) > 0 {
			problems = append(problems, fmt.Errorf("%w: %s", ErrTerminalHasTransitions, code))
		}
		return problems
	}
	if len(st.Next) == 0 {
		return append(problems, fmt.Errorf("%w: %s", ErrTransientWithoutTransitions, code))
	}

	seen := make(map[S]struct{}, len(st.Next))
	reachesEscape := false
	for _, target := range st.Next {
		if target == st.Code {
			problems = append(problems, fmt.Errorf("%w: %s", ErrSelfTransition, code))
			continue
		}
		if _, ok := declared[target]; !ok {
			problems = append(problems, fmt.Errorf("%w: %s -> %q", ErrTransitionTargetUnknown, code, string(target)))
			continue
		}
		if _, dup := seen[target]; dup {
			problems = append(problems, fmt.Errorf("%w: %s -> %s", ErrDuplicateTransition, code, string(target)))
			continue
		}
		seen[target] = struct{}{}
		if target == d.Escape {
			reachesEscape = true
		}
	}
	if !reachesEscape {
		problems = append(problems, fmt.Errorf("%w: %s cannot reach %s", ErrEscapeMissing, code, string(d.Escape)))
	}
	return problems
}

// normalize folds a raw status code the way stored data may spell it.
func normalize(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}
