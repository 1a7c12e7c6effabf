package workflow

import (
	"errors"
	"fmt"
	"slices"
)

// UnknownLabel is the label of the fallback record returned for codes that are
// not part of a workflow.
const UnknownLabel = "Unknown"

// StatusInfo is the presentation record of a status.
//
// Known is false only for the fallback record; Code then echoes the raw input.
type StatusInfo struct {
	Code        string
	Label       string
	Phase       Phase
	Description string
	Color       Color
	Terminal    bool
	Known       bool
}

// Engine answers status and transition questions for one workflow. It is
// immutable after construction and safe for concurrent use.
type Engine struct {
	name       string
	phases     []Phase
	phaseIndex map[Phase]int
	statuses   []StatusInfo
	index      map[string]int
	next       map[string][]string
	initial    []string
	escape     string
}

// New compiles a definition into an engine. All invariant violations are
// reported together.
func New[S ~string](def Definition[S]) (*Engine, error) {
	if err := def.validate(); err != nil {
		return nil, fmt.Errorf("workflow %q: %w", def.Name, err)
	}

	e := &Engine{
		name:       def.Name,
		phases:     slices.Clone(def.Phases),
		phaseIndex: make(map[Phase]int, len(def.Phases)),
		statuses:   make([]StatusInfo, 0, len(def.States)),
		index:      make(map[string]int, len(def.States)),
		next:       make(map[string][]string, len(def.States)),
		initial:    make([]string, 0, len(def.Initial)),
		escape:     string(def.Escape),
	}
	for i, p := range def.Phases {
		e.phaseIndex[p] = i
	}
	for i, st := range def.States {
		code := string(st.Code)
		e.index[code] = i
		e.statuses = append(e.statuses, StatusInfo{
			Code:        code,
			Label:       st.Label,
			Phase:       st.Phase,
			Description: st.Description,
			Color:       st.Color,
			Terminal:    st.Terminal,
			Known:       true,
		})
		targets := make([]string, 0, len(st.Next))
		for _, t := range st.Next {
			targets = append(targets, string(t))
		}
		e.next[code] = targets
	}
	for _, code := range def.Initial {
		e.initial = append(e.initial, string(code))
	}
	return e, nil
}

// MustNew is New for package-level tables. It panics on an invalid definition.
func MustNew[S ~string](def Definition[S]) *Engine {
	e, err := New(def)
	if err != nil {
		panic(err)
	}
	return e
}

// Name returns the workflow's domain name, as registered and as used in
// backend lookups and metric labels.
func (e *Engine) Name() string {
	return e.name
}

// StatusInfo returns the record for code. Unknown codes, including the empty
// string, get the neutral "Unknown" fallback instead of an error.
func (e *Engine) StatusInfo(code string) StatusInfo {
	if i, ok := e.lookup(code); ok {
		return e.statuses[i]
	}
	return StatusInfo{
		Code:  code,
		Label: UnknownLabel,
		Color: ColorNeutral,
	}
}

// ValidNextStatuses returns the statuses reachable from code in one step, in
// declaration order. Terminal and unknown codes yield an empty slice. The
// result is a copy the caller may modify.
func (e *Engine) ValidNextStatuses(code string) []string {
	i, ok := e.lookup(code)
	if !ok {
		return []string{}
	}
	return slices.Clone(e.next[e.statuses[i].Code])
}

// CanTransition reports whether to is a declared direct successor of from.
func (e *Engine) CanTransition(from, to string) bool {
	i, ok := e.lookup(from)
	if !ok {
		return false
	}
	return slices.Contains(e.next[e.statuses[i].Code], normalize(to))
}

// IsTerminal reports whether no transition may leave code.
//
// Unknown codes are not terminal, so a record carrying a legacy status stays
// actionable instead of being silently locked.
func (e *Engine) IsTerminal(code string) bool {
	return e.StatusInfo(code).Terminal
}

// IsKnown reports whether code, after normalization, is declared by the
// workflow.
func (e *Engine) IsKnown(code string) bool {
	_, ok := e.lookup(code)
	return ok
}

// Statuses returns every status in declaration order.
func (e *Engine) Statuses() []StatusInfo {
	return slices.Clone(e.statuses)
}

// Phases returns the phases in stepper order.
func (e *Engine) Phases() []Phase {
	return slices.Clone(e.phases)
}

// Position returns the declaration index of code, or -1 for unknown codes.
func (e *Engine) Position(code string) int {
	i, ok := e.lookup(code)
	if !ok {
		return -1
	}
	return i
}

// PhaseIndex returns the position of the code's phase in the ordered phase
// list, or -1 for unknown codes.
func (e *Engine) PhaseIndex(code string) int {
	i, ok := e.lookup(code)
	if !ok {
		return -1
	}
	return e.phaseIndex[e.statuses[i].Phase]
}

// InitialStatuses returns the statuses a new entity may start in. Which one
// applies depends on the creation path and is decided by the caller.
func (e *Engine) InitialStatuses() []string {
	return slices.Clone(e.initial)
}

// IsInitial reports whether code is one of InitialStatuses.
func (e *Engine) IsInitial(code string) bool {
	return slices.Contains(e.initial, normalize(code))
}

// EscapeStatus returns the terminal status reachable from every transient one.
func (e *Engine) EscapeStatus() string {
	return e.escape
}

// Canonical returns the normalized declared code, or an error for codes the
// workflow does not know.
func (e *Engine) Canonical(code string) (string, error) {
	i, ok := e.lookup(code)
	if !ok {
		return "", fmt.Errorf("%w: %q in workflow %s", ErrStatusUnknown, code, e.name)
	}
	return e.statuses[i].Code, nil
}

// ErrStatusUnknown is returned by Canonical for codes outside the workflow.
var ErrStatusUnknown = errors.New("workflow: unknown status")

func (e *Engine) lookup(code string) (int, bool) {
	i, ok := e.index[normalize(code)]
	return i, ok
}
