package refund

import (
	"fmt"

	"statusflow/internal/core/domain/model/workflow"
	"statusflow/internal/pkg/errs"
)

// WorkflowName registers the refund workflow and selects its backend.
const WorkflowName = "refunds"

// Status represents the lifecycle stage of a refund request.
//
//	Requested ──> UnderReview ──> Approved ──> Processing ──> Completed
//	                   │                        │    ^
//	                   v                        v    │
//	                Rejected                    Failed
//
// Every non-terminal status may also move to Cancelled.
type Status string

const (
	Requested   Status = "requested"
	UnderReview Status = "under_review"
	Approved    Status = "approved"
	Processing  Status = "processing"
	// Failed is a payout error; the payout may be retried.
	Failed    Status = "failed"
	Completed Status = "completed"
	Rejected  Status = "rejected"
	Cancelled Status = "cancelled"
)

const (
	PhaseRequest workflow.Phase = "Request"
	PhaseReview  workflow.Phase = "Review"
	PhasePayout  workflow.Phase = "Payout"
	PhaseClosed  workflow.Phase = "Closed"
)

// Statuses returns every refund status in declaration order.
func Statuses() []Status {
	return []Status{Requested, UnderReview, Approved, Processing, Failed, Completed, Rejected, Cancelled}
}

func (s Status) state() workflow.State[Status] {
	switch s {
	case Requested:
		return workflow.State[Status]{
			Code: s, Label: "Requested", Phase: PhaseRequest, Color: workflow.ColorWarning,
			Description: "The customer asked for a refund.",
			Next:        []Status{UnderReview, Cancelled},
		}
	case UnderReview:
		return workflow.State[Status]{
			Code: s, Label: "Under Review", Phase: PhaseReview, Color: workflow.ColorInfo,
			Description: "An operator is checking the request against the order and payments.",
			Next:        []Status{Approved, Rejected, Cancelled},
		}
	case Approved:
		return workflow.State[Status]{
			Code: s, Label: "Approved", Phase: PhaseReview, Color: workflow.ColorSuccess,
			Description: "The refund was approved and waits for payout.",
			Next:        []Status{Processing, Cancelled},
		}
	case Processing:
		return workflow.State[Status]{
			Code: s, Label: "Processing", Phase: PhasePayout, Color: workflow.ColorInfo,
			Description: "The payout is being executed.",
			Next:        []Status{Completed, Failed, Cancelled},
		}
	case Failed:
		return workflow.State[Status]{
			Code: s, Label: "Payout Failed", Phase: PhasePayout, Color: workflow.ColorDanger,
			Description: "The payout did not go through and can be retried.",
			Next:        []Status{Processing, Cancelled},
		}
	case Completed:
		return workflow.State[Status]{
			Code: s, Label: "Completed", Phase: PhaseClosed, Color: workflow.ColorSuccess, Terminal: true,
			Description: "The money was returned to the customer.",
		}
	case Rejected:
		return workflow.State[Status]{
			Code: s, Label: "Rejected", Phase: PhaseClosed, Color: workflow.ColorDanger, Terminal: true,
			Description: "The request was declined after review.",
		}
	case Cancelled:
		return workflow.State[Status]{
			Code: s, Label: "Cancelled", Phase: PhaseClosed, Color: workflow.ColorNeutral, Terminal: true,
			Description: "The request was withdrawn.",
		}
	default:
		return workflow.State[Status]{}
	}
}

// Definition returns the refund transition table.
func Definition() workflow.Definition[Status] {
	all := Statuses()
	states := make([]workflow.State[Status], 0, len(all))
	for _, s := range all {
		states = append(states, s.state())
	}
	return workflow.Definition[Status]{
		Name:    WorkflowName,
		Phases:  []workflow.Phase{PhaseRequest, PhaseReview, PhasePayout, PhaseClosed},
		States:  states,
		Initial: []Status{Requested},
		Escape:  Cancelled,
	}
}

var engine = workflow.MustNew(Definition())

// Workflow returns the refund engine, built once at package init.
//
// Example:
//
//	refund.Workflow().ValidNextStatuses("processing") // [completed failed cancelled]
func Workflow() *workflow.Engine {
	return engine
}

// ParseStatus normalizes code and returns the matching Status.
// Returns errs.ValueIsInvalidError for codes the workflow does not declare.
func ParseStatus(code string) (Status, error) {
	canonical, err := engine.Canonical(code)
	if err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause("status", err)
	}
	return Status(canonical), nil
}

// Validate accepts only declared, already normalized codes.
func (s Status) Validate() error {
	if code, err := engine.Canonical(string(s)); err != nil || code != string(s) {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a refund status", string(s)))
	}
	return nil
}

// String returns the wire code.
func (s Status) String() string {
	return string(s)
}

// Info returns the display record, or the Unknown fallback.
func (s Status) Info() workflow.StatusInfo {
	return engine.StatusInfo(string(s))
}

// Next returns the direct successors in declaration order.
func (s Status) Next() []Status {
	codes := engine.ValidNextStatuses(string(s))
	next := make([]Status, 0, len(codes))
	for _, c := range codes {
		next = append(next, Status(c))
	}
	return next
}

// CanTransitionTo reports whether target is a direct successor of s.
func (s Status) CanTransitionTo(target Status) bool {
	return engine.CanTransition(string(s), string(target))
}

// IsTerminal reports whether s ends the refund lifecycle.
func (s Status) IsTerminal() bool {
	return engine.IsTerminal(string(s))
}
