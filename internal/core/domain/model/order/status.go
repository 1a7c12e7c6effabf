package order

import (
	"fmt"

	"statusflow/internal/core/domain/model/workflow"
	"statusflow/internal/pkg/errs"
)

// WorkflowName is the registry key of the order workflow.
const WorkflowName = "orders"

// Status represents the lifecycle stage of an order.
//
// State transitions (every non-terminal status may also move to Cancelled):
//
//	Draft ──> Pending ──> VendorSourcing <──> VendorNegotiation <──> CustomerQuote
//	                                                                      │
//	                                                                      v
//	                   PartialPayment <──────────────────────────── AwaitingPayment
//	                      │       │                                       │
//	                      │       └───────────> FullPayment <─────────────┘
//	                      v                       │       │
//	                   Refunded <─────────────────┘       v
//	              InProduction <──> QualityControl ──> Shipping ──> Completed
//	              (entered from FullPayment)
//
// The string value is the wire code used by the order service.
type Status string

const (
	// Draft is an order still being assembled by the operator.
	Draft Status = "draft"

	// Pending is a submitted order waiting to be picked up by procurement.
	Pending Status = "pending"

	// VendorSourcing means procurement is looking for a vendor.
	VendorSourcing Status = "vendor_sourcing"

	// VendorNegotiation means price and terms are being agreed with a vendor.
	// Procurement may return to sourcing if the negotiation fails.
	VendorNegotiation Status = "vendor_negotiation"

	// CustomerQuote means a quote has been sent to the customer.
	// A declined quote goes back to negotiation.
	CustomerQuote Status = "customer_quote"

	// AwaitingPayment means the customer accepted the quote.
	AwaitingPayment Status = "awaiting_payment"

	// PartialPayment means part of the amount has been received.
	PartialPayment Status = "partial_payment"

	// FullPayment means the full amount has been received.
	FullPayment Status = "full_payment"

	// InProduction means the vendor is producing the goods.
	InProduction Status = "in_production"

	// QualityControl means the goods are being inspected.
	// Failed inspection sends the order back to production.
	QualityControl Status = "quality_control"

	// Shipping means the goods are on their way to the customer.
	Shipping Status = "shipping"

	// Completed is a final state: the order was delivered.
	Completed Status = "completed"

	// Cancelled is a final state reachable from every non-terminal status.
	Cancelled Status = "cancelled"

	// Refunded is a final state: received payment was returned.
	Refunded Status = "refunded"
)

// Order phases in stepper order.
const (
	PhaseIntake      workflow.Phase = "Intake"
	PhaseProcurement workflow.Phase = "Procurement"
	PhasePayment     workflow.Phase = "Payment"
	PhaseFulfillment workflow.Phase = "Fulfillment"
	PhaseClosed      workflow.Phase = "Closed"
)

// Statuses returns every order status in declaration order.
func Statuses() []Status {
	return []Status{
		Draft,
		Pending,
		VendorSourcing,
		VendorNegotiation,
		CustomerQuote,
		AwaitingPayment,
		PartialPayment,
		FullPayment,
		InProduction,
		QualityControl,
		Shipping,
		Completed,
		Cancelled,
		Refunded,
	}
}

// state returns the table row of s. A status added to the enumeration
// without a row here yields an empty code and fails engine construction.
func (s Status) state() workflow.State[Status] {
	switch s {
	case Draft:
		return workflow.State[Status]{
			Code: s, Label: "Draft", Phase: PhaseIntake, Color: workflow.ColorNeutral,
			Description: "Order is being prepared and has not been submitted yet.",
			Next:        []Status{Pending, Cancelled},
		}
	case Pending:
		return workflow.State[Status]{
			Code: s, Label: "Pending", Phase: PhaseIntake, Color: workflow.ColorWarning,
			Description: "Order was submitted and waits for procurement to start.",
			Next:        []Status{VendorSourcing, Cancelled},
		}
	case VendorSourcing:
		return workflow.State[Status]{
			Code: s, Label: "Vendor Sourcing", Phase: PhaseProcurement, Color: workflow.ColorInfo,
			Description: "Procurement is looking for a vendor able to fulfil the order.",
			Next:        []Status{VendorNegotiation, Cancelled},
		}
	case VendorNegotiation:
		return workflow.State[Status]{
			Code: s, Label: "Vendor Negotiation", Phase: PhaseProcurement, Color: workflow.ColorInfo,
			Description: "Price and terms are being negotiated with the selected vendor.",
			Next:        []Status{CustomerQuote, VendorSourcing, Cancelled},
		}
	case CustomerQuote:
		return workflow.State[Status]{
			Code: s, Label: "Customer Quote", Phase: PhaseProcurement, Color: workflow.ColorInfo,
			Description: "A quote was sent to the customer for approval.",
			Next:        []Status{AwaitingPayment, VendorNegotiation, Cancelled},
		}
	case AwaitingPayment:
		return workflow.State[Status]{
			Code: s, Label: "Awaiting Payment", Phase: PhasePayment, Color: workflow.ColorWarning,
			Description: "The customer accepted the quote and payment is due.",
			Next:        []Status{PartialPayment, FullPayment, Cancelled},
		}
	case PartialPayment:
		return workflow.State[Status]{
			Code: s, Label: "Partial Payment", Phase: PhasePayment, Color: workflow.ColorWarning,
			Description: "Part of the quoted amount has been received.",
			Next:        []Status{FullPayment, Refunded, Cancelled},
		}
	case FullPayment:
		return workflow.State[Status]{
			Code: s, Label: "Full Payment", Phase: PhasePayment, Color: workflow.ColorSuccess,
			Description: "The full quoted amount has been received.",
			Next:        []Status{InProduction, Refunded, Cancelled},
		}
	case InProduction:
		return workflow.State[Status]{
			Code: s, Label: "In Production", Phase: PhaseFulfillment, Color: workflow.ColorInfo,
			Description: "The vendor is producing the ordered goods.",
			Next:        []Status{QualityControl, Cancelled},
		}
	case QualityControl:
		return workflow.State[Status]{
			Code: s, Label: "Quality Control", Phase: PhaseFulfillment, Color: workflow.ColorInfo,
			Description: "Goods are inspected before shipping and may go back to production.",
			Next:        []Status{Shipping, InProduction, Cancelled},
		}
	case Shipping:
		return workflow.State[Status]{
			Code: s, Label: "Shipping", Phase: PhaseFulfillment, Color: workflow.ColorInfo,
			Description: "Goods are on their way to the customer.",
			Next:        []Status{Completed, Cancelled},
		}
	case Completed:
		return workflow.State[Status]{
			Code: s, Label: "Completed", Phase: PhaseClosed, Color: workflow.ColorSuccess, Terminal: true,
			Description: "The order was delivered.",
		}
	case Cancelled:
		return workflow.State[Status]{
			Code: s, Label: "Cancelled", Phase: PhaseClosed, Color: workflow.ColorDanger, Terminal: true,
			Description: "The order was cancelled before delivery.",
		}
	case Refunded:
		return workflow.State[Status]{
			Code: s, Label: "Refunded", Phase: PhaseClosed, Color: workflow.ColorNeutral, Terminal: true,
			Description: "Received payment was returned to the customer.",
		}
	default:
		return workflow.State[Status]{}
	}
}

// Definition returns the order transition table.
func Definition() workflow.Definition[Status] {
	all := Statuses()
	states := make([]workflow.State[Status], 0, len(all))
	for _, s := range all {
		states = append(states, s.state())
	}
	return workflow.Definition[Status]{
		Name:    WorkflowName,
		Phases:  []workflow.Phase{PhaseIntake, PhaseProcurement, PhasePayment, PhaseFulfillment, PhaseClosed},
		States:  states,
		Initial: []Status{Draft, Pending},
		Escape:  Cancelled,
	}
}

var engine = workflow.MustNew(Definition())

// Workflow returns the order workflow engine.
func Workflow() *workflow.Engine {
	return engine
}

// ParseStatus converts a wire code into a Status.
//
// Codes are matched case-insensitively and surrounding whitespace is ignored.
// Unknown codes return a ValueIsInvalidError; use Workflow().StatusInfo when
// an unknown code must still be rendered.
func ParseStatus(code string) (Status, error) {
	canonical, err := engine.Canonical(code)
	if err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause("status", err)
	}
	return Status(canonical), nil
}

// Validate checks that s belongs to the order enumeration.
func (s Status) Validate() error {
	if code, err := engine.Canonical(string(s)); err != nil || code != string(s) {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not an order status", string(s)))
	}
	return nil
}

// String returns the wire code.
func (s Status) String() string {
	return string(s)
}

// Info returns the display record, or the Unknown fallback for invalid values.
func (s Status) Info() workflow.StatusInfo {
	return engine.StatusInfo(string(s))
}

// Next returns the statuses reachable in one step, in the order actions
// should be offered.
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

// IsTerminal reports whether s ends the order lifecycle.
func (s Status) IsTerminal() bool {
	return engine.IsTerminal(string(s))
}

// TransitionTo returns target if the table allows moving there from s.
//
// Returns:
//   - (target, nil) on a declared transition
//   - ("", error) if s is terminal, unknown, or target is not a successor
func (s Status) TransitionTo(target Status) (Status, error) {
	if !s.CanTransitionTo(target) {
		return "", errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s cannot transition to %s", s.String(), target.String()),
		)
	}
	return target, nil
}
