package ports

import "time"

// TransitionOutcome classifies how a transition request ended.
type TransitionOutcome string

const (
	OutcomeApplied     TransitionOutcome = "applied"
	OutcomeNotAllowed  TransitionOutcome = "not_allowed"
	OutcomeInFlight    TransitionOutcome = "in_flight"
	OutcomeRejected    TransitionOutcome = "rejected"
	OutcomeUnavailable TransitionOutcome = "unavailable"
	OutcomeNotFound    TransitionOutcome = "not_found"
)

// TransitionObserver receives one notification per handled transition request.
type TransitionObserver interface {
	ObserveTransition(domain string, outcome TransitionOutcome, elapsed time.Duration)
}
