package order

import (
	"fmt"

	"merchflow/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with an explicit allowed-transition table so
// orders follow the correct business workflow.
//
// State transitions:
//
//	draft → pending → confirmed → in_design → in_production →
//	packaging → shipped → delivered → completed
//
// with cancelled reachable from every non-terminal state. Both completed and
// cancelled are terminal: no further transitions are accepted.
type Status string

const (
	StatusDraft        Status = "draft"
	StatusPending      Status = "pending"
	StatusConfirmed    Status = "confirmed"
	StatusInDesign     Status = "in_design"
	StatusInProduction Status = "in_production"
	StatusPackaging    Status = "packaging"
	StatusShipped      Status = "shipped"
	StatusDelivered    Status = "delivered"
	StatusCompleted    Status = "completed"
	StatusCancelled    Status = "cancelled"
)

// allowedTransitions is the single source of truth for legal order state
// changes. A requested transition is accepted only if (current, requested)
// appears here.
var allowedTransitions = map[Status][]Status{
	StatusDraft:        {StatusPending, StatusCancelled},
	StatusPending:      {StatusConfirmed, StatusCancelled},
	StatusConfirmed:    {StatusInDesign, StatusCancelled},
	StatusInDesign:     {StatusInProduction, StatusCancelled},
	StatusInProduction: {StatusPackaging, StatusCancelled},
	StatusPackaging:    {StatusShipped, StatusCancelled},
	StatusShipped:      {StatusDelivered, StatusCancelled},
	StatusDelivered:    {StatusCompleted, StatusCancelled},
	StatusCompleted:    {},
	StatusCancelled:    {},
}

// Validate checks if the Status value is one of the known order states.
func (s Status) Validate() error {
	if _, ok := allowedTransitions[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid order status", string(s)))
	}
	return nil
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	targets, ok := allowedTransitions[s]
	return ok && len(targets) == 0
}

// CanTransitionTo reports whether the (current, target) pair appears in the
// allowed-transition table. A same-state pair is not a transition and
// returns false; callers treat it as an idempotent no-op instead.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionTo returns the new status when the transition is legal, or an
// InvalidTransitionError carrying the (current, requested) pair otherwise.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return "", err
	}

	if !s.CanTransitionTo(target) {
		return "", errs.NewInvalidTransitionError(string(s), string(target))
	}

	return target, nil
}

func (s Status) String() string {
	return string(s)
}
