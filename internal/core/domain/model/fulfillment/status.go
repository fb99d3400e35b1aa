package fulfillment

import (
	"fmt"

	"merchflow/internal/pkg/errs"
)

// Status is the lifecycle state of a fulfillment record:
// pending → packaging → ready_to_ship → shipped → delivered, with cancelled
// reachable from any non-terminal state.
type Status string

const (
	StatusPending     Status = "pending"
	StatusPackaging   Status = "packaging"
	StatusReadyToShip Status = "ready_to_ship"
	StatusShipped     Status = "shipped"
	StatusDelivered   Status = "delivered"
	StatusCancelled   Status = "cancelled"
)

var allowedTransitions = map[Status][]Status{
	StatusPending:     {StatusPackaging, StatusCancelled},
	StatusPackaging:   {StatusReadyToShip, StatusCancelled},
	StatusReadyToShip: {StatusShipped, StatusCancelled},
	StatusShipped:     {StatusDelivered, StatusCancelled},
	StatusDelivered:   {},
	StatusCancelled:   {},
}

// Validate checks the value is a known fulfillment status.
func (s Status) Validate() error {
	if _, ok := allowedTransitions[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid fulfillment status", string(s)))
	}
	return nil
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	targets, ok := allowedTransitions[s]
	return ok && len(targets) == 0
}

// TransitionTo returns the new status for a legal transition, or an
// InvalidTransitionError.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return "", err
	}
	for _, allowed := range allowedTransitions[s] {
		if allowed == target {
			return target, nil
		}
	}
	return "", errs.NewInvalidTransitionError(string(s), string(target))
}

func (s Status) String() string {
	return string(s)
}
