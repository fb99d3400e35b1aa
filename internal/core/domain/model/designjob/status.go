package designjob

import (
	"fmt"

	"merchflow/internal/pkg/errs"
)

// Status is the lifecycle state of a design job.
//
//	assigned → in_progress → pending_approval → approved
//	                              │
//	                              └→ rejected → in_progress
//
// cancelled is reachable from every non-terminal state so cascade-cancel of
// a parent order can close out the job.
type Status string

const (
	StatusAssigned        Status = "assigned"
	StatusInProgress      Status = "in_progress"
	StatusPendingApproval Status = "pending_approval"
	StatusApproved        Status = "approved"
	StatusRejected        Status = "rejected"
	StatusCancelled       Status = "cancelled"
)

var allowedTransitions = map[Status][]Status{
	StatusAssigned:        {StatusInProgress, StatusCancelled},
	StatusInProgress:      {StatusPendingApproval, StatusCancelled},
	StatusPendingApproval: {StatusApproved, StatusRejected, StatusCancelled},
	StatusRejected:        {StatusInProgress, StatusCancelled},
	StatusApproved:        {},
	StatusCancelled:       {},
}

// Validate checks the value is a known design job status.
func (s Status) Validate() error {
	if _, ok := allowedTransitions[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid design job status", string(s)))
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
