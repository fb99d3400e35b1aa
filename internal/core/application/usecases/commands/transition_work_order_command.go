package commands

import (
	"errors"

	"merchflow/internal/core/domain/model/access"
	"merchflow/internal/core/domain/model/kernel"
	"merchflow/internal/core/domain/model/workorder"
	"merchflow/internal/pkg/errs"
	"merchflow/internal/pkg/guard"
)

var ErrTransitionWorkOrderCommandIsNotConstructed = errors.New(
	"TransitionWorkOrderCommand must be created via NewTransitionWorkOrderCommand constructor",
)

// TransitionWorkOrderCommand represents a request to move one work order to
// a target lifecycle state, optionally recording the produced quantity.
type TransitionWorkOrderCommand struct { //nolint:recvcheck //using for validation
	actor          access.Context
	workOrderID    kernel.UUID
	target         workorder.Status
	actualQuantity *int

	guard guard.ConstructorGuard
}

// NewTransitionWorkOrderCommand creates a command to transition a work order.
// actualQuantity may be nil when the produced count is not being reported.
func NewTransitionWorkOrderCommand(actor access.Context, workOrderID kernel.UUID, target workorder.Status, actualQuantity *int) (TransitionWorkOrderCommand, error) {
	if err := errors.Join(
		workOrderID.Validate(),
		target.Validate(),
	); err != nil {
		return TransitionWorkOrderCommand{}, err
	}

	if actualQuantity != nil && *actualQuantity < 0 {
		return TransitionWorkOrderCommand{}, errs.NewValueIsInvalidError("actual quantity")
	}

	return TransitionWorkOrderCommand{
		actor:          actor,
		workOrderID:    workOrderID,
		target:         target,
		actualQuantity: actualQuantity,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c TransitionWorkOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionWorkOrderCommandIsNotConstructed)
}

// Actor returns the acting user's resolved context.
func (c TransitionWorkOrderCommand) Actor() access.Context {
	return c.actor
}

// WorkOrderID returns the work order to transition.
func (c TransitionWorkOrderCommand) WorkOrderID() kernel.UUID {
	return c.workOrderID
}

// Target returns the requested lifecycle state.
func (c TransitionWorkOrderCommand) Target() workorder.Status {
	return c.target
}

// ActualQuantity returns the reported produced quantity, or nil.
func (c TransitionWorkOrderCommand) ActualQuantity() *int {
	return c.actualQuantity
}
