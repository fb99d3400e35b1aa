package commands

import (
	"errors"

	"merchflow/internal/core/domain/model/access"
	"merchflow/internal/core/domain/model/kernel"
	"merchflow/internal/core/domain/model/order"
	"merchflow/internal/pkg/guard"
)

var ErrTransitionOrderCommandIsNotConstructed = errors.New(
	"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
)

// TransitionOrderCommand represents a request to move one order to a target
// lifecycle state, optionally appending transition notes.
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	actor   access.Context
	orderID kernel.UUID
	target  order.Status
	notes   string

	guard guard.ConstructorGuard
}

// NewTransitionOrderCommand creates a command to transition an order.
// The target must name a known order status; whether the transition is legal
// from the order's current state is decided by the aggregate.
func NewTransitionOrderCommand(actor access.Context, orderID kernel.UUID, target order.Status, notes string) (TransitionOrderCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		target.Validate(),
	); err != nil {
		return TransitionOrderCommand{}, err
	}

	return TransitionOrderCommand{
		actor:   actor,
		orderID: orderID,
		target:  target,
		notes:   notes,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

// Actor returns the acting user's resolved context.
func (c TransitionOrderCommand) Actor() access.Context {
	return c.actor
}

// OrderID returns the order to transition.
func (c TransitionOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the requested lifecycle state.
func (c TransitionOrderCommand) Target() order.Status {
	return c.target
}

// Notes returns the transition notes, possibly empty.
func (c TransitionOrderCommand) Notes() string {
	return c.notes
}
