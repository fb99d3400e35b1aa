package commands

import (
	"errors"

	"merchflow/internal/core/domain/model/access"
	"merchflow/internal/core/domain/model/kernel"
	"merchflow/internal/pkg/guard"
)

var ErrDeleteOrderCommandIsNotConstructed = errors.New(
	"DeleteOrderCommand must be created via NewDeleteOrderCommand constructor",
)

// DeleteOrderCommand represents a request to remove an order. Without
// cascade, an order with live dependents is rejected. With cascade, the
// order and its non-terminal dependents are cancelled instead of removed;
// an order that has dependents is never physically deleted.
type DeleteOrderCommand struct { //nolint:recvcheck //using for validation
	actor   access.Context
	orderID kernel.UUID
	cascade bool

	guard guard.ConstructorGuard
}

// NewDeleteOrderCommand creates a command to delete an order.
func NewDeleteOrderCommand(actor access.Context, orderID kernel.UUID, cascade bool) (DeleteOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return DeleteOrderCommand{}, err
	}

	return DeleteOrderCommand{
		actor:   actor,
		orderID: orderID,
		cascade: cascade,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeleteOrderCommandIsNotConstructed)
}

// Actor returns the acting user's resolved context.
func (c DeleteOrderCommand) Actor() access.Context {
	return c.actor
}

// OrderID returns the order to delete.
func (c DeleteOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Cascade reports whether dependents should be cancelled along with the order.
func (c DeleteOrderCommand) Cascade() bool {
	return c.cascade
}
