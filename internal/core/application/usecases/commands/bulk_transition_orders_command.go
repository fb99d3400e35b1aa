package commands

import (
	"errors"

	"merchflow/internal/core/domain/model/access"
	"merchflow/internal/core/domain/model/kernel"
	"merchflow/internal/core/domain/model/order"
	"merchflow/internal/pkg/errs"
	"merchflow/internal/pkg/guard"
)

var ErrBulkTransitionOrdersCommandIsNotConstructed = errors.New(
	"BulkTransitionOrdersCommand must be created via NewBulkTransitionOrdersCommand constructor",
)

// BulkTransitionOrdersCommand represents a request to move a batch of orders
// to the same target state. Each id is processed independently.
type BulkTransitionOrdersCommand struct { //nolint:recvcheck //using for validation
	actor    access.Context
	orderIDs []kernel.UUID
	target   order.Status

	guard guard.ConstructorGuard
}

// NewBulkTransitionOrdersCommand creates a command to transition a batch of
// orders. The batch must be non-empty; every id must be a valid identifier.
func NewBulkTransitionOrdersCommand(actor access.Context, orderIDs []kernel.UUID, target order.Status) (BulkTransitionOrdersCommand, error) {
	if len(orderIDs) == 0 {
		return BulkTransitionOrdersCommand{}, errs.NewValueIsRequiredError("order ids")
	}
	for _, id := range orderIDs {
		if err := id.Validate(); err != nil {
			return BulkTransitionOrdersCommand{}, err
		}
	}
	if err := target.Validate(); err != nil {
		return BulkTransitionOrdersCommand{}, err
	}

	ids := make([]kernel.UUID, len(orderIDs))
	copy(ids, orderIDs)

	return BulkTransitionOrdersCommand{
		actor:    actor,
		orderIDs: ids,
		target:   target,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c BulkTransitionOrdersCommand) Validate() error {
	return c.guard.Validate(ErrBulkTransitionOrdersCommandIsNotConstructed)
}

// Actor returns the acting user's resolved context.
func (c BulkTransitionOrdersCommand) Actor() access.Context {
	return c.actor
}

// OrderIDs returns the batch in request order.
func (c BulkTransitionOrdersCommand) OrderIDs() []kernel.UUID {
	ids := make([]kernel.UUID, len(c.orderIDs))
	copy(ids, c.orderIDs)
	return ids
}

// Target returns the requested lifecycle state.
func (c BulkTransitionOrdersCommand) Target() order.Status {
	return c.target
}
