package commands

import (
	"errors"
	"time"

	"merchflow/internal/core/domain/model/access"
	"merchflow/internal/core/domain/model/kernel"
	"merchflow/internal/core/domain/model/order"
	"merchflow/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to create a new merchandise order
// for the actor's organization. The owning organization is always taken from
// the actor's resolved context, never from request payloads.
//
// Business validation of the customer contact, line items, and amounts
// happens in the order aggregate constructor, so an invalid order is
// rejected before anything is persisted or audited.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	actor            access.Context
	orderID          kernel.UUID
	customer         order.Customer
	items            []order.Item
	totalAmountCents int64
	priority         order.Priority
	dueDate          *time.Time
	notes            string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
func NewCreateOrderCommand(
	actor access.Context,
	orderID kernel.UUID,
	customer order.Customer,
	items []order.Item,
	totalAmountCents int64,
	priority order.Priority,
	dueDate *time.Time,
	notes string,
) (CreateOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return CreateOrderCommand{}, err
	}

	return CreateOrderCommand{
		actor:            actor,
		orderID:          orderID,
		customer:         customer,
		items:            items,
		totalAmountCents: totalAmountCents,
		priority:         priority,
		dueDate:          dueDate,
		notes:            notes,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// Actor returns the acting user's resolved context.
func (c CreateOrderCommand) Actor() access.Context {
	return c.actor
}

// OrderID returns the unique identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Customer returns the customer contact information.
func (c CreateOrderCommand) Customer() order.Customer {
	return c.customer
}

// Items returns the order lines.
func (c CreateOrderCommand) Items() []order.Item {
	return c.items
}

// TotalAmountCents returns the order total in cents.
func (c CreateOrderCommand) TotalAmountCents() int64 {
	return c.totalAmountCents
}

// Priority returns the requested scheduling priority.
func (c CreateOrderCommand) Priority() order.Priority {
	return c.priority
}

// DueDate returns the due date, or nil when none was given.
func (c CreateOrderCommand) DueDate() *time.Time {
	return c.dueDate
}

// Notes returns the free-form notes.
func (c CreateOrderCommand) Notes() string {
	return c.notes
}
