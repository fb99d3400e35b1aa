package commands

import (
	"errors"

	"merchflow/internal/core/domain/model/access"
	"merchflow/internal/core/domain/model/kernel"
	"merchflow/internal/pkg/guard"
)

var ErrCreateWorkOrderCommandIsNotConstructed = errors.New(
	"CreateWorkOrderCommand must be created via NewCreateWorkOrderCommand constructor",
)

// CreateWorkOrderCommand represents a request to attach a manufacturing run
// to an order, optionally linked to one of the order's design jobs.
type CreateWorkOrderCommand struct { //nolint:recvcheck //using for validation
	actor          access.Context
	workOrderID    kernel.UUID
	orderID        kernel.UUID
	designJobID    *kernel.UUID
	manufacturer   string
	targetQuantity int
	unitCostCents  int64

	guard guard.ConstructorGuard
}

// NewCreateWorkOrderCommand creates a command to attach a work order.
// Manufacturer, quantity, and cost constraints are enforced by the aggregate
// constructor in the handler.
func NewCreateWorkOrderCommand(
	actor access.Context,
	workOrderID, orderID kernel.UUID,
	designJobID *kernel.UUID,
	manufacturer string,
	targetQuantity int,
	unitCostCents int64,
) (CreateWorkOrderCommand, error) {
	if err := errors.Join(
		workOrderID.Validate(),
		orderID.Validate(),
	); err != nil {
		return CreateWorkOrderCommand{}, err
	}

	return CreateWorkOrderCommand{
		actor:          actor,
		workOrderID:    workOrderID,
		orderID:        orderID,
		designJobID:    designJobID,
		manufacturer:   manufacturer,
		targetQuantity: targetQuantity,
		unitCostCents:  unitCostCents,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateWorkOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateWorkOrderCommandIsNotConstructed)
}

// Actor returns the acting user's resolved context.
func (c CreateWorkOrderCommand) Actor() access.Context {
	return c.actor
}

// WorkOrderID returns the unique identifier for the new work order.
func (c CreateWorkOrderCommand) WorkOrderID() kernel.UUID {
	return c.workOrderID
}

// OrderID returns the parent order.
func (c CreateWorkOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// DesignJobID returns the linked design job, or nil.
func (c CreateWorkOrderCommand) DesignJobID() *kernel.UUID {
	return c.designJobID
}

// Manufacturer returns the external manufacturer reference.
func (c CreateWorkOrderCommand) Manufacturer() string {
	return c.manufacturer
}

// TargetQuantity returns the commissioned quantity.
func (c CreateWorkOrderCommand) TargetQuantity() int {
	return c.targetQuantity
}

// UnitCostCents returns the unit cost in cents.
func (c CreateWorkOrderCommand) UnitCostCents() int64 {
	return c.unitCostCents
}
