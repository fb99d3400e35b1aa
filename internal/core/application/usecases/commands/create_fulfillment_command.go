package commands

import (
	"errors"

	"merchflow/internal/core/domain/model/access"
	"merchflow/internal/core/domain/model/kernel"
	"merchflow/internal/pkg/guard"
)

var ErrCreateFulfillmentCommandIsNotConstructed = errors.New(
	"CreateFulfillmentCommand must be created via NewCreateFulfillmentCommand constructor",
)

// CreateFulfillmentCommand represents a request to attach a fulfillment
// record (the shipping leg) to an order.
type CreateFulfillmentCommand struct { //nolint:recvcheck //using for validation
	actor       access.Context
	recordID    kernel.UUID
	orderID     kernel.UUID
	destination string
	carrier     string

	guard guard.ConstructorGuard
}

// NewCreateFulfillmentCommand creates a command to attach a fulfillment record.
func NewCreateFulfillmentCommand(actor access.Context, recordID, orderID kernel.UUID, destination, carrier string) (CreateFulfillmentCommand, error) {
	if err := errors.Join(
		recordID.Validate(),
		orderID.Validate(),
	); err != nil {
		return CreateFulfillmentCommand{}, err
	}

	return CreateFulfillmentCommand{
		actor:       actor,
		recordID:    recordID,
		orderID:     orderID,
		destination: destination,
		carrier:     carrier,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateFulfillmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateFulfillmentCommandIsNotConstructed)
}

// Actor returns the acting user's resolved context.
func (c CreateFulfillmentCommand) Actor() access.Context {
	return c.actor
}

// RecordID returns the unique identifier for the new record.
func (c CreateFulfillmentCommand) RecordID() kernel.UUID {
	return c.recordID
}

// OrderID returns the parent order.
func (c CreateFulfillmentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Destination returns the shipping destination.
func (c CreateFulfillmentCommand) Destination() string {
	return c.destination
}

// Carrier returns the carrier name, possibly empty until one is picked.
func (c CreateFulfillmentCommand) Carrier() string {
	return c.carrier
}
