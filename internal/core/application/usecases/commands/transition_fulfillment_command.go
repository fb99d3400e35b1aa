package commands

import (
	"errors"

	"merchflow/internal/core/domain/model/access"
	"merchflow/internal/core/domain/model/fulfillment"
	"merchflow/internal/core/domain/model/kernel"
	"merchflow/internal/pkg/guard"
)

var ErrTransitionFulfillmentCommandIsNotConstructed = errors.New(
	"TransitionFulfillmentCommand must be created via NewTransitionFulfillmentCommand constructor",
)

// TransitionFulfillmentCommand represents a request to move one fulfillment
// record to a target lifecycle state, optionally recording a tracking number.
type TransitionFulfillmentCommand struct { //nolint:recvcheck //using for validation
	actor          access.Context
	recordID       kernel.UUID
	target         fulfillment.Status
	trackingNumber string

	guard guard.ConstructorGuard
}

// NewTransitionFulfillmentCommand creates a command to transition a
// fulfillment record. trackingNumber may be empty except where the carrier
// hand-off supplies one.
func NewTransitionFulfillmentCommand(actor access.Context, recordID kernel.UUID, target fulfillment.Status, trackingNumber string) (TransitionFulfillmentCommand, error) {
	if err := errors.Join(
		recordID.Validate(),
		target.Validate(),
	); err != nil {
		return TransitionFulfillmentCommand{}, err
	}

	return TransitionFulfillmentCommand{
		actor:          actor,
		recordID:       recordID,
		target:         target,
		trackingNumber: trackingNumber,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c TransitionFulfillmentCommand) Validate() error {
	return c.guard.Validate(ErrTransitionFulfillmentCommandIsNotConstructed)
}

// Actor returns the acting user's resolved context.
func (c TransitionFulfillmentCommand) Actor() access.Context {
	return c.actor
}

// RecordID returns the fulfillment record to transition.
func (c TransitionFulfillmentCommand) RecordID() kernel.UUID {
	return c.recordID
}

// Target returns the requested lifecycle state.
func (c TransitionFulfillmentCommand) Target() fulfillment.Status {
	return c.target
}

// TrackingNumber returns the carrier tracking number, possibly empty.
func (c TransitionFulfillmentCommand) TrackingNumber() string {
	return c.trackingNumber
}
