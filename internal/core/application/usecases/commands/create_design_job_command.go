package commands

import (
	"errors"
	"time"

	"merchflow/internal/core/domain/model/access"
	"merchflow/internal/core/domain/model/kernel"
	"merchflow/internal/pkg/guard"
)

var ErrCreateDesignJobCommandIsNotConstructed = errors.New(
	"CreateDesignJobCommand must be created via NewCreateDesignJobCommand constructor",
)

// CreateDesignJobCommand represents a request to attach a design job to an
// order and assign it to a designer of the same organization.
type CreateDesignJobCommand struct { //nolint:recvcheck //using for validation
	actor       access.Context
	designJobID kernel.UUID
	orderID     kernel.UUID
	designerID  kernel.UUID
	dueDate     *time.Time

	guard guard.ConstructorGuard
}

// NewCreateDesignJobCommand creates a command to attach a design job.
func NewCreateDesignJobCommand(actor access.Context, designJobID, orderID, designerID kernel.UUID, dueDate *time.Time) (CreateDesignJobCommand, error) {
	if err := errors.Join(
		designJobID.Validate(),
		orderID.Validate(),
		designerID.Validate(),
	); err != nil {
		return CreateDesignJobCommand{}, err
	}

	return CreateDesignJobCommand{
		actor:       actor,
		designJobID: designJobID,
		orderID:     orderID,
		designerID:  designerID,
		dueDate:     dueDate,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateDesignJobCommand) Validate() error {
	return c.guard.Validate(ErrCreateDesignJobCommandIsNotConstructed)
}

// Actor returns the acting user's resolved context.
func (c CreateDesignJobCommand) Actor() access.Context {
	return c.actor
}

// DesignJobID returns the unique identifier for the new design job.
func (c CreateDesignJobCommand) DesignJobID() kernel.UUID {
	return c.designJobID
}

// OrderID returns the parent order.
func (c CreateDesignJobCommand) OrderID() kernel.UUID {
	return c.orderID
}

// DesignerID returns the assigned designer.
func (c CreateDesignJobCommand) DesignerID() kernel.UUID {
	return c.designerID
}

// DueDate returns the job due date, or nil when none was given.
func (c CreateDesignJobCommand) DueDate() *time.Time {
	return c.dueDate
}
