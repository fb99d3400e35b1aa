package commands

import (
	"errors"

	"merchflow/internal/core/domain/model/access"
	"merchflow/internal/core/domain/model/designjob"
	"merchflow/internal/core/domain/model/kernel"
	"merchflow/internal/pkg/guard"
)

var ErrTransitionDesignJobCommandIsNotConstructed = errors.New(
	"TransitionDesignJobCommand must be created via NewTransitionDesignJobCommand constructor",
)

// TransitionDesignJobCommand represents a request to move one design job to
// a target lifecycle state.
type TransitionDesignJobCommand struct { //nolint:recvcheck //using for validation
	actor       access.Context
	designJobID kernel.UUID
	target      designjob.Status

	guard guard.ConstructorGuard
}

// NewTransitionDesignJobCommand creates a command to transition a design job.
func NewTransitionDesignJobCommand(actor access.Context, designJobID kernel.UUID, target designjob.Status) (TransitionDesignJobCommand, error) {
	if err := errors.Join(
		designJobID.Validate(),
		target.Validate(),
	); err != nil {
		return TransitionDesignJobCommand{}, err
	}

	return TransitionDesignJobCommand{
		actor:       actor,
		designJobID: designJobID,
		target:      target,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c TransitionDesignJobCommand) Validate() error {
	return c.guard.Validate(ErrTransitionDesignJobCommandIsNotConstructed)
}

// Actor returns the acting user's resolved context.
func (c TransitionDesignJobCommand) Actor() access.Context {
	return c.actor
}

// DesignJobID returns the design job to transition.
func (c TransitionDesignJobCommand) DesignJobID() kernel.UUID {
	return c.designJobID
}

// Target returns the requested lifecycle state.
func (c TransitionDesignJobCommand) Target() designjob.Status {
	return c.target
}
