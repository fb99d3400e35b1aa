package commands

import (
	"errors"

	"merchflow/internal/core/domain/model/access"
	"merchflow/internal/core/domain/model/kernel"
	"merchflow/internal/pkg/guard"
)

var ErrChangeMemberRoleCommandIsNotConstructed = errors.New(
	"ChangeMemberRoleCommand must be created via NewChangeMemberRoleCommand constructor",
)

// ChangeMemberRoleCommand represents a request to set a member's role within
// the actor's organization.
type ChangeMemberRoleCommand struct { //nolint:recvcheck //using for validation
	actor        access.Context
	targetUserID kernel.UUID
	newRole      access.Role

	guard guard.ConstructorGuard
}

// NewChangeMemberRoleCommand creates a command to change a member's role.
func NewChangeMemberRoleCommand(actor access.Context, targetUserID kernel.UUID, newRole access.Role) (ChangeMemberRoleCommand, error) {
	if err := errors.Join(
		targetUserID.Validate(),
		newRole.Validate(),
	); err != nil {
		return ChangeMemberRoleCommand{}, err
	}

	return ChangeMemberRoleCommand{
		actor:        actor,
		targetUserID: targetUserID,
		newRole:      newRole,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeMemberRoleCommand) Validate() error {
	return c.guard.Validate(ErrChangeMemberRoleCommandIsNotConstructed)
}

// Actor returns the acting user's resolved context.
func (c ChangeMemberRoleCommand) Actor() access.Context {
	return c.actor
}

// TargetUserID returns the member whose role is being changed.
func (c ChangeMemberRoleCommand) TargetUserID() kernel.UUID {
	return c.targetUserID
}

// NewRole returns the role being assigned.
func (c ChangeMemberRoleCommand) NewRole() access.Role {
	return c.newRole
}
