package commands

import (
	"context"

	"merchflow/internal/core/domain/model/audit"
	"merchflow/internal/core/domain/services"
	"merchflow/internal/core/ports"
)

// ChangeMemberRoleCommandHandler sets a member's role. The guard enforces
// the manage-members capability and the self-escalation rule: no actor can
// raise their own role, however privileged they already are.
type ChangeMemberRoleCommandHandler struct {
	uowFactory  MembershipUoWFactory
	accessGuard services.AccessGuard
	publisher   ports.EventPublisher
}

// NewChangeMemberRoleCommandHandler creates a handler for role changes.
func NewChangeMemberRoleCommandHandler(uowFactory MembershipUoWFactory, publisher ports.EventPublisher) ChangeMemberRoleCommandHandler {
	return ChangeMemberRoleCommandHandler{
		uowFactory:  uowFactory,
		accessGuard: services.NewAccessGuard(),
		publisher:   publisher,
	}
}

// Handle processes the role change command.
func (h ChangeMemberRoleCommandHandler) Handle(ctx context.Context, cmd ChangeMemberRoleCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	actor := cmd.Actor()
	if err := h.accessGuard.CheckRoleChange(actor, actor.OrganizationID, cmd.TargetUserID(), cmd.NewRole()); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	membershipRepo := uow.MembershipRepository()
	membership, err := membershipRepo.Get(ctx, actor.OrganizationID, cmd.TargetUserID())
	if err != nil {
		return err
	}

	before := snapshotRole(membership.Role())
	previousRole := membership.Role()

	if err = membership.ChangeRole(cmd.NewRole()); err != nil {
		return err
	}

	if err = membershipRepo.Update(ctx, membership); err != nil {
		return err
	}

	entry, err := audit.NewEntry(
		actor.UserID, actor.OrganizationID,
		"membership", cmd.TargetUserID(), "membership.role_change",
		before, snapshotRole(membership.Role()),
	)
	if err != nil {
		return err
	}
	if err = uow.AuditRepository().Add(ctx, entry); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(newEvent(actor, "membership.role_changed", "membership", cmd.TargetUserID(), previousRole.String(), membership.Role().String()))
	return nil
}
