package commands_test

import (
	"testing"

	"merchflow/internal/core/application/usecases/commands"
	"merchflow/internal/core/domain/model/access"
	"merchflow/internal/core/domain/model/kernel"
	"merchflow/internal/core/domain/model/organization"
	"merchflow/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestChangeMemberRoleCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	actor := actorWithRole(access.RoleOwner)
	targetUserID := kernel.NewUUID()

	membership, err := organization.NewMembership(targetUserID, actor.OrganizationID, access.RoleMember)
	require.NoError(t, err)

	cmd, err := commands.NewChangeMemberRoleCommand(actor, targetUserID, access.RoleAdmin)
	require.NoError(t, err)

	uow := NewMockUoW()
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.Memberships.On("Get", mock.Anything, actor.OrganizationID, targetUserID).Return(membership, nil).Once(),
		uow.Memberships.On("Update", mock.Anything, membership).Return(nil).Once(),
		uow.Audits.On("Add", mock.Anything, mock.AnythingOfType("*audit.Entry")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockMembershipUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("Publish", mock.AnythingOfType("ports.Event")).Once()

	h := commands.NewChangeMemberRoleCommandHandler(factory, publisher)
	require.NoError(t, h.Handle(ctx, cmd))
	require.Equal(t, access.RoleAdmin, membership.Role())
	uow.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestChangeMemberRoleCommandHandler_Handle_SelfEscalationDenied(t *testing.T) {
	actor := actorWithRole(access.RoleAdmin)

	cmd, err := commands.NewChangeMemberRoleCommand(actor, actor.UserID, access.RoleOwner)
	require.NoError(t, err)

	factory := new(MockMembershipUoWFactory)
	h := commands.NewChangeMemberRoleCommandHandler(factory, new(MockEventPublisher))
	err = h.Handle(t.Context(), cmd)
	require.ErrorIs(t, err, errs.ErrDenied)
	factory.AssertNotCalled(t, "Create")
}

func TestChangeMemberRoleCommandHandler_Handle_SelfDowngradeAllowed(t *testing.T) {
	ctx := t.Context()
	actor := actorWithRole(access.RoleOwner)

	membership, err := organization.NewMembership(actor.UserID, actor.OrganizationID, access.RoleOwner)
	require.NoError(t, err)

	cmd, err := commands.NewChangeMemberRoleCommand(actor, actor.UserID, access.RoleAdmin)
	require.NoError(t, err)

	uow := NewMockUoW()
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.Memberships.On("Get", mock.Anything, actor.OrganizationID, actor.UserID).Return(membership, nil).Once(),
		uow.Memberships.On("Update", mock.Anything, membership).Return(nil).Once(),
		uow.Audits.On("Add", mock.Anything, mock.AnythingOfType("*audit.Entry")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockMembershipUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("Publish", mock.AnythingOfType("ports.Event")).Once()

	h := commands.NewChangeMemberRoleCommandHandler(factory, publisher)
	require.NoError(t, h.Handle(ctx, cmd))
	require.Equal(t, access.RoleAdmin, membership.Role())
}

func TestChangeMemberRoleCommandHandler_Handle_MemberDenied(t *testing.T) {
	actor := memberActor()

	cmd, err := commands.NewChangeMemberRoleCommand(actor, kernel.NewUUID(), access.RoleAdmin)
	require.NoError(t, err)

	factory := new(MockMembershipUoWFactory)
	h := commands.NewChangeMemberRoleCommandHandler(factory, new(MockEventPublisher))
	err = h.Handle(t.Context(), cmd)
	require.ErrorIs(t, err, errs.ErrDenied)
}
