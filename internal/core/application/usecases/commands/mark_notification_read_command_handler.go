package commands

import (
	"context"

	"merchflow/internal/core/domain/model/access"
	"merchflow/internal/core/domain/services"
)

// MarkNotificationReadCommandHandler marks one of the actor's notifications
// read. The lookup is scoped to the actor's organization and user, so
// another user's notification id behaves like a nonexistent one. Read marks
// are not audited; notifications are ephemeral.
type MarkNotificationReadCommandHandler struct {
	uowFactory  ArtifactUoWFactory
	accessGuard services.AccessGuard
}

// NewMarkNotificationReadCommandHandler creates a handler for read marks.
func NewMarkNotificationReadCommandHandler(uowFactory ArtifactUoWFactory) MarkNotificationReadCommandHandler {
	return MarkNotificationReadCommandHandler{
		uowFactory:  uowFactory,
		accessGuard: services.NewAccessGuard(),
	}
}

// Handle processes the read mark.
func (h MarkNotificationReadCommandHandler) Handle(ctx context.Context, cmd MarkNotificationReadCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	actor := cmd.Actor()
	if err := h.accessGuard.Check(actor, access.ActionRead, actor.OrganizationID); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.NotificationRepository().MarkRead(ctx, actor.OrganizationID, actor.UserID, cmd.NotificationID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
