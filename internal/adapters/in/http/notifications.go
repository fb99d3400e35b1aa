package http

import (
	"net/http"

	"merchflow/internal/core/application/usecases/commands"
	"merchflow/internal/core/application/usecases/queries"
	"merchflow/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// GetNotifications handles GET /api/v1/notifications.
func (s *Server) GetNotifications(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	unreadOnly := ctx.QueryParam("unread_only") == "true"

	notifications, err := s.getNotificationsHandler.Handle(
		ctx.Request().Context(),
		queries.NewGetNotificationsQuery(actor, unreadOnly),
	)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, notifications)
}

// MarkNotificationRead handles POST /api/v1/notifications/:id/read.
func (s *Server) MarkNotificationRead(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	notificationID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid notification id")
	}

	cmd, err := commands.NewMarkNotificationReadCommand(actor, notificationID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.markNotificationReadHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}
