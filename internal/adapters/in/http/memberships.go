package http

import (
	"net/http"

	"merchflow/internal/core/application/usecases/commands"
	"merchflow/internal/core/domain/model/access"
	"merchflow/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// ChangeMemberRoleRequest is the body for PUT /api/v1/memberships/:userID/role.
type ChangeMemberRoleRequest struct {
	Role string `json:"role"`
}

// ChangeMemberRole handles PUT /api/v1/memberships/:userID/role.
func (s *Server) ChangeMemberRole(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	targetUserID, err := kernel.UUIDFromString(ctx.Param("userID"))
	if err != nil {
		return badRequest(ctx, "invalid user id")
	}

	var req ChangeMemberRoleRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewChangeMemberRoleCommand(actor, targetUserID, access.Role(req.Role))
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.changeMemberRoleHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}
