package http

import (
	"net/http"
	"strconv"

	"merchflow/internal/core/application/usecases/queries"
	"merchflow/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// GetAuditLog handles GET /api/v1/audit.
func (s *Server) GetAuditLog(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var entityID *kernel.UUID
	if raw := ctx.QueryParam("entity_id"); raw != "" {
		id, idErr := kernel.UUIDFromString(raw)
		if idErr != nil {
			return badRequest(ctx, "invalid entity_id")
		}
		entityID = &id
	}

	page, err := intQueryParam(ctx, "page", 1)
	if err != nil {
		return badRequest(ctx, "invalid page")
	}
	perPage, err := intQueryParam(ctx, "per_page", 0)
	if err != nil {
		return badRequest(ctx, "invalid per_page")
	}

	query, err := queries.NewGetAuditLogQuery(actor, entityID, page, perPage)
	if err != nil {
		return respondError(ctx, err)
	}

	entries, err := s.getAuditLogHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, entries)
}

func intQueryParam(ctx echo.Context, name string, fallback int) (int, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
