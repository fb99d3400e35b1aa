package http

import (
	"net/http"
	"time"

	"merchflow/internal/core/application/usecases/commands"
	"merchflow/internal/core/application/usecases/queries"
	"merchflow/internal/core/domain/model/kernel"
	"merchflow/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// CreateOrderRequest is the body for POST /api/v1/orders. OrganizationID is
// optional; when present it must match the token's organization.
type CreateOrderRequest struct {
	OrganizationID   string                   `json:"organization_id,omitempty"`
	CustomerName     string                   `json:"customer_name"`
	CustomerEmail    string                   `json:"customer_email"`
	Items            []CreateOrderItemRequest `json:"items"`
	TotalAmountCents int64                    `json:"total_amount_cents"`
	Priority         string                   `json:"priority"`
	DueDate          *time.Time               `json:"due_date,omitempty"`
	Notes            string                   `json:"notes,omitempty"`
}

// CreateOrderItemRequest is one order line in a creation request.
type CreateOrderItemRequest struct {
	CatalogItemID  string `json:"catalog_item_id"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}

// TransitionRequest is the body for the transition endpoints.
type TransitionRequest struct {
	Target         string `json:"target"`
	Notes          string `json:"notes,omitempty"`
	ActualQuantity *int   `json:"actual_quantity,omitempty"`
	TrackingNumber string `json:"tracking_number,omitempty"`
}

// BulkTransitionRequest is the body for POST /api/v1/orders/bulk/transition.
type BulkTransitionRequest struct {
	OrganizationID string   `json:"organization_id,omitempty"`
	IDs            []string `json:"ids"`
	Target         string   `json:"target"`
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var req CreateOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	if err = verifyClaimedOrganization(actor, req.OrganizationID); err != nil {
		return respondError(ctx, err)
	}

	items := make([]order.Item, 0, len(req.Items))
	for _, line := range req.Items {
		catalogItemID, idErr := kernel.UUIDFromString(line.CatalogItemID)
		if idErr != nil {
			return badRequest(ctx, "invalid catalog_item_id")
		}

		item, itemErr := order.NewItem(kernel.NewUUID(), catalogItemID, line.Quantity, line.UnitPriceCents)
		if itemErr != nil {
			return respondError(ctx, itemErr)
		}
		items = append(items, item)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		actor,
		orderID,
		order.Customer{Name: req.CustomerName, Email: req.CustomerEmail},
		items,
		req.TotalAmountCents,
		order.Priority(req.Priority),
		req.DueDate,
		req.Notes,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": orderID.String()})
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	query, err := queries.NewGetOrderQuery(actor, orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	response, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrders handles GET /api/v1/orders.
func (s *Server) GetOrders(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	orders, err := s.getOrdersHandler.Handle(ctx.Request().Context(), queries.NewGetOrdersQuery(actor))
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orders)
}

// TransitionOrder handles POST /api/v1/orders/:id/transition.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	var req TransitionRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewTransitionOrderCommand(actor, orderID, order.Status(req.Target), req.Notes)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.transitionOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]any{
		"changed": result.Changed,
		"status":  string(result.Status),
		"version": result.Version,
	})
}

// BulkTransitionOrders handles POST /api/v1/orders/bulk/transition.
func (s *Server) BulkTransitionOrders(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var req BulkTransitionRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	if err = verifyClaimedOrganization(actor, req.OrganizationID); err != nil {
		return respondError(ctx, err)
	}

	orderIDs := make([]kernel.UUID, 0, len(req.IDs))
	for _, raw := range req.IDs {
		id, idErr := kernel.UUIDFromString(raw)
		if idErr != nil {
			return badRequest(ctx, "invalid order id: "+raw)
		}
		orderIDs = append(orderIDs, id)
	}

	cmd, err := commands.NewBulkTransitionOrdersCommand(actor, orderIDs, order.Status(req.Target))
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.bulkTransitionOrdersHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	items := make([]BulkItemResponse, 0, len(result.Results))
	for _, item := range result.Results {
		response := BulkItemResponse{
			OrderID:  item.OrderID.String(),
			Accepted: item.Err == nil,
			Changed:  item.Changed,
		}
		if item.Err != nil {
			response.Kind = kindOf(item.Err)
		}
		items = append(items, response)
	}

	return ctx.JSON(http.StatusOK, BulkTransitionResponse{Results: items})
}

// BulkItemResponse is one item outcome in a bulk transition response.
type BulkItemResponse struct {
	OrderID  string `json:"order_id"`
	Accepted bool   `json:"accepted"`
	Changed  bool   `json:"changed"`
	Kind     string `json:"kind,omitempty"`
}

// BulkTransitionResponse preserves request order.
type BulkTransitionResponse struct {
	Results []BulkItemResponse `json:"results"`
}

// DeleteOrder handles DELETE /api/v1/orders/:id.
func (s *Server) DeleteOrder(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	cascade := ctx.QueryParam("cascade") == "true"

	cmd, err := commands.NewDeleteOrderCommand(actor, orderID, cascade)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.deleteOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetOrderReadiness handles GET /api/v1/orders/:id/readiness.
func (s *Server) GetOrderReadiness(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	query, err := queries.NewGetOrderReadinessQuery(actor, orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	response, err := s.getOrderReadinessHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, response)
}
