package http

import (
	"net/http"
	"time"

	"merchflow/internal/core/application/usecases/commands"
	"merchflow/internal/core/domain/model/designjob"
	"merchflow/internal/core/domain/model/fulfillment"
	"merchflow/internal/core/domain/model/kernel"
	"merchflow/internal/core/domain/model/workorder"

	"github.com/labstack/echo/v4"
)

// CreateDesignJobRequest is the body for POST /api/v1/orders/:id/design-jobs.
type CreateDesignJobRequest struct {
	DesignerID string     `json:"designer_id"`
	DueDate    *time.Time `json:"due_date,omitempty"`
}

// CreateWorkOrderRequest is the body for POST /api/v1/orders/:id/work-orders.
type CreateWorkOrderRequest struct {
	DesignJobID    string `json:"design_job_id,omitempty"`
	Manufacturer   string `json:"manufacturer"`
	TargetQuantity int    `json:"target_quantity"`
	UnitCostCents  int64  `json:"unit_cost_cents"`
}

// CreateFulfillmentRequest is the body for POST /api/v1/orders/:id/fulfillments.
type CreateFulfillmentRequest struct {
	Destination string `json:"destination"`
	Carrier     string `json:"carrier"`
}

// CreateDesignJob handles POST /api/v1/orders/:id/design-jobs.
func (s *Server) CreateDesignJob(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	var req CreateDesignJobRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	designerID, err := kernel.UUIDFromString(req.DesignerID)
	if err != nil {
		return badRequest(ctx, "invalid designer_id")
	}

	designJobID := kernel.NewUUID()
	cmd, err := commands.NewCreateDesignJobCommand(actor, designJobID, orderID, designerID, req.DueDate)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.createDesignJobHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": designJobID.String()})
}

// CreateWorkOrder handles POST /api/v1/orders/:id/work-orders.
func (s *Server) CreateWorkOrder(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	var req CreateWorkOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	var designJobID *kernel.UUID
	if req.DesignJobID != "" {
		id, idErr := kernel.UUIDFromString(req.DesignJobID)
		if idErr != nil {
			return badRequest(ctx, "invalid design_job_id")
		}
		designJobID = &id
	}

	workOrderID := kernel.NewUUID()
	cmd, err := commands.NewCreateWorkOrderCommand(
		actor,
		workOrderID,
		orderID,
		designJobID,
		req.Manufacturer,
		req.TargetQuantity,
		req.UnitCostCents,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.createWorkOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": workOrderID.String()})
}

// CreateFulfillment handles POST /api/v1/orders/:id/fulfillments.
func (s *Server) CreateFulfillment(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	var req CreateFulfillmentRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	recordID := kernel.NewUUID()
	cmd, err := commands.NewCreateFulfillmentCommand(actor, recordID, orderID, req.Destination, req.Carrier)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.createFulfillmentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": recordID.String()})
}

// TransitionDesignJob handles POST /api/v1/design-jobs/:id/transition.
func (s *Server) TransitionDesignJob(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	designJobID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid design job id")
	}

	var req TransitionRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewTransitionDesignJobCommand(actor, designJobID, designjob.Status(req.Target))
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.transitionDesignJobHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, artifactTransitionResponse(result))
}

// TransitionWorkOrder handles POST /api/v1/work-orders/:id/transition.
func (s *Server) TransitionWorkOrder(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	workOrderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid work order id")
	}

	var req TransitionRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewTransitionWorkOrderCommand(actor, workOrderID, workorder.Status(req.Target), req.ActualQuantity)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.transitionWorkOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, artifactTransitionResponse(result))
}

// TransitionFulfillment handles POST /api/v1/fulfillments/:id/transition.
func (s *Server) TransitionFulfillment(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	recordID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid fulfillment id")
	}

	var req TransitionRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewTransitionFulfillmentCommand(actor, recordID, fulfillment.Status(req.Target), req.TrackingNumber)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.transitionFulfillmentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, artifactTransitionResponse(result))
}

func artifactTransitionResponse(result commands.ArtifactTransitionResult) map[string]any {
	return map[string]any{
		"changed": result.Changed,
		"status":  result.Status,
		"version": result.Version,
	}
}
