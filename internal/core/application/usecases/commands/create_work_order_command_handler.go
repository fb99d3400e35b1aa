package commands

import (
	"context"

	"merchflow/internal/core/domain/model/access"
	"merchflow/internal/core/domain/model/audit"
	"merchflow/internal/core/domain/model/workorder"
	"merchflow/internal/core/domain/services"
	"merchflow/internal/core/ports"
)

// CreateWorkOrderCommandHandler attaches a manufacturing run to an order.
type CreateWorkOrderCommandHandler struct {
	uowFactory  ArtifactUoWFactory
	accessGuard services.AccessGuard
	publisher   ports.EventPublisher
}

// NewCreateWorkOrderCommandHandler creates a handler for work order creation.
func NewCreateWorkOrderCommandHandler(uowFactory ArtifactUoWFactory, publisher ports.EventPublisher) CreateWorkOrderCommandHandler {
	return CreateWorkOrderCommandHandler{
		uowFactory:  uowFactory,
		accessGuard: services.NewAccessGuard(),
		publisher:   publisher,
	}
}

// Handle processes the work order creation command. The parent order and,
// when given, the linked design job are both read org-scoped, so references
// into another organization surface as not found.
func (h CreateWorkOrderCommandHandler) Handle(ctx context.Context, cmd CreateWorkOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	actor := cmd.Actor()
	if err := h.accessGuard.Check(actor, access.ActionCreate, actor.OrganizationID); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	parent, err := uow.OrderRepository().Get(ctx, actor.OrganizationID, cmd.OrderID())
	if err != nil {
		return err
	}

	if cmd.DesignJobID() != nil {
		if _, err = uow.DesignJobRepository().Get(ctx, actor.OrganizationID, *cmd.DesignJobID()); err != nil {
			return err
		}
	}

	wo, err := workorder.NewWorkOrder(
		cmd.WorkOrderID(), actor.OrganizationID, parent.ID(),
		cmd.DesignJobID(), cmd.Manufacturer(), cmd.TargetQuantity(), cmd.UnitCostCents(),
	)
	if err != nil {
		return err
	}

	if err = uow.WorkOrderRepository().Add(ctx, wo); err != nil {
		return err
	}

	entry, err := audit.NewEntry(
		actor.UserID, actor.OrganizationID,
		"work_order", wo.ID(), "work_order.create",
		nil, snapshotStatus(wo.Status().String(), wo.Version()),
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

	h.publisher.Publish(newEvent(actor, "work_order.created", "work_order", wo.ID(), "", wo.Status().String()))
	return nil
}
