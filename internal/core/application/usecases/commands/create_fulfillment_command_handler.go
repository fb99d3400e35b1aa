package commands

import (
	"context"

	"merchflow/internal/core/domain/model/access"
	"merchflow/internal/core/domain/model/audit"
	"merchflow/internal/core/domain/model/fulfillment"
	"merchflow/internal/core/domain/services"
	"merchflow/internal/core/ports"
)

// CreateFulfillmentCommandHandler attaches a fulfillment record to an order.
type CreateFulfillmentCommandHandler struct {
	uowFactory  ArtifactUoWFactory
	accessGuard services.AccessGuard
	publisher   ports.EventPublisher
}

// NewCreateFulfillmentCommandHandler creates a handler for fulfillment creation.
func NewCreateFulfillmentCommandHandler(uowFactory ArtifactUoWFactory, publisher ports.EventPublisher) CreateFulfillmentCommandHandler {
	return CreateFulfillmentCommandHandler{
		uowFactory:  uowFactory,
		accessGuard: services.NewAccessGuard(),
		publisher:   publisher,
	}
}

// Handle processes the fulfillment creation command.
func (h CreateFulfillmentCommandHandler) Handle(ctx context.Context, cmd CreateFulfillmentCommand) error {
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

	record, err := fulfillment.NewRecord(cmd.RecordID(), actor.OrganizationID, parent.ID(), cmd.Destination(), cmd.Carrier())
	if err != nil {
		return err
	}

	if err = uow.FulfillmentRepository().Add(ctx, record); err != nil {
		return err
	}

	entry, err := audit.NewEntry(
		actor.UserID, actor.OrganizationID,
		"fulfillment", record.ID(), "fulfillment.create",
		nil, snapshotStatus(record.Status().String(), record.Version()),
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

	h.publisher.Publish(newEvent(actor, "fulfillment.created", "fulfillment", record.ID(), "", record.Status().String()))
	return nil
}
