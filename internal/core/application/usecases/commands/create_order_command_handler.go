package commands

import (
	"context"

	"merchflow/internal/core/domain/model/access"
	"merchflow/internal/core/domain/model/audit"
	"merchflow/internal/core/domain/model/order"
	"merchflow/internal/core/domain/services"
	"merchflow/internal/core/ports"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// New orders start in draft status, owned by the actor's organization, with
// a creation audit entry recorded in the same transaction.
type CreateOrderCommandHandler struct {
	uowFactory  OrderUoWFactory
	accessGuard services.AccessGuard
	publisher   ports.EventPublisher
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, publisher ports.EventPublisher) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:  uowFactory,
		accessGuard: services.NewAccessGuard(),
		publisher:   publisher,
	}
}

// Handle processes the order creation command. Validation failures reject the
// whole request; nothing is persisted and no audit entry is recorded.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	actor := cmd.Actor()
	if err := h.accessGuard.Check(actor, access.ActionCreate, actor.OrganizationID); err != nil {
		return err
	}

	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		actor.OrganizationID,
		cmd.Customer(),
		cmd.Items(),
		cmd.TotalAmountCents(),
		cmd.Priority(),
		cmd.DueDate(),
		cmd.Notes(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	entry, err := audit.NewEntry(
		actor.UserID, actor.OrganizationID,
		"order", newOrder.ID(), "order.create",
		nil, snapshotOrder(newOrder),
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

	h.publisher.Publish(newEvent(actor, "order.created", "order", newOrder.ID(), "", newOrder.Status().String()))
	return nil
}
