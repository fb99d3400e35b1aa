package commands

import (
	"context"

	"merchflow/internal/core/domain/model/access"
	"merchflow/internal/core/domain/model/audit"
	"merchflow/internal/core/domain/model/order"
	"merchflow/internal/core/domain/services"
	"merchflow/internal/core/ports"
	"merchflow/internal/pkg/errs"
)

// DeleteOrderCommandHandler handles order deletion. Orders that never had
// dependents are removed physically, leaving only the audit trail. Orders
// with dependents are either rejected (no cascade) or cancelled together
// with their non-terminal dependents (cascade); their rows survive so the
// audit trail keeps a referent.
type DeleteOrderCommandHandler struct {
	uowFactory  OrderUoWFactory
	accessGuard services.AccessGuard
	publisher   ports.EventPublisher
}

// NewDeleteOrderCommandHandler creates a handler for order deletion operations.
func NewDeleteOrderCommandHandler(uowFactory OrderUoWFactory, publisher ports.EventPublisher) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{
		uowFactory:  uowFactory,
		accessGuard: services.NewAccessGuard(),
		publisher:   publisher,
	}
}

// Handle processes the deletion command. Deletion requires the delete
// capability, held by admins and owners.
func (h DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	actor := cmd.Actor()
	if err := h.accessGuard.Check(actor, access.ActionDelete, actor.OrganizationID); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, actor.OrganizationID, cmd.OrderID())
	if err != nil {
		return err
	}

	hasDependents, err := orderRepo.HasDependents(ctx, actor.OrganizationID, aggregate.ID())
	if err != nil {
		return err
	}

	if hasDependents && !cmd.Cascade() {
		return errs.NewHasDependentsError("order", aggregate.ID().String())
	}

	if hasDependents {
		return h.cancelInsteadOfDelete(ctx, uow, actor, aggregate)
	}

	before := snapshotOrder(aggregate)
	if err = orderRepo.Delete(ctx, actor.OrganizationID, aggregate.ID()); err != nil {
		return err
	}

	entry, err := audit.NewEntry(
		actor.UserID, actor.OrganizationID,
		"order", aggregate.ID(), "order.delete",
		before, nil,
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

	h.publisher.Publish(newEvent(actor, "order.deleted", "order", aggregate.ID(), aggregate.Status().String(), ""))
	return nil
}

// cancelInsteadOfDelete converts a cascade delete into a cancellation of the
// order and its non-terminal dependents, all in the caller's transaction.
func (h DeleteOrderCommandHandler) cancelInsteadOfDelete(ctx context.Context, uow OrderUoW, actor access.Context, aggregate *order.Order) error {
	before := snapshotOrder(aggregate)
	previous := aggregate.Status()
	expectedVersion := aggregate.Version()

	changed, err := aggregate.Transition(order.StatusCancelled)
	if err != nil {
		return err
	}

	var events []ports.Event
	if changed {
		if err = uow.OrderRepository().Update(ctx, aggregate, expectedVersion); err != nil {
			return err
		}

		entry, err := audit.NewEntry(
			actor.UserID, actor.OrganizationID,
			"order", aggregate.ID(), "order.transition",
			before, snapshotOrder(aggregate),
		)
		if err != nil {
			return err
		}
		if err = uow.AuditRepository().Add(ctx, entry); err != nil {
			return err
		}
		events = append(events, newEvent(actor, "order.transitioned", "order", aggregate.ID(), previous.String(), aggregate.Status().String()))
	}

	transition := NewTransitionOrderCommandHandler(h.uowFactory, h.publisher)
	cascaded, err := transition.cancelDependents(ctx, uow, actor, aggregate)
	if err != nil {
		return err
	}
	events = append(events, cascaded...)

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	for _, event := range events {
		h.publisher.Publish(event)
	}
	return nil
}
