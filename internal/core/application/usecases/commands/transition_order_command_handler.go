package commands

import (
	"context"

	"merchflow/internal/core/domain/model/access"
	"merchflow/internal/core/domain/model/audit"
	"merchflow/internal/core/domain/model/order"
	"merchflow/internal/core/domain/services"
	"merchflow/internal/core/ports"
)

// TransitionOrderResult reports the outcome of a transition request.
// Changed is false for a same-state request, which succeeds without an audit
// entry, broadcast event, or version bump.
type TransitionOrderResult struct {
	Changed bool
	Status  order.Status
	Version int
}

// TransitionOrderCommandHandler moves an order through its lifecycle.
// A transition to cancelled cascades: every non-terminal design job, work
// order, and fulfillment record attached to the order is cancelled in the
// same transaction, each with its own audit entry.
type TransitionOrderCommandHandler struct {
	uowFactory  OrderUoWFactory
	accessGuard services.AccessGuard
	publisher   ports.EventPublisher
}

// NewTransitionOrderCommandHandler creates a handler for order transitions.
func NewTransitionOrderCommandHandler(uowFactory OrderUoWFactory, publisher ports.EventPublisher) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory:  uowFactory,
		accessGuard: services.NewAccessGuard(),
		publisher:   publisher,
	}
}

// Handle processes the transition command. The order is read org-scoped, so
// ids owned by another organization surface as not found. The update is
// version-checked; a concurrent mutation between read and write fails the
// whole transaction with a ConflictError and records nothing.
func (h TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) (TransitionOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return TransitionOrderResult{}, err
	}

	actor := cmd.Actor()
	if err := h.accessGuard.Check(actor, access.ActionUpdate, actor.OrganizationID); err != nil {
		return TransitionOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return TransitionOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, actor.OrganizationID, cmd.OrderID())
	if err != nil {
		return TransitionOrderResult{}, err
	}

	before := snapshotOrder(aggregate)
	previous := aggregate.Status()
	expectedVersion := aggregate.Version()

	changed, err := aggregate.Transition(cmd.Target())
	if err != nil {
		return TransitionOrderResult{}, err
	}

	if !changed {
		return TransitionOrderResult{Changed: false, Status: aggregate.Status(), Version: aggregate.Version()}, nil
	}

	aggregate.AppendNotes(cmd.Notes())

	if err = orderRepo.Update(ctx, aggregate, expectedVersion); err != nil {
		return TransitionOrderResult{}, err
	}

	entry, err := audit.NewEntry(
		actor.UserID, actor.OrganizationID,
		"order", aggregate.ID(), "order.transition",
		before, snapshotOrder(aggregate),
	)
	if err != nil {
		return TransitionOrderResult{}, err
	}

	if err = uow.AuditRepository().Add(ctx, entry); err != nil {
		return TransitionOrderResult{}, err
	}

	var cascaded []ports.Event
	if cmd.Target() == order.StatusCancelled {
		if cascaded, err = h.cancelDependents(ctx, uow, actor, aggregate); err != nil {
			return TransitionOrderResult{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return TransitionOrderResult{}, err
	}

	h.publisher.Publish(newEvent(actor, "order.transitioned", "order", aggregate.ID(), previous.String(), aggregate.Status().String()))
	for _, event := range cascaded {
		h.publisher.Publish(event)
	}

	return TransitionOrderResult{Changed: true, Status: aggregate.Status(), Version: aggregate.Version()}, nil
}

// cancelDependents cancels every non-terminal artifact attached to the order
// inside the caller's transaction and returns the events to publish after
// commit. Artifacts already in a terminal state are left untouched.
func (h TransitionOrderCommandHandler) cancelDependents(ctx context.Context, uow OrderUoW, actor access.Context, aggregate *order.Order) ([]ports.Event, error) {
	var events []ports.Event
	auditRepo := uow.AuditRepository()

	jobs, err := uow.DesignJobRepository().GetByOrderID(ctx, actor.OrganizationID, aggregate.ID())
	if err != nil {
		return nil, err
	}
	for _, job := range jobs {
		if job.Status().IsTerminal() {
			continue
		}
		before := snapshotStatus(job.Status().String(), job.Version())
		previous := job.Status()
		expectedVersion := job.Version()
		if err = job.Cancel(); err != nil {
			return nil, err
		}
		if err = uow.DesignJobRepository().Update(ctx, job, expectedVersion); err != nil {
			return nil, err
		}
		entry, err := audit.NewEntry(
			actor.UserID, actor.OrganizationID,
			"design_job", job.ID(), "design_job.transition",
			before, snapshotStatus(job.Status().String(), job.Version()),
		)
		if err != nil {
			return nil, err
		}
		if err = auditRepo.Add(ctx, entry); err != nil {
			return nil, err
		}
		events = append(events, newEvent(actor, "design_job.transitioned", "design_job", job.ID(), previous.String(), job.Status().String()))
	}

	workOrders, err := uow.WorkOrderRepository().GetByOrderID(ctx, actor.OrganizationID, aggregate.ID())
	if err != nil {
		return nil, err
	}
	for _, wo := range workOrders {
		if wo.Status().IsTerminal() {
			continue
		}
		before := snapshotStatus(wo.Status().String(), wo.Version())
		previous := wo.Status()
		expectedVersion := wo.Version()
		if err = wo.Cancel(); err != nil {
			return nil, err
		}
		if err = uow.WorkOrderRepository().Update(ctx, wo, expectedVersion); err != nil {
			return nil, err
		}
		entry, err := audit.NewEntry(
			actor.UserID, actor.OrganizationID,
			"work_order", wo.ID(), "work_order.transition",
			before, snapshotStatus(wo.Status().String(), wo.Version()),
		)
		if err != nil {
			return nil, err
		}
		if err = auditRepo.Add(ctx, entry); err != nil {
			return nil, err
		}
		events = append(events, newEvent(actor, "work_order.transitioned", "work_order", wo.ID(), previous.String(), wo.Status().String()))
	}

	records, err := uow.FulfillmentRepository().GetByOrderID(ctx, actor.OrganizationID, aggregate.ID())
	if err != nil {
		return nil, err
	}
	for _, record := range records {
		if record.Status().IsTerminal() {
			continue
		}
		before := snapshotStatus(record.Status().String(), record.Version())
		previous := record.Status()
		expectedVersion := record.Version()
		if err = record.Cancel(); err != nil {
			return nil, err
		}
		if err = uow.FulfillmentRepository().Update(ctx, record, expectedVersion); err != nil {
			return nil, err
		}
		entry, err := audit.NewEntry(
			actor.UserID, actor.OrganizationID,
			"fulfillment", record.ID(), "fulfillment.transition",
			before, snapshotStatus(record.Status().String(), record.Version()),
		)
		if err != nil {
			return nil, err
		}
		if err = auditRepo.Add(ctx, entry); err != nil {
			return nil, err
		}
		events = append(events, newEvent(actor, "fulfillment.transitioned", "fulfillment", record.ID(), previous.String(), record.Status().String()))
	}

	return events, nil
}
