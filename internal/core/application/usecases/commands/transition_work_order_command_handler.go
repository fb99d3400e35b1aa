package commands

import (
	"context"

	"merchflow/internal/core/domain/model/access"
	"merchflow/internal/core/domain/model/audit"
	"merchflow/internal/core/domain/services"
	"merchflow/internal/core/ports"
)

// TransitionWorkOrderCommandHandler moves a work order through its lifecycle.
// When the command carries a produced quantity it is recorded as part of the
// same version-checked update.
type TransitionWorkOrderCommandHandler struct {
	uowFactory  ArtifactUoWFactory
	accessGuard services.AccessGuard
	publisher   ports.EventPublisher
}

// NewTransitionWorkOrderCommandHandler creates a handler for work order transitions.
func NewTransitionWorkOrderCommandHandler(uowFactory ArtifactUoWFactory, publisher ports.EventPublisher) TransitionWorkOrderCommandHandler {
	return TransitionWorkOrderCommandHandler{
		uowFactory:  uowFactory,
		accessGuard: services.NewAccessGuard(),
		publisher:   publisher,
	}
}

// Handle processes the transition command.
func (h TransitionWorkOrderCommandHandler) Handle(ctx context.Context, cmd TransitionWorkOrderCommand) (ArtifactTransitionResult, error) {
	if err := cmd.Validate(); err != nil {
		return ArtifactTransitionResult{}, err
	}

	actor := cmd.Actor()
	if err := h.accessGuard.Check(actor, access.ActionUpdate, actor.OrganizationID); err != nil {
		return ArtifactTransitionResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ArtifactTransitionResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.WorkOrderRepository()
	wo, err := repo.Get(ctx, actor.OrganizationID, cmd.WorkOrderID())
	if err != nil {
		return ArtifactTransitionResult{}, err
	}

	before := snapshotStatus(wo.Status().String(), wo.Version())
	previous := wo.Status()
	expectedVersion := wo.Version()

	changed, err := wo.Transition(cmd.Target())
	if err != nil {
		return ArtifactTransitionResult{}, err
	}

	if cmd.ActualQuantity() != nil {
		if err = wo.RecordProduction(*cmd.ActualQuantity()); err != nil {
			return ArtifactTransitionResult{}, err
		}
		changed = true
	}

	if !changed {
		return ArtifactTransitionResult{Changed: false, Status: wo.Status().String(), Version: wo.Version()}, nil
	}

	if err = repo.Update(ctx, wo, expectedVersion); err != nil {
		return ArtifactTransitionResult{}, err
	}

	entry, err := audit.NewEntry(
		actor.UserID, actor.OrganizationID,
		"work_order", wo.ID(), "work_order.transition",
		before, snapshotStatus(wo.Status().String(), wo.Version()),
	)
	if err != nil {
		return ArtifactTransitionResult{}, err
	}
	if err = uow.AuditRepository().Add(ctx, entry); err != nil {
		return ArtifactTransitionResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ArtifactTransitionResult{}, err
	}

	h.publisher.Publish(newEvent(actor, "work_order.transitioned", "work_order", wo.ID(), previous.String(), wo.Status().String()))
	return ArtifactTransitionResult{Changed: true, Status: wo.Status().String(), Version: wo.Version()}, nil
}
