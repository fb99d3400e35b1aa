package commands

import (
	"context"

	"merchflow/internal/core/domain/model/access"
	"merchflow/internal/core/domain/model/audit"
	"merchflow/internal/core/domain/services"
	"merchflow/internal/core/ports"
)

// TransitionFulfillmentCommandHandler moves a fulfillment record through its
// lifecycle. Delivering a record does not complete the parent order; that is
// a separately authorized order transition.
type TransitionFulfillmentCommandHandler struct {
	uowFactory  ArtifactUoWFactory
	accessGuard services.AccessGuard
	publisher   ports.EventPublisher
}

// NewTransitionFulfillmentCommandHandler creates a handler for fulfillment transitions.
func NewTransitionFulfillmentCommandHandler(uowFactory ArtifactUoWFactory, publisher ports.EventPublisher) TransitionFulfillmentCommandHandler {
	return TransitionFulfillmentCommandHandler{
		uowFactory:  uowFactory,
		accessGuard: services.NewAccessGuard(),
		publisher:   publisher,
	}
}

// Handle processes the transition command.
func (h TransitionFulfillmentCommandHandler) Handle(ctx context.Context, cmd TransitionFulfillmentCommand) (ArtifactTransitionResult, error) {
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

	repo := uow.FulfillmentRepository()
	record, err := repo.Get(ctx, actor.OrganizationID, cmd.RecordID())
	if err != nil {
		return ArtifactTransitionResult{}, err
	}

	before := snapshotStatus(record.Status().String(), record.Version())
	previous := record.Status()
	expectedVersion := record.Version()

	changed, err := record.Transition(cmd.Target())
	if err != nil {
		return ArtifactTransitionResult{}, err
	}

	if cmd.TrackingNumber() != "" && cmd.TrackingNumber() != record.TrackingNumber() {
		record.SetTracking(cmd.TrackingNumber())
		changed = true
	}

	if !changed {
		return ArtifactTransitionResult{Changed: false, Status: record.Status().String(), Version: record.Version()}, nil
	}

	if err = repo.Update(ctx, record, expectedVersion); err != nil {
		return ArtifactTransitionResult{}, err
	}

	entry, err := audit.NewEntry(
		actor.UserID, actor.OrganizationID,
		"fulfillment", record.ID(), "fulfillment.transition",
		before, snapshotStatus(record.Status().String(), record.Version()),
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

	h.publisher.Publish(newEvent(actor, "fulfillment.transitioned", "fulfillment", record.ID(), previous.String(), record.Status().String()))
	return ArtifactTransitionResult{Changed: true, Status: record.Status().String(), Version: record.Version()}, nil
}
