package commands

import (
	"context"

	"merchflow/internal/core/domain/model/access"
	"merchflow/internal/core/domain/model/audit"
	"merchflow/internal/core/domain/services"
	"merchflow/internal/core/ports"
)

// ArtifactTransitionResult reports the outcome of one artifact transition
// request. Changed is false for an idempotent same-state request.
type ArtifactTransitionResult struct {
	Changed bool
	Status  string
	Version int
}

// TransitionDesignJobCommandHandler moves a design job through its lifecycle.
type TransitionDesignJobCommandHandler struct {
	uowFactory  ArtifactUoWFactory
	accessGuard services.AccessGuard
	publisher   ports.EventPublisher
}

// NewTransitionDesignJobCommandHandler creates a handler for design job transitions.
func NewTransitionDesignJobCommandHandler(uowFactory ArtifactUoWFactory, publisher ports.EventPublisher) TransitionDesignJobCommandHandler {
	return TransitionDesignJobCommandHandler{
		uowFactory:  uowFactory,
		accessGuard: services.NewAccessGuard(),
		publisher:   publisher,
	}
}

// Handle processes the transition command with the same contract as order
// transitions: org-scoped read, version-checked write, audit entry in the
// same transaction, event published after commit, no-op for same state.
func (h TransitionDesignJobCommandHandler) Handle(ctx context.Context, cmd TransitionDesignJobCommand) (ArtifactTransitionResult, error) {
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

	repo := uow.DesignJobRepository()
	job, err := repo.Get(ctx, actor.OrganizationID, cmd.DesignJobID())
	if err != nil {
		return ArtifactTransitionResult{}, err
	}

	before := snapshotStatus(job.Status().String(), job.Version())
	previous := job.Status()
	expectedVersion := job.Version()

	changed, err := job.Transition(cmd.Target())
	if err != nil {
		return ArtifactTransitionResult{}, err
	}

	if !changed {
		return ArtifactTransitionResult{Changed: false, Status: job.Status().String(), Version: job.Version()}, nil
	}

	if err = repo.Update(ctx, job, expectedVersion); err != nil {
		return ArtifactTransitionResult{}, err
	}

	entry, err := audit.NewEntry(
		actor.UserID, actor.OrganizationID,
		"design_job", job.ID(), "design_job.transition",
		before, snapshotStatus(job.Status().String(), job.Version()),
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

	h.publisher.Publish(newEvent(actor, "design_job.transitioned", "design_job", job.ID(), previous.String(), job.Status().String()))
	return ArtifactTransitionResult{Changed: true, Status: job.Status().String(), Version: job.Version()}, nil
}
