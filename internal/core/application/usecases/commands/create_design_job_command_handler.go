package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"merchflow/internal/core/domain/model/access"
	"merchflow/internal/core/domain/model/audit"
	"merchflow/internal/core/domain/model/designjob"
	"merchflow/internal/core/domain/model/notification"
	"merchflow/internal/core/domain/services"
	"merchflow/internal/core/ports"
)

// CreateDesignJobCommandHandler attaches a design job to an order. The
// assigned designer gets a notification recorded in the same transaction.
//
// A due date later than the parent order's is accepted. The mismatch is
// logged at warning level and recorded as an advisory audit entry so
// schedule reviews can find it later.
type CreateDesignJobCommandHandler struct {
	uowFactory  ArtifactUoWFactory
	accessGuard services.AccessGuard
	publisher   ports.EventPublisher
	logger      *slog.Logger
}

// NewCreateDesignJobCommandHandler creates a handler for design job creation.
func NewCreateDesignJobCommandHandler(uowFactory ArtifactUoWFactory, publisher ports.EventPublisher, logger *slog.Logger) CreateDesignJobCommandHandler {
	return CreateDesignJobCommandHandler{
		uowFactory:  uowFactory,
		accessGuard: services.NewAccessGuard(),
		publisher:   publisher,
		logger:      logger.With("component", "create_design_job"),
	}
}

// Handle processes the design job creation command.
func (h CreateDesignJobCommandHandler) Handle(ctx context.Context, cmd CreateDesignJobCommand) error {
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

	job, err := designjob.NewDesignJob(cmd.DesignJobID(), actor.OrganizationID, parent.ID(), cmd.DesignerID(), cmd.DueDate())
	if err != nil {
		return err
	}

	if err = uow.DesignJobRepository().Add(ctx, job); err != nil {
		return err
	}

	entry, err := audit.NewEntry(
		actor.UserID, actor.OrganizationID,
		"design_job", job.ID(), "design_job.create",
		nil, snapshotStatus(job.Status().String(), job.Version()),
	)
	if err != nil {
		return err
	}
	if err = uow.AuditRepository().Add(ctx, entry); err != nil {
		return err
	}

	if overruns(cmd.DueDate(), parent.DueDate()) {
		h.logger.Warn("design job due date is later than the parent order's",
			"design_job_id", job.ID().String(),
			"order_id", parent.ID().String())

		warning, err := audit.NewEntry(
			actor.UserID, actor.OrganizationID,
			"design_job", job.ID(), "design_job.schedule_warning",
			nil, snapshotStatus(job.Status().String(), job.Version()),
		)
		if err != nil {
			return err
		}
		if err = uow.AuditRepository().Add(ctx, warning); err != nil {
			return err
		}
	}

	payload, _ := json.Marshal(map[string]string{
		"design_job_id": job.ID().String(),
		"order_id":      parent.ID().String(),
	})
	assigned, err := notification.NewNotification(actor.OrganizationID, cmd.DesignerID(), "design_job.assigned", payload)
	if err != nil {
		return err
	}
	if err = uow.NotificationRepository().Add(ctx, assigned); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(newEvent(actor, "design_job.created", "design_job", job.ID(), "", job.Status().String()))
	return nil
}

// overruns reports whether a child due date falls after its parent's.
func overruns(child, parent *time.Time) bool {
	return child != nil && parent != nil && child.After(*parent)
}
