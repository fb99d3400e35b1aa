// Package designjob contains the DesignJob aggregate: the design phase of
// one order, assigned to a designer inside the same organization.
package designjob

import (
	"errors"
	"fmt"
	"time"

	"merchflow/internal/core/domain/model/kernel"
	"merchflow/internal/pkg/errs"
)

// ErrDesignJobIsNotConstructed is returned when a DesignJob was not created
// through NewDesignJob or RestoreDesignJob.
var ErrDesignJobIsNotConstructed = errors.New("DesignJob must be created via NewDesignJob or RestoreDesignJob constructor")

// DesignJob belongs to exactly one Order and is worked by one designer of
// the same organization. Its due date should not fall after the parent
// order's due date; that rule is advisory and enforced as a warning by the
// application layer, not here.
type DesignJob struct {
	id             kernel.UUID
	organizationID kernel.UUID
	orderID        kernel.UUID
	designerID     kernel.UUID
	status         Status
	dueDate        *time.Time
	version        int

	isConstructed bool
}

// NewDesignJob creates a design job in assigned status.
func NewDesignJob(id, organizationID, orderID, designerID kernel.UUID, dueDate *time.Time) (*DesignJob, error) {
	j := &DesignJob{
		status:        StatusAssigned,
		version:       1,
		isConstructed: true,
	}

	if err := errors.Join(
		j.setID(id),
		j.setOrganizationID(organizationID),
		j.setOrderID(orderID),
		j.setDesignerID(designerID),
	); err != nil {
		return nil, err
	}

	j.dueDate = dueDate
	return j, nil
}

// RestoreDesignJob reconstructs a design job from persistence.
func RestoreDesignJob(id, organizationID, orderID, designerID kernel.UUID, status Status, dueDate *time.Time, version int) (*DesignJob, error) {
	j := &DesignJob{
		version:       version,
		isConstructed: true,
	}

	if err := errors.Join(
		j.setID(id),
		j.setOrganizationID(organizationID),
		j.setOrderID(orderID),
		j.setDesignerID(designerID),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if version < 1 {
		return nil, errs.NewValueIsInvalidErrorWithCause("version", fmt.Errorf("%d is not greater than 0", version))
	}

	j.status = status
	j.dueDate = dueDate
	return j, nil
}

// Validate ensures the job was created through a constructor.
func (j *DesignJob) Validate() error {
	if j == nil || !j.isConstructed {
		return ErrDesignJobIsNotConstructed
	}
	return nil
}

// ID returns the job's unique identifier.
func (j *DesignJob) ID() kernel.UUID { return j.id }

// OrganizationID returns the owning organization.
func (j *DesignJob) OrganizationID() kernel.UUID { return j.organizationID }

// OrderID returns the parent order.
func (j *DesignJob) OrderID() kernel.UUID { return j.orderID }

// DesignerID returns the assigned designer.
func (j *DesignJob) DesignerID() kernel.UUID { return j.designerID }

// Status returns the current lifecycle state.
func (j *DesignJob) Status() Status { return j.status }

// DueDate returns the due date, or nil when none was set.
func (j *DesignJob) DueDate() *time.Time { return j.dueDate }

// Version returns the optimistic concurrency marker.
func (j *DesignJob) Version() int { return j.version }

// Transition moves the job to target. Same-state requests are idempotent
// no-ops reporting changed == false.
func (j *DesignJob) Transition(target Status) (changed bool, err error) {
	if target == j.status {
		return false, nil
	}

	newStatus, err := j.status.TransitionTo(target)
	if err != nil {
		return false, err
	}

	j.status = newStatus
	j.version++
	return true, nil
}

// Cancel transitions the job to cancelled; already-cancelled jobs are a no-op.
func (j *DesignJob) Cancel() error {
	_, err := j.Transition(StatusCancelled)
	return err
}

func (j *DesignJob) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	j.id = id
	return nil
}

func (j *DesignJob) setOrganizationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("organization id", err)
	}
	j.organizationID = id
	return nil
}

func (j *DesignJob) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("order id", err)
	}
	j.orderID = id
	return nil
}

func (j *DesignJob) setDesignerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("designer id", err)
	}
	j.designerID = id
	return nil
}
