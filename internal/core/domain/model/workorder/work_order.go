// Package workorder contains the WorkOrder aggregate: one manufacturing run
// for an order, placed with an external manufacturer.
package workorder

import (
	"errors"
	"fmt"

	"merchflow/internal/core/domain/model/kernel"
	"merchflow/internal/pkg/errs"
)

// ErrWorkOrderIsNotConstructed is returned when a WorkOrder was not created
// through NewWorkOrder or RestoreWorkOrder.
var ErrWorkOrderIsNotConstructed = errors.New("WorkOrder must be created via NewWorkOrder or RestoreWorkOrder constructor")

// ErrManufacturerIsRequired is returned when no manufacturer reference is given.
var ErrManufacturerIsRequired = errors.New("manufacturer is required")

// WorkOrder belongs to exactly one Order and optionally one DesignJob.
// Quantities must be positive targets with non-negative actuals and costs.
type WorkOrder struct {
	id             kernel.UUID
	organizationID kernel.UUID
	orderID        kernel.UUID
	designJobID    *kernel.UUID
	manufacturer   string
	targetQuantity int
	actualQuantity int
	unitCostCents  int64
	totalCostCents int64
	status         Status
	version        int

	isConstructed bool
}

// NewWorkOrder creates a work order in created status.
func NewWorkOrder(
	id, organizationID, orderID kernel.UUID,
	designJobID *kernel.UUID,
	manufacturer string,
	targetQuantity int,
	unitCostCents int64,
) (*WorkOrder, error) {
	w := &WorkOrder{
		status:        StatusCreated,
		version:       1,
		isConstructed: true,
	}

	if err := errors.Join(
		w.setID(id),
		w.setOrganizationID(organizationID),
		w.setOrderID(orderID),
		w.setDesignJobID(designJobID),
		w.setManufacturer(manufacturer),
		w.setTargetQuantity(targetQuantity),
		w.setUnitCostCents(unitCostCents),
	); err != nil {
		return nil, err
	}

	w.totalCostCents = int64(targetQuantity) * unitCostCents
	return w, nil
}

// RestoreWorkOrder reconstructs a work order from persistence.
func RestoreWorkOrder(
	id, organizationID, orderID kernel.UUID,
	designJobID *kernel.UUID,
	manufacturer string,
	targetQuantity, actualQuantity int,
	unitCostCents, totalCostCents int64,
	status Status,
	version int,
) (*WorkOrder, error) {
	w := &WorkOrder{
		version:       version,
		isConstructed: true,
	}

	if err := errors.Join(
		w.setID(id),
		w.setOrganizationID(organizationID),
		w.setOrderID(orderID),
		w.setDesignJobID(designJobID),
		w.setManufacturer(manufacturer),
		w.setTargetQuantity(targetQuantity),
		w.setUnitCostCents(unitCostCents),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if actualQuantity < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("actual quantity", fmt.Errorf("%d is negative", actualQuantity))
	}
	if totalCostCents < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("total cost", fmt.Errorf("%d is negative", totalCostCents))
	}
	if version < 1 {
		return nil, errs.NewValueIsInvalidErrorWithCause("version", fmt.Errorf("%d is not greater than 0", version))
	}

	w.actualQuantity = actualQuantity
	w.totalCostCents = totalCostCents
	w.status = status
	return w, nil
}

// Validate ensures the work order was created through a constructor.
func (w *WorkOrder) Validate() error {
	if w == nil || !w.isConstructed {
		return ErrWorkOrderIsNotConstructed
	}
	return nil
}

// ID returns the work order's unique identifier.
func (w *WorkOrder) ID() kernel.UUID { return w.id }

// OrganizationID returns the owning organization.
func (w *WorkOrder) OrganizationID() kernel.UUID { return w.organizationID }

// OrderID returns the parent order.
func (w *WorkOrder) OrderID() kernel.UUID { return w.orderID }

// DesignJobID returns the linked design job, or nil.
func (w *WorkOrder) DesignJobID() *kernel.UUID { return w.designJobID }

// Manufacturer returns the external manufacturer reference.
func (w *WorkOrder) Manufacturer() string { return w.manufacturer }

// TargetQuantity returns the commissioned quantity.
func (w *WorkOrder) TargetQuantity() int { return w.targetQuantity }

// ActualQuantity returns the produced quantity so far.
func (w *WorkOrder) ActualQuantity() int { return w.actualQuantity }

// UnitCostCents returns the unit cost in cents.
func (w *WorkOrder) UnitCostCents() int64 { return w.unitCostCents }

// TotalCostCents returns the total cost in cents.
func (w *WorkOrder) TotalCostCents() int64 { return w.totalCostCents }

// Status returns the current lifecycle state.
func (w *WorkOrder) Status() Status { return w.status }

// Version returns the optimistic concurrency marker.
func (w *WorkOrder) Version() int { return w.version }

// Transition moves the work order to target. Same-state requests are
// idempotent no-ops reporting changed == false.
func (w *WorkOrder) Transition(target Status) (changed bool, err error) {
	if target == w.status {
		return false, nil
	}

	newStatus, err := w.status.TransitionTo(target)
	if err != nil {
		return false, err
	}

	w.status = newStatus
	w.version++
	return true, nil
}

// Cancel transitions the work order to cancelled; a no-op when already cancelled.
func (w *WorkOrder) Cancel() error {
	_, err := w.Transition(StatusCancelled)
	return err
}

// RecordProduction sets the produced quantity. Negative values are rejected.
func (w *WorkOrder) RecordProduction(actualQuantity int) error {
	if actualQuantity < 0 {
		return errs.NewValueIsInvalidErrorWithCause("actual quantity", fmt.Errorf("%d is negative", actualQuantity))
	}
	w.actualQuantity = actualQuantity
	w.version++
	return nil
}

func (w *WorkOrder) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	w.id = id
	return nil
}

func (w *WorkOrder) setOrganizationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("organization id", err)
	}
	w.organizationID = id
	return nil
}

func (w *WorkOrder) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("order id", err)
	}
	w.orderID = id
	return nil
}

func (w *WorkOrder) setDesignJobID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("design job id", err)
	}
	w.designJobID = id
	return nil
}

func (w *WorkOrder) setManufacturer(manufacturer string) error {
	if manufacturer == "" {
		return ErrManufacturerIsRequired
	}
	w.manufacturer = manufacturer
	return nil
}

func (w *WorkOrder) setTargetQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("target quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	w.targetQuantity = quantity
	return nil
}

func (w *WorkOrder) setUnitCostCents(cost int64) error {
	if cost < 0 {
		return errs.NewValueIsInvalidErrorWithCause("unit cost", fmt.Errorf("%d is negative", cost))
	}
	w.unitCostCents = cost
	return nil
}
