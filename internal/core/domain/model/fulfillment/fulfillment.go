// Package fulfillment contains the FulfillmentRecord aggregate: the shipping
// leg of one order.
package fulfillment

import (
	"errors"
	"fmt"

	"merchflow/internal/core/domain/model/kernel"
	"merchflow/internal/pkg/errs"
)

// ErrRecordIsNotConstructed is returned when a Record was not created
// through NewRecord or RestoreRecord.
var ErrRecordIsNotConstructed = errors.New("Record must be created via NewRecord or RestoreRecord constructor")

// ErrDestinationIsRequired is returned when no shipping destination is given.
var ErrDestinationIsRequired = errors.New("shipping destination is required")

// Record belongs to exactly one Order. Marking it delivered does not
// automatically complete the parent order; completion is a separately
// authorized action driven by the readiness query.
type Record struct {
	id             kernel.UUID
	organizationID kernel.UUID
	orderID        kernel.UUID
	destination    string
	carrier        string
	trackingNumber string
	status         Status
	version        int

	isConstructed bool
}

// NewRecord creates a fulfillment record in pending status.
func NewRecord(id, organizationID, orderID kernel.UUID, destination, carrier string) (*Record, error) {
	r := &Record{
		status:        StatusPending,
		version:       1,
		isConstructed: true,
	}

	if err := errors.Join(
		r.setID(id),
		r.setOrganizationID(organizationID),
		r.setOrderID(orderID),
		r.setDestination(destination),
	); err != nil {
		return nil, err
	}

	r.carrier = carrier
	return r, nil
}

// RestoreRecord reconstructs a fulfillment record from persistence.
func RestoreRecord(id, organizationID, orderID kernel.UUID, destination, carrier, trackingNumber string, status Status, version int) (*Record, error) {
	r := &Record{
		version:       version,
		isConstructed: true,
	}

	if err := errors.Join(
		r.setID(id),
		r.setOrganizationID(organizationID),
		r.setOrderID(orderID),
		r.setDestination(destination),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if version < 1 {
		return nil, errs.NewValueIsInvalidErrorWithCause("version", fmt.Errorf("%d is not greater than 0", version))
	}

	r.carrier = carrier
	r.trackingNumber = trackingNumber
	r.status = status
	return r, nil
}

// Validate ensures the record was created through a constructor.
func (r *Record) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRecordIsNotConstructed
	}
	return nil
}

// ID returns the record's unique identifier.
func (r *Record) ID() kernel.UUID { return r.id }

// OrganizationID returns the owning organization.
func (r *Record) OrganizationID() kernel.UUID { return r.organizationID }

// OrderID returns the parent order.
func (r *Record) OrderID() kernel.UUID { return r.orderID }

// Destination returns the shipping destination.
func (r *Record) Destination() string { return r.destination }

// Carrier returns the carrier name.
func (r *Record) Carrier() string { return r.carrier }

// TrackingNumber returns the carrier tracking number, empty until shipped.
func (r *Record) TrackingNumber() string { return r.trackingNumber }

// Status returns the current lifecycle state.
func (r *Record) Status() Status { return r.status }

// Version returns the optimistic concurrency marker.
func (r *Record) Version() int { return r.version }

// Transition moves the record to target. Same-state requests are idempotent
// no-ops reporting changed == false.
func (r *Record) Transition(target Status) (changed bool, err error) {
	if target == r.status {
		return false, nil
	}

	newStatus, err := r.status.TransitionTo(target)
	if err != nil {
		return false, err
	}

	r.status = newStatus
	r.version++
	return true, nil
}

// Cancel transitions the record to cancelled; a no-op when already cancelled.
func (r *Record) Cancel() error {
	_, err := r.Transition(StatusCancelled)
	return err
}

// SetTracking records the carrier tracking number.
func (r *Record) SetTracking(trackingNumber string) {
	r.trackingNumber = trackingNumber
	r.version++
}

func (r *Record) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Record) setOrganizationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("organization id", err)
	}
	r.organizationID = id
	return nil
}

func (r *Record) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("order id", err)
	}
	r.orderID = id
	return nil
}

func (r *Record) setDestination(destination string) error {
	if destination == "" {
		return ErrDestinationIsRequired
	}
	r.destination = destination
	return nil
}
