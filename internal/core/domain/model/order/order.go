package order

import (
	"errors"
	"fmt"
	"time"

	"merchflow/internal/core/domain/model/kernel"
	"merchflow/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder. This ensures all orders are
	// properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrCustomerNameIsRequired is returned when the customer contact has no name.
	ErrCustomerNameIsRequired = errors.New("customer name is required")
)

// Priority is the scheduling priority of an order.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityRush   Priority = "rush"
)

// Validate checks the priority is one of the known values.
func (p Priority) Validate() error {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityRush:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("priority", fmt.Errorf("%q is not a valid priority", string(p)))
}

// Customer is the contact information for the organization's customer on a
// given order. Name is required; email is free-form contact data.
type Customer struct {
	Name  string
	Email string
}

// Order is the aggregate root for a merchandise commission. It is owned by
// exactly one organization for its entire life; the organization id is
// immutable after creation.
//
// Order maintains these invariants:
//   - valid unique identifier and owning organization
//   - total amount is never negative
//   - every line item has positive quantity and non-negative unit price
//   - status changes follow the allowed-transition table in status.go
//   - the version counter increases on every accepted mutation
//
// Instances are created through NewOrder (new orders, status draft) or
// RestoreOrder (reconstruction from persistence).
type Order struct {
	id               kernel.UUID
	organizationID   kernel.UUID
	customer         Customer
	items            []Item
	totalAmountCents int64
	status           Status
	priority         Priority
	dueDate          *time.Time
	notes            string

	// version is the optimistic concurrency marker. It is read with the
	// order and compared at write time; a mismatch means a concurrent
	// mutation won and the caller must retry with fresh state.
	version int

	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewOrder creates a new Order in draft status. All invariants are checked;
// a validation failure means nothing may be persisted or audited.
func NewOrder(
	id kernel.UUID,
	organizationID kernel.UUID,
	customer Customer,
	items []Item,
	totalAmountCents int64,
	priority Priority,
	dueDate *time.Time,
	notes string,
) (*Order, error) {
	now := time.Now().UTC()
	o := &Order{
		status:        StatusDraft,
		version:       1,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setOrganizationID(organizationID),
		o.setCustomer(customer),
		o.setItems(items),
		o.setTotalAmountCents(totalAmountCents),
		o.setPriority(priority),
		o.setNotes(notes),
	); err != nil {
		return nil, err
	}

	o.dueDate = dueDate
	return o, nil
}

// RestoreOrder reconstructs an Order from persistence with its stored
// status and version. The same invariants apply as in NewOrder.
func RestoreOrder(
	id kernel.UUID,
	organizationID kernel.UUID,
	customer Customer,
	items []Item,
	totalAmountCents int64,
	status Status,
	priority Priority,
	dueDate *time.Time,
	notes string,
	version int,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		version:       version,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setOrganizationID(organizationID),
		o.setCustomer(customer),
		o.setItems(items),
		o.setTotalAmountCents(totalAmountCents),
		status.Validate(),
		o.setPriority(priority),
		o.setNotes(notes),
	); err != nil {
		return nil, err
	}

	if version < 1 {
		return nil, errs.NewValueIsInvalidErrorWithCause("version", fmt.Errorf("%d is not greater than 0", version))
	}

	o.status = status
	o.dueDate = dueDate
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OrganizationID returns the owning organization. It never changes after
// creation.
func (o *Order) OrganizationID() kernel.UUID {
	return o.organizationID
}

// Customer returns the customer contact information.
func (o *Order) Customer() Customer {
	return o.customer
}

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// TotalAmountCents returns the order total in cents.
func (o *Order) TotalAmountCents() int64 {
	return o.totalAmountCents
}

// Status returns the current lifecycle state.
func (o *Order) Status() Status {
	return o.status
}

// Priority returns the scheduling priority.
func (o *Order) Priority() Priority {
	return o.priority
}

// DueDate returns the due date, or nil when none was set.
func (o *Order) DueDate() *time.Time {
	return o.dueDate
}

// Notes returns the free-form notes.
func (o *Order) Notes() string {
	return o.notes
}

// Version returns the optimistic concurrency marker.
func (o *Order) Version() int {
	return o.version
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the last mutation timestamp.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// Transition moves the order to target when the allowed-transition table
// permits it. A same-state request is an idempotent no-op: it reports
// changed == false and no error, and the caller records no audit entry and
// publishes no event for it.
func (o *Order) Transition(target Status) (changed bool, err error) {
	if target == o.status {
		return false, nil
	}

	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return false, err
	}

	o.status = newStatus
	o.touch()
	return true, nil
}

// Cancel transitions the order to cancelled. Fails with InvalidTransition
// when the order is already terminal.
func (o *Order) Cancel() error {
	changed, err := o.Transition(StatusCancelled)
	if err != nil {
		return err
	}
	if !changed {
		// Already cancelled; cancelling twice is a no-op.
		return nil
	}
	return nil
}

// AppendNotes adds transition notes to the order's notes field.
func (o *Order) AppendNotes(notes string) {
	if notes == "" {
		return
	}
	if o.notes == "" {
		o.notes = notes
	} else {
		o.notes = o.notes + "\n" + notes
	}
	o.touch()
}

// touch bumps the version and the updated timestamp. Called on every
// accepted mutation.
func (o *Order) touch() {
	o.version++
	o.updatedAt = time.Now().UTC()
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOrganizationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("organization id", err)
	}
	o.organizationID = id
	return nil
}

func (o *Order) setCustomer(customer Customer) error {
	if customer.Name == "" {
		return ErrCustomerNameIsRequired
	}
	o.customer = customer
	return nil
}

func (o *Order) setItems(items []Item) error {
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setTotalAmountCents(total int64) error {
	if total < 0 {
		return errs.NewValueIsInvalidErrorWithCause("total amount", fmt.Errorf("%d is negative", total))
	}
	o.totalAmountCents = total
	return nil
}

func (o *Order) setPriority(priority Priority) error {
	if priority == "" {
		o.priority = PriorityNormal
		return nil
	}
	if err := priority.Validate(); err != nil {
		return err
	}
	o.priority = priority
	return nil
}

func (o *Order) setNotes(notes string) error {
	o.notes = notes
	return nil
}
