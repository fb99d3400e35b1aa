// Package organization contains the tenant root: the Organization that owns
// every other entity, and the Membership binding users to it with a role.
package organization

import (
	"errors"
	"fmt"

	"merchflow/internal/core/domain/model/kernel"
	"merchflow/internal/pkg/errs"
)

// ErrOrganizationIsNotConstructed is returned when an Organization was not
// created through NewOrganization or RestoreOrganization.
var ErrOrganizationIsNotConstructed = errors.New("Organization must be created via NewOrganization or RestoreOrganization constructor")

// ErrNameIsRequired is returned when the organization has no name.
var ErrNameIsRequired = errors.New("organization name is required")

// Status is the standing of an organization on the platform.
type Status string

const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusSuspended Status = "suspended"
)

// Validate checks the value is a known organization status.
func (s Status) Validate() error {
	switch s {
	case StatusActive, StatusInactive, StatusSuspended:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid organization status", string(s)))
}

// Organization is the unit of data isolation. Its data is never merged with
// another organization's, and it owns all tenant-scoped entities.
type Organization struct {
	id     kernel.UUID
	name   string
	status Status

	isConstructed bool
}

// NewOrganization creates an active organization.
func NewOrganization(id kernel.UUID, name string) (*Organization, error) {
	o := &Organization{
		status:        StatusActive,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setName(name),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrganization reconstructs an organization from persistence.
func RestoreOrganization(id kernel.UUID, name string, status Status) (*Organization, error) {
	o := &Organization{isConstructed: true}

	if err := errors.Join(
		o.setID(id),
		o.setName(name),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	o.status = status
	return o, nil
}

// Validate ensures the organization was created through a constructor.
func (o *Organization) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrganizationIsNotConstructed
	}
	return nil
}

// ID returns the organization's unique identifier.
func (o *Organization) ID() kernel.UUID { return o.id }

// Name returns the display name.
func (o *Organization) Name() string { return o.name }

// Status returns the organization's standing.
func (o *Organization) Status() Status { return o.status }

// SetStatus changes the organization's standing. Only platform admins reach
// this through the application layer.
func (o *Organization) SetStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Organization) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Organization) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	o.name = name
	return nil
}
