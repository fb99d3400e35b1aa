package organization

import (
	"errors"

	"merchflow/internal/core/domain/model/access"
	"merchflow/internal/core/domain/model/kernel"
	"merchflow/internal/pkg/errs"
)

// ErrMembershipIsNotConstructed is returned when a Membership was not
// created through NewMembership or RestoreMembership.
var ErrMembershipIsNotConstructed = errors.New("Membership must be created via NewMembership or RestoreMembership constructor")

// Membership is the (user, organization, role) triple. It is unique per
// (user, organization); the role may only be changed by an admin or owner of
// the same organization, and never upward by the member themselves.
type Membership struct {
	userID         kernel.UUID
	organizationID kernel.UUID
	role           access.Role

	isConstructed bool
}

// NewMembership creates a validated membership.
func NewMembership(userID, organizationID kernel.UUID, role access.Role) (*Membership, error) {
	m := &Membership{isConstructed: true}

	if err := errors.Join(
		m.setUserID(userID),
		m.setOrganizationID(organizationID),
		role.Validate(),
	); err != nil {
		return nil, err
	}

	m.role = role
	return m, nil
}

// RestoreMembership reconstructs a membership from persistence.
func RestoreMembership(userID, organizationID kernel.UUID, role access.Role) (*Membership, error) {
	return NewMembership(userID, organizationID, role)
}

// Validate ensures the membership was created through a constructor.
func (m *Membership) Validate() error {
	if m == nil || !m.isConstructed {
		return ErrMembershipIsNotConstructed
	}
	return nil
}

// UserID returns the member's user id.
func (m *Membership) UserID() kernel.UUID { return m.userID }

// OrganizationID returns the organization the membership belongs to.
func (m *Membership) OrganizationID() kernel.UUID { return m.organizationID }

// Role returns the member's role within the organization.
func (m *Membership) Role() access.Role { return m.role }

// ChangeRole sets a new validated role. Authorization, including the
// self-escalation rule, is enforced by the access guard before this is called.
func (m *Membership) ChangeRole(role access.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	m.role = role
	return nil
}

func (m *Membership) setUserID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("user id", err)
	}
	m.userID = id
	return nil
}

func (m *Membership) setOrganizationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("organization id", err)
	}
	m.organizationID = id
	return nil
}
