package access

import (
	"errors"

	"merchflow/internal/core/domain/model/kernel"
)

// Context is the resolved identity of the acting user for one request:
// who they are, which organization the credential binds them to, and what
// role they hold there. It is produced once by the tenant context resolver
// and treated as immutable for the remainder of the request. The
// organization id here is authoritative; organization ids arriving in
// request bodies or query strings are only ever compared against it.
type Context struct {
	UserID         kernel.UUID
	OrganizationID kernel.UUID
	Role           Role

	// PlatformAdmin marks operators of the platform itself. They bypass
	// the tenant-ownership check but still go through the capability table.
	PlatformAdmin bool
}

// NewContext builds a validated Context.
func NewContext(userID, organizationID kernel.UUID, role Role, platformAdmin bool) (Context, error) {
	if err := errors.Join(
		userID.Validate(),
		organizationID.Validate(),
		role.Validate(),
	); err != nil {
		return Context{}, err
	}

	return Context{
		UserID:         userID,
		OrganizationID: organizationID,
		Role:           role,
		PlatformAdmin:  platformAdmin,
	}, nil
}

// Validate checks the context carries a usable identity.
func (c Context) Validate() error {
	return errors.Join(
		c.UserID.Validate(),
		c.OrganizationID.Validate(),
		c.Role.Validate(),
	)
}
