package ports

import (
	"context"

	"merchflow/internal/core/domain/model/kernel"
	"merchflow/internal/core/domain/model/organization"
)

// MembershipRepository defines the persistence contract for memberships.
type MembershipRepository interface {
	// Add persists a new membership; (user, organization) is unique.
	Add(ctx context.Context, aggregate *organization.Membership) error

	// Update persists a role change.
	Update(ctx context.Context, aggregate *organization.Membership) error

	// Get retrieves the membership of userID within organizationID.
	Get(ctx context.Context, organizationID, userID kernel.UUID) (*organization.Membership, error)
}
