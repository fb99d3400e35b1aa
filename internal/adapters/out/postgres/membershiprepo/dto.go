// Package membershiprepo persists organization memberships.
package membershiprepo

import (
	"merchflow/internal/core/domain/model/access"
	"merchflow/internal/core/domain/model/kernel"
	"merchflow/internal/core/domain/model/organization"

	"github.com/google/uuid"
)

// MembershipDTO represents one (user, organization) membership row. The
// pair is the primary key; a user holds at most one role per organization.
type MembershipDTO struct {
	UserID         uuid.UUID `gorm:"type:uuid;primaryKey;column:user_id"`
	OrganizationID uuid.UUID `gorm:"type:uuid;primaryKey;column:organization_id"`
	Role           string
}

// TableName specifies the database table name for memberships.
func (MembershipDTO) TableName() string {
	return "memberships"
}

func fromDomain(aggregate *organization.Membership) MembershipDTO {
	return MembershipDTO{
		UserID:         aggregate.UserID().Bytes(),
		OrganizationID: aggregate.OrganizationID().Bytes(),
		Role:           string(aggregate.Role()),
	}
}

func toDomain(dto MembershipDTO) (*organization.Membership, error) {
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}
	organizationID, err := kernel.UUIDFromBytes(dto.OrganizationID[:])
	if err != nil {
		return nil, err
	}

	return organization.RestoreMembership(userID, organizationID, access.Role(dto.Role))
}
