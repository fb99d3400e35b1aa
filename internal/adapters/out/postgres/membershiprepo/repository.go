package membershiprepo

import (
	"context"
	"errors"

	"merchflow/internal/core/domain/model/kernel"
	"merchflow/internal/core/domain/model/organization"
	"merchflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormMembershipRepository implements ports.MembershipRepository using GORM.
type GormMembershipRepository struct {
	db *gorm.DB
}

// NewGormMembershipRepository creates a new GORM membership repository.
func NewGormMembershipRepository(db *gorm.DB) *GormMembershipRepository {
	return &GormMembershipRepository{db: db}
}

// Add saves a new membership.
func (r *GormMembershipRepository) Add(ctx context.Context, aggregate *organization.Membership) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves a role change.
func (r *GormMembershipRepository) Update(ctx context.Context, aggregate *organization.Membership) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&MembershipDTO{}).
		Where("user_id = ? AND organization_id = ?", dto.UserID, dto.OrganizationID).
		Update("role", dto.Role)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("membership", aggregate.UserID().String())
	}

	return nil
}

// Get retrieves the membership of a user within an organization.
func (r *GormMembershipRepository) Get(ctx context.Context, organizationID, userID kernel.UUID) (*organization.Membership, error) {
	if err := errors.Join(organizationID.Validate(), userID.Validate()); err != nil {
		return nil, err
	}

	var dto MembershipDTO
	err := r.db.WithContext(ctx).
		First(&dto, "organization_id = ? AND user_id = ?", organizationID.Bytes(), userID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("membership", userID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
