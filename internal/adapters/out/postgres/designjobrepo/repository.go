package designjobrepo

import (
	"context"
	"errors"

	"merchflow/internal/core/domain/model/designjob"
	"merchflow/internal/core/domain/model/kernel"
	"merchflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormDesignJobRepository implements ports.DesignJobRepository using GORM.
type GormDesignJobRepository struct {
	db *gorm.DB
}

// NewGormDesignJobRepository creates a new GORM design job repository.
func NewGormDesignJobRepository(db *gorm.DB) *GormDesignJobRepository {
	return &GormDesignJobRepository{db: db}
}

// Add saves a new design job.
func (r *GormDesignJobRepository) Add(ctx context.Context, aggregate *designjob.DesignJob) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves a design job with an optimistic concurrency check.
func (r *GormDesignJobRepository) Update(ctx context.Context, aggregate *designjob.DesignJob, expectedVersion int) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&DesignJobDTO{}).
		Where("id = ? AND organization_id = ? AND version = ?", dto.ID, dto.OrganizationID, expectedVersion).
		Select("status", "due_date", "version").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewConflictError("design job", aggregate.ID().String())
	}

	return nil
}

// Get retrieves a design job owned by the organization.
func (r *GormDesignJobRepository) Get(ctx context.Context, organizationID, id kernel.UUID) (*designjob.DesignJob, error) {
	if err := errors.Join(organizationID.Validate(), id.Validate()); err != nil {
		return nil, err
	}

	var dto DesignJobDTO
	err := r.db.WithContext(ctx).
		First(&dto, "id = ? AND organization_id = ?", id.Bytes(), organizationID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("design job", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByOrderID retrieves all design jobs attached to an order.
func (r *GormDesignJobRepository) GetByOrderID(ctx context.Context, organizationID, orderID kernel.UUID) ([]*designjob.DesignJob, error) {
	if err := errors.Join(organizationID.Validate(), orderID.Validate()); err != nil {
		return nil, err
	}

	var dtos []DesignJobDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "organization_id = ? AND order_id = ?", organizationID.Bytes(), orderID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	jobs := make([]*designjob.DesignJob, 0, len(dtos))
	for _, dto := range dtos {
		job, domainErr := toDomain(dto)
		if domainErr != nil {
			return nil, domainErr
		}
		jobs = append(jobs, job)
	}

	return jobs, nil
}
