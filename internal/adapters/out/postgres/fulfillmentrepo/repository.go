package fulfillmentrepo

import (
	"context"
	"errors"

	"merchflow/internal/core/domain/model/fulfillment"
	"merchflow/internal/core/domain/model/kernel"
	"merchflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormFulfillmentRepository implements ports.FulfillmentRepository using GORM.
type GormFulfillmentRepository struct {
	db *gorm.DB
}

// NewGormFulfillmentRepository creates a new GORM fulfillment repository.
func NewGormFulfillmentRepository(db *gorm.DB) *GormFulfillmentRepository {
	return &GormFulfillmentRepository{db: db}
}

// Add saves a new fulfillment record.
func (r *GormFulfillmentRepository) Add(ctx context.Context, aggregate *fulfillment.Record) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves a fulfillment record with an optimistic concurrency check.
func (r *GormFulfillmentRepository) Update(ctx context.Context, aggregate *fulfillment.Record, expectedVersion int) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&FulfillmentDTO{}).
		Where("id = ? AND organization_id = ? AND version = ?", dto.ID, dto.OrganizationID, expectedVersion).
		Select("status", "tracking_number", "version").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewConflictError("fulfillment", aggregate.ID().String())
	}

	return nil
}

// Get retrieves a fulfillment record owned by the organization.
func (r *GormFulfillmentRepository) Get(ctx context.Context, organizationID, id kernel.UUID) (*fulfillment.Record, error) {
	if err := errors.Join(organizationID.Validate(), id.Validate()); err != nil {
		return nil, err
	}

	var dto FulfillmentDTO
	err := r.db.WithContext(ctx).
		First(&dto, "id = ? AND organization_id = ?", id.Bytes(), organizationID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("fulfillment", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByOrderID retrieves all fulfillment records attached to an order.
func (r *GormFulfillmentRepository) GetByOrderID(ctx context.Context, organizationID, orderID kernel.UUID) ([]*fulfillment.Record, error) {
	if err := errors.Join(organizationID.Validate(), orderID.Validate()); err != nil {
		return nil, err
	}

	var dtos []FulfillmentDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "organization_id = ? AND order_id = ?", organizationID.Bytes(), orderID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	records := make([]*fulfillment.Record, 0, len(dtos))
	for _, dto := range dtos {
		record, domainErr := toDomain(dto)
		if domainErr != nil {
			return nil, domainErr
		}
		records = append(records, record)
	}

	return records, nil
}
