package workorderrepo

import (
	"context"
	"errors"

	"merchflow/internal/core/domain/model/kernel"
	"merchflow/internal/core/domain/model/workorder"
	"merchflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormWorkOrderRepository implements ports.WorkOrderRepository using GORM.
type GormWorkOrderRepository struct {
	db *gorm.DB
}

// NewGormWorkOrderRepository creates a new GORM work order repository.
func NewGormWorkOrderRepository(db *gorm.DB) *GormWorkOrderRepository {
	return &GormWorkOrderRepository{db: db}
}

// Add saves a new work order.
func (r *GormWorkOrderRepository) Add(ctx context.Context, aggregate *workorder.WorkOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves a work order with an optimistic concurrency check.
func (r *GormWorkOrderRepository) Update(ctx context.Context, aggregate *workorder.WorkOrder, expectedVersion int) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&WorkOrderDTO{}).
		Where("id = ? AND organization_id = ? AND version = ?", dto.ID, dto.OrganizationID, expectedVersion).
		Select("status", "actual_quantity", "version").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewConflictError("work order", aggregate.ID().String())
	}

	return nil
}

// Get retrieves a work order owned by the organization.
func (r *GormWorkOrderRepository) Get(ctx context.Context, organizationID, id kernel.UUID) (*workorder.WorkOrder, error) {
	if err := errors.Join(organizationID.Validate(), id.Validate()); err != nil {
		return nil, err
	}

	var dto WorkOrderDTO
	err := r.db.WithContext(ctx).
		First(&dto, "id = ? AND organization_id = ?", id.Bytes(), organizationID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("work order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByOrderID retrieves all work orders attached to an order.
func (r *GormWorkOrderRepository) GetByOrderID(ctx context.Context, organizationID, orderID kernel.UUID) ([]*workorder.WorkOrder, error) {
	if err := errors.Join(organizationID.Validate(), orderID.Validate()); err != nil {
		return nil, err
	}

	var dtos []WorkOrderDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "organization_id = ? AND order_id = ?", organizationID.Bytes(), orderID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	workOrders := make([]*workorder.WorkOrder, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, domainErr := toDomain(dto)
		if domainErr != nil {
			return nil, domainErr
		}
		workOrders = append(workOrders, aggregate)
	}

	return workOrders, nil
}
