package orderrepo

import (
	"context"
	"errors"

	"merchflow/internal/core/domain/model/kernel"
	"merchflow/internal/core/domain/model/order"
	"merchflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM. Every
// read and write is keyed by organization, so an id owned by another
// organization behaves exactly like an unknown id.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add saves a new order and its lines.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves an existing order with an optimistic concurrency check.
// The write matches on the version the caller read; zero rows affected
// means a concurrent mutation won or the order is gone, reported as a
// ConflictError. Order lines are immutable after creation and are not
// rewritten.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order, expectedVersion int) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND organization_id = ? AND version = ?", dto.ID, dto.OrganizationID, expectedVersion).
		Select("status", "priority", "notes", "version", "updated_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewConflictError("order", aggregate.ID().String())
	}

	return nil
}

// Get retrieves an order owned by the organization, lines included.
func (r *GormOrderRepository) Get(ctx context.Context, organizationID, id kernel.UUID) (*order.Order, error) {
	if err := errors.Join(organizationID.Validate(), id.Validate()); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).Preload("Items").
		First(&dto, "id = ? AND organization_id = ?", id.Bytes(), organizationID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAll retrieves all of the organization's orders, newest first.
func (r *GormOrderRepository) GetAll(ctx context.Context, organizationID kernel.UUID) ([]*order.Order, error) {
	if err := organizationID.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	err := r.db.WithContext(ctx).Preload("Items").
		Order("created_at DESC").
		Find(&dtos, "organization_id = ?", organizationID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, domainErr := toDomain(dto)
		if domainErr != nil {
			return nil, domainErr
		}
		orders = append(orders, aggregate)
	}

	return orders, nil
}

// HasDependents reports whether design jobs, work orders, or fulfillment
// records reference the order.
func (r *GormOrderRepository) HasDependents(ctx context.Context, organizationID, id kernel.UUID) (bool, error) {
	if err := errors.Join(organizationID.Validate(), id.Validate()); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			(SELECT COUNT(*) FROM design_jobs WHERE organization_id = ? AND order_id = ?) +
			(SELECT COUNT(*) FROM work_orders WHERE organization_id = ? AND order_id = ?) +
			(SELECT COUNT(*) FROM fulfillments WHERE organization_id = ? AND order_id = ?)
	`,
		organizationID.Bytes(), id.Bytes(),
		organizationID.Bytes(), id.Bytes(),
		organizationID.Bytes(), id.Bytes(),
	).Scan(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// Delete physically removes an order and its lines. Only reachable for
// orders without dependents; orders with history are cancelled instead.
func (r *GormOrderRepository) Delete(ctx context.Context, organizationID, id kernel.UUID) error {
	if err := errors.Join(organizationID.Validate(), id.Validate()); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Where("id = ? AND organization_id = ?", id.Bytes(), organizationID.Bytes()).
		Delete(&OrderDTO{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}

	return r.db.WithContext(ctx).
		Where("order_id = ?", id.Bytes()).
		Delete(&ItemDTO{}).Error
}
