// Package postgres provides the GORM-backed unit of work that binds
// repositories to a shared database transaction. A command's state change,
// its audit entry, and any cascaded writes all go through one unit of work
// and therefore commit or fail together.
package postgres

import (
	"context"

	"merchflow/internal/adapters/out/postgres/auditrepo"
	"merchflow/internal/adapters/out/postgres/designjobrepo"
	"merchflow/internal/adapters/out/postgres/fulfillmentrepo"
	"merchflow/internal/adapters/out/postgres/membershiprepo"
	"merchflow/internal/adapters/out/postgres/notificationrepo"
	"merchflow/internal/adapters/out/postgres/orderrepo"
	"merchflow/internal/adapters/out/postgres/workorderrepo"
	"merchflow/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates unit of work instances over a shared
// database handle. Each command gets its own instance.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a new factory.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create returns a fresh unit of work with no open transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return NewGormUnitOfWork(f.db)
}

// GormUnitOfWork implements ports.UnitOfWork using GORM transactions.
// Repositories obtained before Begin run against the bare connection;
// after Begin they share the open transaction.
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// NewGormUnitOfWork creates a unit of work over the given database handle.
func NewGormUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{db: db}
}

// Begin starts a new transaction. Calling Begin with a transaction already
// open is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	uow.tx = tx
	return nil
}

// Commit commits the current transaction.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback rolls back the current transaction. Safe to defer after a
// successful Commit: without an open transaction it reports
// gorm.ErrInvalidTransaction and touches nothing.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// OrderRepository returns an order repository bound to the current transaction.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn())
}

// DesignJobRepository returns a design job repository bound to the current transaction.
func (uow *GormUnitOfWork) DesignJobRepository() ports.DesignJobRepository {
	return designjobrepo.NewGormDesignJobRepository(uow.conn())
}

// WorkOrderRepository returns a work order repository bound to the current transaction.
func (uow *GormUnitOfWork) WorkOrderRepository() ports.WorkOrderRepository {
	return workorderrepo.NewGormWorkOrderRepository(uow.conn())
}

// FulfillmentRepository returns a fulfillment repository bound to the current transaction.
func (uow *GormUnitOfWork) FulfillmentRepository() ports.FulfillmentRepository {
	return fulfillmentrepo.NewGormFulfillmentRepository(uow.conn())
}

// AuditRepository returns an audit repository bound to the current transaction.
func (uow *GormUnitOfWork) AuditRepository() ports.AuditRepository {
	return auditrepo.NewGormAuditRepository(uow.conn())
}

// MembershipRepository returns a membership repository bound to the current transaction.
func (uow *GormUnitOfWork) MembershipRepository() ports.MembershipRepository {
	return membershiprepo.NewGormMembershipRepository(uow.conn())
}

// NotificationRepository returns a notification repository bound to the current transaction.
func (uow *GormUnitOfWork) NotificationRepository() ports.NotificationRepository {
	return notificationrepo.NewGormNotificationRepository(uow.conn())
}
