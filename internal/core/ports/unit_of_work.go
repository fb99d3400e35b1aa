package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations; bulk commands
// create one unit of work per item.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// It provides transaction control and hands out repositories bound to the
// current transaction, so a state change and its audit entry always commit
// or fail together.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the current transaction.
	OrderRepository() OrderRepository

	// DesignJobRepository returns a DesignJobRepository bound to the current transaction.
	DesignJobRepository() DesignJobRepository

	// WorkOrderRepository returns a WorkOrderRepository bound to the current transaction.
	WorkOrderRepository() WorkOrderRepository

	// FulfillmentRepository returns a FulfillmentRepository bound to the current transaction.
	FulfillmentRepository() FulfillmentRepository

	// AuditRepository returns an AuditRepository bound to the current transaction.
	AuditRepository() AuditRepository

	// MembershipRepository returns a MembershipRepository bound to the current transaction.
	MembershipRepository() MembershipRepository

	// NotificationRepository returns a NotificationRepository bound to the current transaction.
	NotificationRepository() NotificationRepository
}
