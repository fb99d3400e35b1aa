// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: authorization, validation,
// transaction management, audit recording, and persistence.
package commands

import (
	"context"

	"merchflow/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure a state change and its audit entry commit together.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// DesignJobRepoFactory provides access to the design job repository within a transaction.
	DesignJobRepoFactory interface {
		DesignJobRepository() ports.DesignJobRepository
	}

	// WorkOrderRepoFactory provides access to the work order repository within a transaction.
	WorkOrderRepoFactory interface {
		WorkOrderRepository() ports.WorkOrderRepository
	}

	// FulfillmentRepoFactory provides access to the fulfillment repository within a transaction.
	FulfillmentRepoFactory interface {
		FulfillmentRepository() ports.FulfillmentRepository
	}

	// AuditRepoFactory provides access to the audit repository within a transaction.
	AuditRepoFactory interface {
		AuditRepository() ports.AuditRepository
	}

	// MembershipRepoFactory provides access to the membership repository within a transaction.
	MembershipRepoFactory interface {
		MembershipRepository() ports.MembershipRepository
	}

	// NotificationRepoFactory provides access to the notification repository within a transaction.
	NotificationRepoFactory interface {
		NotificationRepository() ports.NotificationRepository
	}

	// OrderUoW manages transactions for order mutations. Order commands also
	// reach the artifact repositories because cancelling an order cascades to
	// its attached design jobs, work orders, and fulfillment records.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		DesignJobRepoFactory
		WorkOrderRepoFactory
		FulfillmentRepoFactory
		AuditRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// ArtifactUoW manages transactions for design job, work order, and
	// fulfillment mutations. The order repository is included to verify the
	// parent order, the notification repository to record assignment
	// notifications in the same transaction.
	ArtifactUoW interface {
		TxManager
		OrderRepoFactory
		DesignJobRepoFactory
		WorkOrderRepoFactory
		FulfillmentRepoFactory
		AuditRepoFactory
		NotificationRepoFactory
	}

	// ArtifactUoWFactory creates new artifact unit of work instances.
	ArtifactUoWFactory interface {
		Create() ArtifactUoW
	}

	// MembershipUoW manages transactions for membership role changes.
	MembershipUoW interface {
		TxManager
		MembershipRepoFactory
		AuditRepoFactory
	}

	// MembershipUoWFactory creates new membership unit of work instances.
	MembershipUoWFactory interface {
		Create() MembershipUoW
	}
)
