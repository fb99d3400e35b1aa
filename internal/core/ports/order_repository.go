// Package ports defines the contracts between the application core and
// infrastructure: repositories, the unit of work, and the event publisher.
// Every repository read and write is organization-scoped; an id that exists
// under a different organization behaves exactly like an id that does not
// exist at all.
package ports

import (
	"context"

	"merchflow/internal/core/domain/model/kernel"
	"merchflow/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order using optimistic
	// concurrency: expectedVersion is the version the caller read before
	// mutating. When the stored version differs, Update fails with a
	// ConflictError and writes nothing.
	Update(ctx context.Context, aggregate *order.Order, expectedVersion int) error

	// Get retrieves an order owned by organizationID. Returns an
	// ObjectNotFoundError for both unknown ids and ids owned by another
	// organization.
	Get(ctx context.Context, organizationID, id kernel.UUID) (*order.Order, error)

	// GetAll retrieves all orders owned by organizationID, newest first.
	GetAll(ctx context.Context, organizationID kernel.UUID) ([]*order.Order, error)

	// HasDependents reports whether the order has design jobs, work orders,
	// or fulfillment records attached.
	HasDependents(ctx context.Context, organizationID, id kernel.UUID) (bool, error)

	// Delete physically removes an order that never had dependents.
	Delete(ctx context.Context, organizationID, id kernel.UUID) error
}
