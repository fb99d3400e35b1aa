package ports

import (
	"context"

	"merchflow/internal/core/domain/model/fulfillment"
	"merchflow/internal/core/domain/model/kernel"
)

// FulfillmentRepository defines the persistence contract for fulfillment records.
type FulfillmentRepository interface {
	// Add persists a new fulfillment record.
	Add(ctx context.Context, aggregate *fulfillment.Record) error

	// Update persists changes with an optimistic concurrency check against
	// expectedVersion; fails with a ConflictError on mismatch.
	Update(ctx context.Context, aggregate *fulfillment.Record, expectedVersion int) error

	// Get retrieves a fulfillment record owned by organizationID; foreign
	// and unknown ids are indistinguishable.
	Get(ctx context.Context, organizationID, id kernel.UUID) (*fulfillment.Record, error)

	// GetByOrderID retrieves all fulfillment records attached to an order.
	GetByOrderID(ctx context.Context, organizationID, orderID kernel.UUID) ([]*fulfillment.Record, error)
}
