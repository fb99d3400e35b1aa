package ports

import (
	"context"

	"merchflow/internal/core/domain/model/kernel"
	"merchflow/internal/core/domain/model/workorder"
)

// WorkOrderRepository defines the persistence contract for work orders.
type WorkOrderRepository interface {
	// Add persists a new work order.
	Add(ctx context.Context, aggregate *workorder.WorkOrder) error

	// Update persists changes with an optimistic concurrency check against
	// expectedVersion; fails with a ConflictError on mismatch.
	Update(ctx context.Context, aggregate *workorder.WorkOrder, expectedVersion int) error

	// Get retrieves a work order owned by organizationID; foreign and
	// unknown ids are indistinguishable.
	Get(ctx context.Context, organizationID, id kernel.UUID) (*workorder.WorkOrder, error)

	// GetByOrderID retrieves all work orders attached to an order.
	GetByOrderID(ctx context.Context, organizationID, orderID kernel.UUID) ([]*workorder.WorkOrder, error)
}
