package ports

import (
	"context"

	"merchflow/internal/core/domain/model/designjob"
	"merchflow/internal/core/domain/model/kernel"
)

// DesignJobRepository defines the persistence contract for design jobs.
type DesignJobRepository interface {
	// Add persists a new design job.
	Add(ctx context.Context, aggregate *designjob.DesignJob) error

	// Update persists changes with an optimistic concurrency check against
	// expectedVersion; fails with a ConflictError on mismatch.
	Update(ctx context.Context, aggregate *designjob.DesignJob, expectedVersion int) error

	// Get retrieves a design job owned by organizationID; foreign and
	// unknown ids are indistinguishable.
	Get(ctx context.Context, organizationID, id kernel.UUID) (*designjob.DesignJob, error)

	// GetByOrderID retrieves all design jobs attached to an order.
	GetByOrderID(ctx context.Context, organizationID, orderID kernel.UUID) ([]*designjob.DesignJob, error)
}
