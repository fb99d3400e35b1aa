package ports

import (
	"context"

	"merchflow/internal/core/domain/model/audit"
	"merchflow/internal/core/domain/model/kernel"
)

// AuditRepository is append-only by contract: there is no update or delete,
// for any caller, platform admins included. Add runs inside the same unit of
// work as the mutation it records so the two commit or fail together.
type AuditRepository interface {
	// Add appends one audit entry.
	Add(ctx context.Context, entry *audit.Entry) error

	// List returns entries for the organization ordered by occurrence,
	// newest first, optionally filtered to one entity, paginated by
	// offset/limit.
	List(ctx context.Context, organizationID kernel.UUID, entityID *kernel.UUID, offset, limit int) ([]*audit.Entry, error)
}
