package queries

import (
	"context"
	"time"

	"merchflow/internal/core/domain/model/access"
	"merchflow/internal/core/domain/model/kernel"
	"merchflow/internal/core/domain/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAuditLogQueryHandler reads the organization's audit trail.
type GetAuditLogQueryHandler struct {
	db          *gorm.DB
	accessGuard services.AccessGuard
}

// NewGetAuditLogQueryHandler creates a handler for audit trail reads.
func NewGetAuditLogQueryHandler(db *gorm.DB) GetAuditLogQueryHandler {
	return GetAuditLogQueryHandler{db: db, accessGuard: services.NewAccessGuard()}
}

// Handle executes the query, newest entries first.
func (h GetAuditLogQueryHandler) Handle(ctx context.Context, query GetAuditLogQuery) ([]AuditEntryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	actor := query.Actor()
	if err := h.accessGuard.Check(actor, access.ActionRead, actor.OrganizationID); err != nil {
		return nil, err
	}

	offset := (query.Page() - 1) * query.PerPage()

	sqlQuery := `
		SELECT
			id,
			occurred_at,
			actor_id,
			entity_type,
			entity_id,
			action,
			before,
			after
		FROM audit_entries
		WHERE organization_id = ?
	`
	args := []any{actor.OrganizationID.String()}

	if query.EntityID() != nil {
		sqlQuery += ` AND entity_id = ?`
		args = append(args, query.EntityID().String())
	}

	sqlQuery += `
		ORDER BY occurred_at DESC, id DESC
		LIMIT ? OFFSET ?
	`
	args = append(args, query.PerPage(), offset)

	rows, err := h.db.WithContext(ctx).Raw(sqlQuery, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]AuditEntryResponse, 0)
	for rows.Next() {
		var (
			id, actorID, entityID uuid.UUID
			occurredAt            time.Time
			entityType, action    string
			before, after         []byte
		)
		if err = rows.Scan(&id, &occurredAt, &actorID, &entityType, &entityID, &action, &before, &after); err != nil {
			return nil, err
		}

		entryID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		actorUUID, idErr := kernel.UUIDFromBytes(actorID[:])
		if idErr != nil {
			return nil, idErr
		}
		entityUUID, idErr := kernel.UUIDFromBytes(entityID[:])
		if idErr != nil {
			return nil, idErr
		}

		entries = append(entries, AuditEntryResponse{
			ID:         entryID,
			OccurredAt: occurredAt,
			ActorID:    actorUUID,
			EntityType: entityType,
			EntityID:   entityUUID,
			Action:     action,
			Before:     before,
			After:      after,
		})
	}

	return entries, rows.Err()
}
