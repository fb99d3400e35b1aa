// Package auditrepo persists audit entries. The table is append-only: the
// repository exposes no update or delete, and the database enforces the
// same rule with a trigger installed at startup.
package auditrepo

import (
	"time"

	"merchflow/internal/core/domain/model/audit"
	"merchflow/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AuditEntryDTO represents one immutable audit row. Before and After hold
// JSON snapshots; nil Before marks a creation, nil After a deletion.
type AuditEntryDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OccurredAt     time.Time `gorm:"index;column:occurred_at"`
	ActorID        uuid.UUID `gorm:"type:uuid;column:actor_id"`
	OrganizationID uuid.UUID `gorm:"type:uuid;index;column:organization_id"`
	EntityType     string    `gorm:"column:entity_type"`
	EntityID       uuid.UUID `gorm:"type:uuid;index;column:entity_id"`
	Action         string
	Before         []byte `gorm:"type:jsonb"`
	After          []byte `gorm:"type:jsonb"`
}

// TableName specifies the database table name for audit entries.
func (AuditEntryDTO) TableName() string {
	return "audit_entries"
}

func fromDomain(entry *audit.Entry) AuditEntryDTO {
	return AuditEntryDTO{
		ID:             entry.ID().Bytes(),
		OccurredAt:     entry.OccurredAt(),
		ActorID:        entry.ActorID().Bytes(),
		OrganizationID: entry.OrganizationID().Bytes(),
		EntityType:     entry.EntityType(),
		EntityID:       entry.EntityID().Bytes(),
		Action:         entry.Action(),
		Before:         entry.Before(),
		After:          entry.After(),
	}
}

func toDomain(dto AuditEntryDTO) (*audit.Entry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	actorID, err := kernel.UUIDFromBytes(dto.ActorID[:])
	if err != nil {
		return nil, err
	}
	organizationID, err := kernel.UUIDFromBytes(dto.OrganizationID[:])
	if err != nil {
		return nil, err
	}
	entityID, err := kernel.UUIDFromBytes(dto.EntityID[:])
	if err != nil {
		return nil, err
	}

	return audit.RestoreEntry(
		id,
		dto.OccurredAt,
		actorID,
		organizationID,
		dto.EntityType,
		entityID,
		dto.Action,
		dto.Before,
		dto.After,
	)
}
