package auditrepo

import (
	"context"
	"errors"

	"merchflow/internal/core/domain/model/audit"
	"merchflow/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormAuditRepository implements ports.AuditRepository using GORM.
type GormAuditRepository struct {
	db *gorm.DB
}

// NewGormAuditRepository creates a new GORM audit repository.
func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

// Add appends one audit entry.
func (r *GormAuditRepository) Add(ctx context.Context, entry *audit.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entry)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// List returns the organization's entries newest first, optionally filtered
// to one entity.
func (r *GormAuditRepository) List(ctx context.Context, organizationID kernel.UUID, entityID *kernel.UUID, offset, limit int) ([]*audit.Entry, error) {
	if err := organizationID.Validate(); err != nil {
		return nil, err
	}
	if entityID != nil {
		if err := entityID.Validate(); err != nil {
			return nil, err
		}
	}

	query := r.db.WithContext(ctx).
		Where("organization_id = ?", organizationID.Bytes())
	if entityID != nil {
		query = query.Where("entity_id = ?", entityID.Bytes())
	}

	var dtos []AuditEntryDTO
	err := query.
		Order("occurred_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	entries := make([]*audit.Entry, 0, len(dtos))
	for _, dto := range dtos {
		entry, domainErr := toDomain(dto)
		if domainErr != nil {
			return nil, domainErr
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// AppendOnlyTrigger is the DDL that makes audit_entries immutable at the
// database level. UPDATE and DELETE are rejected for every role, platform
// administrators included. Installed by the composition root after
// migration.
const AppendOnlyTrigger = `
CREATE OR REPLACE FUNCTION audit_entries_append_only() RETURNS trigger AS $$
BEGIN
	RAISE EXCEPTION 'audit_entries is append-only';
END;
$$ LANGUAGE plpgsql;

DROP TRIGGER IF EXISTS audit_entries_no_rewrite ON audit_entries;
CREATE TRIGGER audit_entries_no_rewrite
	BEFORE UPDATE OR DELETE ON audit_entries
	FOR EACH ROW EXECUTE FUNCTION audit_entries_append_only();
`

// InstallAppendOnlyTrigger installs the immutability trigger.
func InstallAppendOnlyTrigger(db *gorm.DB) error {
	if db == nil {
		return errors.New("db is required")
	}
	return db.Exec(AppendOnlyTrigger).Error
}
