// Package designjobrepo persists design job aggregates.
package designjobrepo

import (
	"time"

	"merchflow/internal/core/domain/model/designjob"
	"merchflow/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DesignJobDTO represents the database structure for design jobs.
type DesignJobDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrganizationID uuid.UUID `gorm:"type:uuid;index;column:organization_id"`
	OrderID        uuid.UUID `gorm:"type:uuid;index;column:order_id"`
	DesignerID     uuid.UUID `gorm:"type:uuid;column:designer_id"`
	Status         string
	DueDate        *time.Time `gorm:"column:due_date"`
	Version        int
}

// TableName specifies the database table name for design jobs.
func (DesignJobDTO) TableName() string {
	return "design_jobs"
}

func fromDomain(aggregate *designjob.DesignJob) DesignJobDTO {
	return DesignJobDTO{
		ID:             aggregate.ID().Bytes(),
		OrganizationID: aggregate.OrganizationID().Bytes(),
		OrderID:        aggregate.OrderID().Bytes(),
		DesignerID:     aggregate.DesignerID().Bytes(),
		Status:         string(aggregate.Status()),
		DueDate:        aggregate.DueDate(),
		Version:        aggregate.Version(),
	}
}

func toDomain(dto DesignJobDTO) (*designjob.DesignJob, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	organizationID, err := kernel.UUIDFromBytes(dto.OrganizationID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	designerID, err := kernel.UUIDFromBytes(dto.DesignerID[:])
	if err != nil {
		return nil, err
	}

	return designjob.RestoreDesignJob(
		id,
		organizationID,
		orderID,
		designerID,
		designjob.Status(dto.Status),
		dto.DueDate,
		dto.Version,
	)
}
