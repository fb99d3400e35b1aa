// Package workorderrepo persists work order aggregates.
package workorderrepo

import (
	"merchflow/internal/core/domain/model/kernel"
	"merchflow/internal/core/domain/model/workorder"

	"github.com/google/uuid"
)

// WorkOrderDTO represents the database structure for work orders.
type WorkOrderDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrganizationID uuid.UUID  `gorm:"type:uuid;index;column:organization_id"`
	OrderID        uuid.UUID  `gorm:"type:uuid;index;column:order_id"`
	DesignJobID    *uuid.UUID `gorm:"type:uuid;column:design_job_id"`
	Manufacturer   string
	TargetQuantity int    `gorm:"column:target_quantity"`
	ActualQuantity int    `gorm:"column:actual_quantity"`
	UnitCostCents  int64  `gorm:"column:unit_cost_cents"`
	TotalCostCents int64  `gorm:"column:total_cost_cents"`
	Status         string `gorm:"index"`
	Version        int
}

// TableName specifies the database table name for work orders.
func (WorkOrderDTO) TableName() string {
	return "work_orders"
}

func fromDomain(aggregate *workorder.WorkOrder) WorkOrderDTO {
	var designJobID *uuid.UUID
	if id := aggregate.DesignJobID(); id != nil {
		raw := id.Bytes()
		designJobID = &raw
	}

	return WorkOrderDTO{
		ID:             aggregate.ID().Bytes(),
		OrganizationID: aggregate.OrganizationID().Bytes(),
		OrderID:        aggregate.OrderID().Bytes(),
		DesignJobID:    designJobID,
		Manufacturer:   aggregate.Manufacturer(),
		TargetQuantity: aggregate.TargetQuantity(),
		ActualQuantity: aggregate.ActualQuantity(),
		UnitCostCents:  aggregate.UnitCostCents(),
		TotalCostCents: aggregate.TotalCostCents(),
		Status:         string(aggregate.Status()),
		Version:        aggregate.Version(),
	}
}

func toDomain(dto WorkOrderDTO) (*workorder.WorkOrder, error) {
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

	var designJobID *kernel.UUID
	if dto.DesignJobID != nil {
		jobID, jobErr := kernel.UUIDFromBytes((*dto.DesignJobID)[:])
		if jobErr != nil {
			return nil, jobErr
		}
		designJobID = &jobID
	}

	return workorder.RestoreWorkOrder(
		id,
		organizationID,
		orderID,
		designJobID,
		dto.Manufacturer,
		dto.TargetQuantity,
		dto.ActualQuantity,
		dto.UnitCostCents,
		dto.TotalCostCents,
		workorder.Status(dto.Status),
		dto.Version,
	)
}
