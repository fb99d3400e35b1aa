// Package fulfillmentrepo persists fulfillment record aggregates.
package fulfillmentrepo

import (
	"merchflow/internal/core/domain/model/fulfillment"
	"merchflow/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// FulfillmentDTO represents the database structure for fulfillment records.
type FulfillmentDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrganizationID uuid.UUID `gorm:"type:uuid;index;column:organization_id"`
	OrderID        uuid.UUID `gorm:"type:uuid;index;column:order_id"`
	Destination    string
	Carrier        string
	TrackingNumber string `gorm:"column:tracking_number"`
	Status         string `gorm:"index"`
	Version        int
}

// TableName specifies the database table name for fulfillment records.
func (FulfillmentDTO) TableName() string {
	return "fulfillments"
}

func fromDomain(aggregate *fulfillment.Record) FulfillmentDTO {
	return FulfillmentDTO{
		ID:             aggregate.ID().Bytes(),
		OrganizationID: aggregate.OrganizationID().Bytes(),
		OrderID:        aggregate.OrderID().Bytes(),
		Destination:    aggregate.Destination(),
		Carrier:        aggregate.Carrier(),
		TrackingNumber: aggregate.TrackingNumber(),
		Status:         string(aggregate.Status()),
		Version:        aggregate.Version(),
	}
}

func toDomain(dto FulfillmentDTO) (*fulfillment.Record, error) {
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

	return fulfillment.RestoreRecord(
		id,
		organizationID,
		orderID,
		dto.Destination,
		dto.Carrier,
		dto.TrackingNumber,
		fulfillment.Status(dto.Status),
		dto.Version,
	)
}
