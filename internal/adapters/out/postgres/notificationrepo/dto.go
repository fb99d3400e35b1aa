// Package notificationrepo persists in-app notifications.
package notificationrepo

import (
	"time"

	"merchflow/internal/core/domain/model/kernel"
	"merchflow/internal/core/domain/model/notification"

	"github.com/google/uuid"
)

// NotificationDTO represents one notification row.
type NotificationDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrganizationID uuid.UUID `gorm:"type:uuid;index;column:organization_id"`
	RecipientID    uuid.UUID `gorm:"type:uuid;index;column:recipient_id"`
	Kind           string
	Payload        []byte    `gorm:"type:jsonb"`
	Read           bool      `gorm:"index"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

// TableName specifies the database table name for notifications.
func (NotificationDTO) TableName() string {
	return "notifications"
}

func fromDomain(aggregate *notification.Notification) NotificationDTO {
	return NotificationDTO{
		ID:             aggregate.ID().Bytes(),
		OrganizationID: aggregate.OrganizationID().Bytes(),
		RecipientID:    aggregate.RecipientID().Bytes(),
		Kind:           aggregate.Kind(),
		Payload:        aggregate.Payload(),
		Read:           aggregate.Read(),
		CreatedAt:      aggregate.CreatedAt(),
	}
}

func toDomain(dto NotificationDTO) (*notification.Notification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	organizationID, err := kernel.UUIDFromBytes(dto.OrganizationID[:])
	if err != nil {
		return nil, err
	}
	recipientID, err := kernel.UUIDFromBytes(dto.RecipientID[:])
	if err != nil {
		return nil, err
	}

	return notification.RestoreNotification(
		id,
		organizationID,
		recipientID,
		dto.Kind,
		dto.Payload,
		dto.Read,
		dto.CreatedAt,
	)
}
