package ports

import (
	"context"
	"time"

	"merchflow/internal/core/domain/model/kernel"
	"merchflow/internal/core/domain/model/notification"
)

// NotificationRepository defines the persistence contract for notifications.
type NotificationRepository interface {
	// Add persists a new notification.
	Add(ctx context.Context, aggregate *notification.Notification) error

	// GetForRecipient retrieves a recipient's notifications, newest first.
	GetForRecipient(ctx context.Context, organizationID, recipientID kernel.UUID) ([]*notification.Notification, error)

	// MarkRead marks one of the recipient's notifications read. Foreign and
	// unknown ids are indistinguishable.
	MarkRead(ctx context.Context, organizationID, recipientID, id kernel.UUID) error

	// PurgeRead removes read notifications created before the cutoff and
	// returns how many were removed. Used by the cleanup job.
	PurgeRead(ctx context.Context, cutoff time.Time) (int64, error)
}
