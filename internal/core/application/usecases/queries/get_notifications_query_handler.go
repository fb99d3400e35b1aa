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

// GetNotificationsQueryHandler reads the actor's notifications, newest first.
// The lookup is keyed by both organization and recipient, so a user sees
// only their own.
type GetNotificationsQueryHandler struct {
	db          *gorm.DB
	accessGuard services.AccessGuard
}

// NewGetNotificationsQueryHandler creates a handler for notification reads.
func NewGetNotificationsQueryHandler(db *gorm.DB) GetNotificationsQueryHandler {
	return GetNotificationsQueryHandler{db: db, accessGuard: services.NewAccessGuard()}
}

// Handle executes the query.
func (h GetNotificationsQueryHandler) Handle(ctx context.Context, query GetNotificationsQuery) ([]NotificationResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	actor := query.Actor()
	if err := h.accessGuard.Check(actor, access.ActionRead, actor.OrganizationID); err != nil {
		return nil, err
	}

	sqlQuery := `
		SELECT
			id,
			kind,
			payload,
			read,
			created_at
		FROM notifications
		WHERE organization_id = ? AND recipient_id = ?
	`
	args := []any{actor.OrganizationID.String(), actor.UserID.String()}

	if query.UnreadOnly() {
		sqlQuery += ` AND read = false`
	}
	sqlQuery += ` ORDER BY created_at DESC`

	rows, err := h.db.WithContext(ctx).Raw(sqlQuery, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := make([]NotificationResponse, 0)
	for rows.Next() {
		var (
			id        uuid.UUID
			kind      string
			payload   []byte
			read      bool
			createdAt time.Time
		)
		if err = rows.Scan(&id, &kind, &payload, &read, &createdAt); err != nil {
			return nil, err
		}

		notificationID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		notifications = append(notifications, NotificationResponse{
			ID:        notificationID,
			Kind:      kind,
			Payload:   payload,
			Read:      read,
			CreatedAt: createdAt,
		})
	}

	return notifications, rows.Err()
}
