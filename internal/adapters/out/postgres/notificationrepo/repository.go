package notificationrepo

import (
	"context"
	"errors"
	"time"

	"merchflow/internal/core/domain/model/kernel"
	"merchflow/internal/core/domain/model/notification"
	"merchflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormNotificationRepository implements ports.NotificationRepository using GORM.
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewGormNotificationRepository creates a new GORM notification repository.
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// Add saves a new notification.
func (r *GormNotificationRepository) Add(ctx context.Context, aggregate *notification.Notification) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetForRecipient retrieves a recipient's notifications, newest first.
func (r *GormNotificationRepository) GetForRecipient(ctx context.Context, organizationID, recipientID kernel.UUID) ([]*notification.Notification, error) {
	if err := errors.Join(organizationID.Validate(), recipientID.Validate()); err != nil {
		return nil, err
	}

	var dtos []NotificationDTO
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&dtos, "organization_id = ? AND recipient_id = ?", organizationID.Bytes(), recipientID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	notifications := make([]*notification.Notification, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, domainErr := toDomain(dto)
		if domainErr != nil {
			return nil, domainErr
		}
		notifications = append(notifications, aggregate)
	}

	return notifications, nil
}

// MarkRead marks one of the recipient's notifications read. A notification
// belonging to another recipient or organization is reported as not found.
func (r *GormNotificationRepository) MarkRead(ctx context.Context, organizationID, recipientID, id kernel.UUID) error {
	if err := errors.Join(organizationID.Validate(), recipientID.Validate(), id.Validate()); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&NotificationDTO{}).
		Where("id = ? AND organization_id = ? AND recipient_id = ?", id.Bytes(), organizationID.Bytes(), recipientID.Bytes()).
		Update("read", true)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("notification", id.String())
	}

	return nil
}

// PurgeRead removes read notifications created before the cutoff.
func (r *GormNotificationRepository) PurgeRead(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("read = ? AND created_at < ?", true, cutoff).
		Delete(&NotificationDTO{})
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}
