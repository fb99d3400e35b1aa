// Package jobs provides scheduled background tasks. Jobs are managed
// through JobManager, which starts and stops them together.
package jobs

import (
	"context"
	"log/slog"
	"time"

	"merchflow/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// notificationRetention is how long read notifications are kept before the
// cleanup job removes them.
const notificationRetention = 30 * 24 * time.Hour

// NotificationCleanupJob purges read notifications past the retention
// window. Runs nightly; unread notifications are never touched.
type NotificationCleanupJob struct {
	notifications ports.NotificationRepository
	cron          *cron.Cron
	logger        *slog.Logger
}

// NewNotificationCleanupJob creates the cleanup job.
func NewNotificationCleanupJob(notifications ports.NotificationRepository, logger *slog.Logger) *NotificationCleanupJob {
	return &NotificationCleanupJob{
		notifications: notifications,
		cron:          cron.New(),
		logger:        logger.With("component", "notification_cleanup_job"),
	}
}

// Start schedules the job to run nightly at 03:00.
func (j *NotificationCleanupJob) Start() error {
	_, err := j.cron.AddFunc("0 3 * * *", func() {
		ctx := context.Background()
		cutoff := time.Now().UTC().Add(-notificationRetention)

		purged, purgeErr := j.notifications.PurgeRead(ctx, cutoff)
		if purgeErr != nil {
			j.logger.ErrorContext(ctx, "Notification cleanup job failed", "error", purgeErr)
			return
		}

		j.logger.InfoContext(ctx, "Notification cleanup job completed", "purged", purged)
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Notification cleanup job started (running nightly)")
	return nil
}

// Stop stops the cleanup job.
func (j *NotificationCleanupJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Notification cleanup job stopped")
}
