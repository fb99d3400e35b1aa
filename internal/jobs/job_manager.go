package jobs

import (
	"fmt"
	"log/slog"

	"merchflow/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	notificationCleanupJob *NotificationCleanupJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(notifications ports.NotificationRepository, logger *slog.Logger) *JobManager {
	return &JobManager{
		notificationCleanupJob: NewNotificationCleanupJob(notifications, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.notificationCleanupJob.Start(); err != nil {
		return fmt.Errorf("failed to start notification cleanup job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.notificationCleanupJob.Stop()
}
