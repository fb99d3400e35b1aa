package commands

import (
	"errors"

	"merchflow/internal/core/domain/model/access"
	"merchflow/internal/core/domain/model/kernel"
	"merchflow/internal/pkg/guard"
)

var ErrMarkNotificationReadCommandIsNotConstructed = errors.New(
	"MarkNotificationReadCommand must be created via NewMarkNotificationReadCommand constructor",
)

// MarkNotificationReadCommand represents a request by a user to mark one of
// their own notifications read. Read notifications are later purged by the
// cleanup job.
type MarkNotificationReadCommand struct { //nolint:recvcheck //using for validation
	actor          access.Context
	notificationID kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkNotificationReadCommand creates a command to mark a notification read.
func NewMarkNotificationReadCommand(actor access.Context, notificationID kernel.UUID) (MarkNotificationReadCommand, error) {
	if err := notificationID.Validate(); err != nil {
		return MarkNotificationReadCommand{}, err
	}

	return MarkNotificationReadCommand{
		actor:          actor,
		notificationID: notificationID,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkNotificationReadCommand) Validate() error {
	return c.guard.Validate(ErrMarkNotificationReadCommandIsNotConstructed)
}

// Actor returns the acting user's resolved context.
func (c MarkNotificationReadCommand) Actor() access.Context {
	return c.actor
}

// NotificationID returns the notification to mark read.
func (c MarkNotificationReadCommand) NotificationID() kernel.UUID {
	return c.notificationID
}
