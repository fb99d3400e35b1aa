// Package notification contains per-user notifications. They are ephemeral
// relative to the audit log: read/dismissed notifications are purged by a
// scheduled job.
package notification

import (
	"encoding/json"
	"errors"
	"time"

	"merchflow/internal/core/domain/model/kernel"
	"merchflow/internal/pkg/errs"
)

// ErrNotificationIsNotConstructed is returned when a Notification was not
// created through NewNotification or RestoreNotification.
var ErrNotificationIsNotConstructed = errors.New("Notification must be created via NewNotification or RestoreNotification constructor")

// Notification is a message addressed to one user within one organization.
type Notification struct {
	id             kernel.UUID
	organizationID kernel.UUID
	recipientID    kernel.UUID
	kind           string
	payload        json.RawMessage
	read           bool
	createdAt      time.Time

	isConstructed bool
}

// NewNotification creates an unread notification timestamped now.
func NewNotification(organizationID, recipientID kernel.UUID, kind string, payload json.RawMessage) (*Notification, error) {
	return RestoreNotification(kernel.NewUUID(), organizationID, recipientID, kind, payload, false, time.Now().UTC())
}

// RestoreNotification reconstructs a notification from persistence.
func RestoreNotification(id, organizationID, recipientID kernel.UUID, kind string, payload json.RawMessage, read bool, createdAt time.Time) (*Notification, error) {
	if err := errors.Join(
		id.Validate(),
		organizationID.Validate(),
		recipientID.Validate(),
	); err != nil {
		return nil, err
	}

	if kind == "" {
		return nil, errs.NewValueIsRequiredError("notification kind")
	}

	return &Notification{
		id:             id,
		organizationID: organizationID,
		recipientID:    recipientID,
		kind:           kind,
		payload:        payload,
		read:           read,
		createdAt:      createdAt,
		isConstructed:  true,
	}, nil
}

// Validate ensures the notification was created through a constructor.
func (n *Notification) Validate() error {
	if n == nil || !n.isConstructed {
		return ErrNotificationIsNotConstructed
	}
	return nil
}

// ID returns the notification's unique identifier.
func (n *Notification) ID() kernel.UUID { return n.id }

// OrganizationID returns the tenant scope.
func (n *Notification) OrganizationID() kernel.UUID { return n.organizationID }

// RecipientID returns the addressed user.
func (n *Notification) RecipientID() kernel.UUID { return n.recipientID }

// Kind returns the notification type.
func (n *Notification) Kind() string { return n.kind }

// Payload returns the JSON payload.
func (n *Notification) Payload() json.RawMessage { return n.payload }

// Read reports whether the notification was read or dismissed.
func (n *Notification) Read() bool { return n.read }

// CreatedAt returns the creation timestamp.
func (n *Notification) CreatedAt() time.Time { return n.createdAt }

// MarkRead marks the notification read.
func (n *Notification) MarkRead() {
	n.read = true
}
