package queries

import (
	"encoding/json"
	"errors"
	"time"

	"merchflow/internal/core/domain/model/access"
	"merchflow/internal/core/domain/model/kernel"
	"merchflow/internal/pkg/guard"
)

var ErrGetNotificationsQueryIsNotConstructed = errors.New(
	"GetNotificationsQuery must be created via NewGetNotificationsQuery constructor",
)

// GetNotificationsQuery retrieves the actor's own notifications.
type GetNotificationsQuery struct {
	actor      access.Context
	unreadOnly bool

	guard guard.ConstructorGuard
}

// NewGetNotificationsQuery creates a notifications query.
func NewGetNotificationsQuery(actor access.Context, unreadOnly bool) GetNotificationsQuery {
	return GetNotificationsQuery{
		actor:      actor,
		unreadOnly: unreadOnly,
		guard:      guard.NewConstructorGuard(),
	}
}

// Validate ensures the query was created through the constructor.
func (q GetNotificationsQuery) Validate() error {
	return q.guard.Validate(ErrGetNotificationsQueryIsNotConstructed)
}

// Actor returns the acting user's resolved context.
func (q GetNotificationsQuery) Actor() access.Context {
	return q.actor
}

// UnreadOnly reports whether read notifications are filtered out.
func (q GetNotificationsQuery) UnreadOnly() bool {
	return q.unreadOnly
}

// NotificationResponse is one notification in a query response.
type NotificationResponse struct {
	ID        kernel.UUID
	Kind      string
	Payload   json.RawMessage
	Read      bool
	CreatedAt time.Time
}
