package ports

import (
	"time"

	"merchflow/internal/core/domain/model/kernel"
)

// Event is a domain change notification fanned out to live subscribers.
// Events are advisory: handlers publish them only after the transaction
// commits, and delivery is best-effort.
type Event struct {
	Type           string
	OrganizationID kernel.UUID
	ActorID        kernel.UUID
	EntityType     string
	EntityID       kernel.UUID
	PreviousState  string
	NewState       string
	OccurredAt     time.Time
}

// EventPublisher fans out committed domain changes to the organization's
// live subscribers. Publish must never block the caller.
type EventPublisher interface {
	Publish(event Event)
}
