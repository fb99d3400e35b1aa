package commands

import (
	"encoding/json"
	"time"

	"merchflow/internal/core/domain/model/access"
	"merchflow/internal/core/domain/model/kernel"
	"merchflow/internal/core/domain/model/order"
	"merchflow/internal/core/ports"
)

// Snapshots are the JSON before/after images stored on audit entries. They
// capture the fields an investigator needs to reconstruct what changed, not
// the full aggregate.

type orderSnapshot struct {
	Status           string `json:"status"`
	Priority         string `json:"priority"`
	TotalAmountCents int64  `json:"total_amount_cents"`
	Version          int    `json:"version"`
}

func snapshotOrder(o *order.Order) json.RawMessage {
	b, _ := json.Marshal(orderSnapshot{
		Status:           o.Status().String(),
		Priority:         string(o.Priority()),
		TotalAmountCents: o.TotalAmountCents(),
		Version:          o.Version(),
	})
	return b
}

type statusSnapshot struct {
	Status  string `json:"status"`
	Version int    `json:"version"`
}

func snapshotStatus(status string, version int) json.RawMessage {
	b, _ := json.Marshal(statusSnapshot{Status: status, Version: version})
	return b
}

type roleSnapshot struct {
	Role string `json:"role"`
}

func snapshotRole(role access.Role) json.RawMessage {
	b, _ := json.Marshal(roleSnapshot{Role: role.String()})
	return b
}

// newEvent builds the broadcast payload for one committed mutation. Handlers
// publish it only after the transaction commits.
func newEvent(actor access.Context, eventType, entityType string, entityID kernel.UUID, previous, next string) ports.Event {
	return ports.Event{
		Type:           eventType,
		OrganizationID: actor.OrganizationID,
		ActorID:        actor.UserID,
		EntityType:     entityType,
		EntityID:       entityID,
		PreviousState:  previous,
		NewState:       next,
		OccurredAt:     time.Now().UTC(),
	}
}
