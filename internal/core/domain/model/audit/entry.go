// Package audit contains the immutable audit trail entry. Entries are
// write-once: nothing in this package or anywhere above it exposes an update
// or delete, and the storage layer backs that up with a trigger.
package audit

import (
	"encoding/json"
	"errors"
	"time"

	"merchflow/internal/core/domain/model/kernel"
	"merchflow/internal/pkg/errs"
)

// ErrEntryIsNotConstructed is returned when an Entry was not created through
// NewEntry or RestoreEntry.
var ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry or RestoreEntry constructor")

// ErrActionIsRequired is returned when no action name is given.
var ErrActionIsRequired = errors.New("audit action is required")

// Entry records a single accepted mutation: who did what to which entity,
// with JSON before/after snapshots. It is recorded in the same transaction
// as the mutation it describes, so the two commit or fail together.
type Entry struct {
	id             kernel.UUID
	occurredAt     time.Time
	actorID        kernel.UUID
	organizationID kernel.UUID
	entityType     string
	entityID       kernel.UUID
	action         string
	before         json.RawMessage
	after          json.RawMessage

	isConstructed bool
}

// NewEntry creates an audit entry timestamped now. before may be nil for
// creations; after may be nil for deletions.
func NewEntry(
	actorID, organizationID kernel.UUID,
	entityType string,
	entityID kernel.UUID,
	action string,
	before, after json.RawMessage,
) (*Entry, error) {
	return RestoreEntry(kernel.NewUUID(), time.Now().UTC(), actorID, organizationID, entityType, entityID, action, before, after)
}

// RestoreEntry reconstructs an audit entry from persistence.
func RestoreEntry(
	id kernel.UUID,
	occurredAt time.Time,
	actorID, organizationID kernel.UUID,
	entityType string,
	entityID kernel.UUID,
	action string,
	before, after json.RawMessage,
) (*Entry, error) {
	if err := errors.Join(
		id.Validate(),
		actorID.Validate(),
		organizationID.Validate(),
		entityID.Validate(),
	); err != nil {
		return nil, err
	}

	if entityType == "" {
		return nil, errs.NewValueIsRequiredError("entity type")
	}
	if action == "" {
		return nil, ErrActionIsRequired
	}

	return &Entry{
		id:             id,
		occurredAt:     occurredAt,
		actorID:        actorID,
		organizationID: organizationID,
		entityType:     entityType,
		entityID:       entityID,
		action:         action,
		before:         before,
		after:          after,
		isConstructed:  true,
	}, nil
}

// Validate ensures the entry was created through a constructor.
func (e *Entry) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEntryIsNotConstructed
	}
	return nil
}

// ID returns the entry's unique identifier.
func (e *Entry) ID() kernel.UUID { return e.id }

// OccurredAt returns when the mutation happened.
func (e *Entry) OccurredAt() time.Time { return e.occurredAt }

// ActorID returns the user who performed the mutation.
func (e *Entry) ActorID() kernel.UUID { return e.actorID }

// OrganizationID returns the tenant the mutation belongs to.
func (e *Entry) OrganizationID() kernel.UUID { return e.organizationID }

// EntityType returns the kind of entity mutated (order, design_job, ...).
func (e *Entry) EntityType() string { return e.entityType }

// EntityID returns the mutated entity's id.
func (e *Entry) EntityID() kernel.UUID { return e.entityID }

// Action returns the mutation name (order.transition, order.create, ...).
func (e *Entry) Action() string { return e.action }

// Before returns the JSON snapshot prior to the mutation, nil for creations.
func (e *Entry) Before() json.RawMessage { return e.before }

// After returns the JSON snapshot following the mutation, nil for deletions.
func (e *Entry) After() json.RawMessage { return e.after }
