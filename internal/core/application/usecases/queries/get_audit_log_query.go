package queries

import (
	"encoding/json"
	"errors"
	"time"

	"merchflow/internal/core/domain/model/access"
	"merchflow/internal/core/domain/model/kernel"
	"merchflow/internal/pkg/errs"
	"merchflow/internal/pkg/guard"
)

var ErrGetAuditLogQueryIsNotConstructed = errors.New(
	"GetAuditLogQuery must be created via NewGetAuditLogQuery constructor",
)

const (
	defaultAuditPageSize = 50
	maxAuditPageSize     = 200
)

// GetAuditLogQuery retrieves the organization's audit trail, newest first,
// optionally filtered to one entity.
type GetAuditLogQuery struct {
	actor    access.Context
	entityID *kernel.UUID
	page     int
	perPage  int

	guard guard.ConstructorGuard
}

// NewGetAuditLogQuery creates an audit trail query. Page numbers start at 1;
// perPage falls back to the default when zero and is capped at the maximum.
func NewGetAuditLogQuery(actor access.Context, entityID *kernel.UUID, page, perPage int) (GetAuditLogQuery, error) {
	if entityID != nil {
		if err := entityID.Validate(); err != nil {
			return GetAuditLogQuery{}, err
		}
	}
	if page < 1 {
		page = 1
	}
	switch {
	case perPage == 0:
		perPage = defaultAuditPageSize
	case perPage < 0:
		return GetAuditLogQuery{}, errs.NewValueIsOutOfRangeError("per page", perPage, 1, maxAuditPageSize)
	case perPage > maxAuditPageSize:
		perPage = maxAuditPageSize
	}

	return GetAuditLogQuery{
		actor:    actor,
		entityID: entityID,
		page:     page,
		perPage:  perPage,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAuditLogQuery) Validate() error {
	return q.guard.Validate(ErrGetAuditLogQueryIsNotConstructed)
}

// Actor returns the acting user's resolved context.
func (q GetAuditLogQuery) Actor() access.Context {
	return q.actor
}

// EntityID returns the entity filter, or nil for the whole organization.
func (q GetAuditLogQuery) EntityID() *kernel.UUID {
	return q.entityID
}

// Page returns the 1-based page number.
func (q GetAuditLogQuery) Page() int {
	return q.page
}

// PerPage returns the page size.
func (q GetAuditLogQuery) PerPage() int {
	return q.perPage
}

// AuditEntryResponse is one audit trail entry in a query response.
type AuditEntryResponse struct {
	ID         kernel.UUID
	OccurredAt time.Time
	ActorID    kernel.UUID
	EntityType string
	EntityID   kernel.UUID
	Action     string
	Before     json.RawMessage
	After      json.RawMessage
}
