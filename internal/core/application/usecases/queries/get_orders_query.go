package queries

import (
	"errors"
	"time"

	"merchflow/internal/core/domain/model/access"
	"merchflow/internal/core/domain/model/kernel"
	"merchflow/internal/pkg/guard"
)

var ErrGetOrdersQueryIsNotConstructed = errors.New(
	"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
)

// GetOrdersQuery retrieves all orders of the actor's organization.
type GetOrdersQuery struct {
	actor access.Context

	guard guard.ConstructorGuard
}

// NewGetOrdersQuery creates a query for the organization's orders.
func NewGetOrdersQuery(actor access.Context) GetOrdersQuery {
	return GetOrdersQuery{actor: actor, guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

// Actor returns the acting user's resolved context.
func (q GetOrdersQuery) Actor() access.Context {
	return q.actor
}

// OrderSummaryResponse is one order in the organization listing. Line items
// are not expanded here; GetOrderQuery returns the full read model.
type OrderSummaryResponse struct {
	ID               kernel.UUID
	CustomerName     string
	TotalAmountCents int64
	Status           string
	Priority         string
	DueDate          *time.Time
	Version          int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
