// Package queries contains read-only operations in the CQRS architecture.
// Query handlers read straight from the database, bypass the aggregates, and
// always filter by the actor's organization so a foreign id is
// indistinguishable from a nonexistent one.
package queries

import (
	"errors"
	"time"

	"merchflow/internal/core/domain/model/access"
	"merchflow/internal/core/domain/model/kernel"
	"merchflow/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order with its line items.
type GetOrderQuery struct {
	actor   access.Context
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for one order.
func NewGetOrderQuery(actor access.Context, orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		actor:   actor,
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// Actor returns the acting user's resolved context.
func (q GetOrderQuery) Actor() access.Context {
	return q.actor
}

// OrderID returns the requested order.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// OrderItemResponse is one order line in a query response.
type OrderItemResponse struct {
	ID             kernel.UUID
	CatalogItemID  kernel.UUID
	Quantity       int
	UnitPriceCents int64
}

// GetOrderQueryResponse is the full read model for one order.
type GetOrderQueryResponse struct {
	ID               kernel.UUID
	OrganizationID   kernel.UUID
	CustomerName     string
	CustomerEmail    string
	Items            []OrderItemResponse
	TotalAmountCents int64
	Status           string
	Priority         string
	DueDate          *time.Time
	Notes            string
	Version          int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
