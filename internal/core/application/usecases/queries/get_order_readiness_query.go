package queries

import (
	"errors"

	"merchflow/internal/core/domain/model/access"
	"merchflow/internal/core/domain/model/kernel"
	"merchflow/internal/pkg/guard"
)

var ErrGetOrderReadinessQueryIsNotConstructed = errors.New(
	"GetOrderReadinessQuery must be created via NewGetOrderReadinessQuery constructor",
)

// GetOrderReadinessQuery reports whether an order's completion prerequisites
// hold. Completion itself stays an explicit, separately authorized
// transition; this query only informs it.
type GetOrderReadinessQuery struct {
	actor   access.Context
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderReadinessQuery creates a readiness query for one order.
func NewGetOrderReadinessQuery(actor access.Context, orderID kernel.UUID) (GetOrderReadinessQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderReadinessQuery{}, err
	}

	return GetOrderReadinessQuery{
		actor:   actor,
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderReadinessQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderReadinessQueryIsNotConstructed)
}

// Actor returns the acting user's resolved context.
func (q GetOrderReadinessQuery) Actor() access.Context {
	return q.actor
}

// OrderID returns the order being checked.
func (q GetOrderReadinessQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderReadinessQueryResponse lists each completion prerequisite
// separately so the caller can tell what is still missing.
type GetOrderReadinessQueryResponse struct {
	OrderID kernel.UUID
	Status  string

	// WorkOrdersTotal counts the order's non-cancelled work orders;
	// WorkOrdersCompleted counts how many of those are completed.
	WorkOrdersTotal     int
	WorkOrdersCompleted int

	// FulfillmentDelivered reports whether at least one fulfillment record
	// reached delivered.
	FulfillmentDelivered bool

	// Ready is true when every prerequisite holds and the order is in
	// delivered state, so a transition to completed would be accepted.
	Ready bool
}
