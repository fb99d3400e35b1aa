package queries

import (
	"context"
	"database/sql"
	"errors"

	"merchflow/internal/core/domain/model/access"
	"merchflow/internal/core/domain/services"
	"merchflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderReadinessQueryHandler computes completion prerequisites for one
// order: all of its work orders completed (cancelled ones don't count
// against readiness) and a fulfillment record delivered.
type GetOrderReadinessQueryHandler struct {
	db          *gorm.DB
	accessGuard services.AccessGuard
}

// NewGetOrderReadinessQueryHandler creates a handler for readiness checks.
func NewGetOrderReadinessQueryHandler(db *gorm.DB) GetOrderReadinessQueryHandler {
	return GetOrderReadinessQueryHandler{db: db, accessGuard: services.NewAccessGuard()}
}

// Handle executes the query.
func (h GetOrderReadinessQueryHandler) Handle(ctx context.Context, query GetOrderReadinessQuery) (GetOrderReadinessQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderReadinessQueryResponse{}, err
	}

	actor := query.Actor()
	if err := h.accessGuard.Check(actor, access.ActionRead, actor.OrganizationID); err != nil {
		return GetOrderReadinessQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			o.status,
			(SELECT COUNT(*) FROM work_orders w
				WHERE w.order_id = o.id AND w.status != 'cancelled') AS total,
			(SELECT COUNT(*) FROM work_orders w
				WHERE w.order_id = o.id AND w.status = 'completed') AS completed,
			(SELECT COUNT(*) FROM fulfillments f
				WHERE f.order_id = o.id AND f.status = 'delivered') AS delivered
		FROM orders o
		WHERE o.id = ? AND o.organization_id = ?
	`, query.OrderID().String(), actor.OrganizationID.String()).Row()

	var (
		status                      string
		total, completed, delivered int
	)
	err := row.Scan(&status, &total, &completed, &delivered)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderReadinessQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}
	if err != nil {
		return GetOrderReadinessQueryResponse{}, err
	}

	return GetOrderReadinessQueryResponse{
		OrderID:              query.OrderID(),
		Status:               status,
		WorkOrdersTotal:      total,
		WorkOrdersCompleted:  completed,
		FulfillmentDelivered: delivered > 0,
		Ready:                status == "delivered" && completed == total && delivered > 0,
	}, nil
}
