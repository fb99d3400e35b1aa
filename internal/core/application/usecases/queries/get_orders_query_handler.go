package queries

import (
	"context"
	"database/sql"
	"time"

	"merchflow/internal/core/domain/model/access"
	"merchflow/internal/core/domain/model/kernel"
	"merchflow/internal/core/domain/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrdersQueryHandler lists the organization's orders, newest first.
type GetOrdersQueryHandler struct {
	db          *gorm.DB
	accessGuard services.AccessGuard
}

// NewGetOrdersQueryHandler creates a handler for order listings.
func NewGetOrdersQueryHandler(db *gorm.DB) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{db: db, accessGuard: services.NewAccessGuard()}
}

// Handle executes the query.
func (h GetOrdersQueryHandler) Handle(ctx context.Context, query GetOrdersQuery) ([]OrderSummaryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	actor := query.Actor()
	if err := h.accessGuard.Check(actor, access.ActionRead, actor.OrganizationID); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_name,
			total_amount_cents,
			status,
			priority,
			due_date,
			version,
			created_at,
			updated_at
		FROM orders
		WHERE organization_id = ?
		ORDER BY created_at DESC
	`, actor.OrganizationID.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]OrderSummaryResponse, 0)
	for rows.Next() {
		var (
			id                   uuid.UUID
			customerName         string
			totalAmountCents     int64
			status, priority     string
			dueDate              sql.NullTime
			version              int
			createdAt, updatedAt time.Time
		)
		if err = rows.Scan(&id, &customerName, &totalAmountCents, &status, &priority, &dueDate, &version, &createdAt, &updatedAt); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		resp := OrderSummaryResponse{
			ID:               orderID,
			CustomerName:     customerName,
			TotalAmountCents: totalAmountCents,
			Status:           status,
			Priority:         priority,
			Version:          version,
			CreatedAt:        createdAt,
			UpdatedAt:        updatedAt,
		}
		if dueDate.Valid {
			due := dueDate.Time
			resp.DueDate = &due
		}
		orders = append(orders, resp)
	}

	return orders, rows.Err()
}
