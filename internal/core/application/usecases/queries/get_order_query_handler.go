package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"merchflow/internal/core/domain/model/access"
	"merchflow/internal/core/domain/model/kernel"
	"merchflow/internal/core/domain/services"
	"merchflow/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads one order and its line items.
type GetOrderQueryHandler struct {
	db          *gorm.DB
	accessGuard services.AccessGuard
}

// NewGetOrderQueryHandler creates a handler for single-order reads.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db, accessGuard: services.NewAccessGuard()}
}

// Handle executes the query. Both unknown ids and ids owned by another
// organization produce an ObjectNotFoundError.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	actor := query.Actor()
	if err := h.accessGuard.Check(actor, access.ActionRead, actor.OrganizationID); err != nil {
		return GetOrderQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			organization_id,
			customer_name,
			customer_email,
			total_amount_cents,
			status,
			priority,
			due_date,
			notes,
			version,
			created_at,
			updated_at
		FROM orders
		WHERE id = ? AND organization_id = ?
	`, query.OrderID().String(), actor.OrganizationID.String()).Row()

	var (
		id, organizationID          uuid.UUID
		customerName, customerEmail string
		totalAmountCents            int64
		status, priority, notes     string
		dueDate                     sql.NullTime
		version                     int
		createdAt, updatedAt        time.Time
	)

	err := row.Scan(
		&id, &organizationID,
		&customerName, &customerEmail,
		&totalAmountCents, &status, &priority,
		&dueDate, &notes, &version,
		&createdAt, &updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	orgID, err := kernel.UUIDFromBytes(organizationID[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp := GetOrderQueryResponse{
		ID:               orderID,
		OrganizationID:   orgID,
		CustomerName:     customerName,
		CustomerEmail:    customerEmail,
		TotalAmountCents: totalAmountCents,
		Status:           status,
		Priority:         priority,
		Notes:            notes,
		Version:          version,
		CreatedAt:        createdAt,
		UpdatedAt:        updatedAt,
	}
	if dueDate.Valid {
		due := dueDate.Time
		resp.DueDate = &due
	}

	items, err := h.loadItems(ctx, query)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.Items = items

	return resp, nil
}

func (h GetOrderQueryHandler) loadItems(ctx context.Context, query GetOrderQuery) ([]OrderItemResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			catalog_item_id,
			quantity,
			unit_price_cents
		FROM order_items
		WHERE order_id = ?
		ORDER BY id
	`, query.OrderID().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]OrderItemResponse, 0)
	for rows.Next() {
		var (
			id, catalogItemID uuid.UUID
			quantity          int
			unitPriceCents    int64
		)
		if err = rows.Scan(&id, &catalogItemID, &quantity, &unitPriceCents); err != nil {
			return nil, err
		}

		itemID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		catalogID, idErr := kernel.UUIDFromBytes(catalogItemID[:])
		if idErr != nil {
			return nil, idErr
		}

		items = append(items, OrderItemResponse{
			ID:             itemID,
			CatalogItemID:  catalogID,
			Quantity:       quantity,
			UnitPriceCents: unitPriceCents,
		})
	}

	return items, rows.Err()
}
