// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. This package implements the repository pattern for the
// order aggregate, handling the conversion between domain entities and
// database rows. Order lines live in their own table and are loaded with the
// order.
package orderrepo

import (
	"time"

	"merchflow/internal/core/domain/model/kernel"
	"merchflow/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Indexed by organization for tenant-scoped lookups and by status for
// list filtering.
type OrderDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrganizationID   uuid.UUID `gorm:"type:uuid;index;column:organization_id"`
	CustomerName     string    `gorm:"column:customer_name"`
	CustomerEmail    string    `gorm:"column:customer_email"`
	TotalAmountCents int64     `gorm:"column:total_amount_cents"`
	Status           string    `gorm:"index"`
	Priority         string
	DueDate          *time.Time `gorm:"column:due_date"`
	Notes            string
	Version          int
	CreatedAt        time.Time `gorm:"column:created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at"`

	Items []ItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO represents one order line row.
type ItemDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID `gorm:"type:uuid;index;column:order_id"`
	CatalogItemID  uuid.UUID `gorm:"type:uuid;column:catalog_item_id"`
	Quantity       int
	UnitPriceCents int64 `gorm:"column:unit_price_cents"`
}

// TableName specifies the database table name for order lines.
func (ItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order aggregate to its database representation,
// order lines included.
func fromDomain(aggregate *order.Order) OrderDTO {
	items := aggregate.Items()
	itemDTOs := make([]ItemDTO, 0, len(items))
	for _, item := range items {
		itemDTOs = append(itemDTOs, ItemDTO{
			ID:             item.ID().Bytes(),
			OrderID:        aggregate.ID().Bytes(),
			CatalogItemID:  item.CatalogItemID().Bytes(),
			Quantity:       item.Quantity(),
			UnitPriceCents: item.UnitPriceCents(),
		})
	}

	return OrderDTO{
		ID:               aggregate.ID().Bytes(),
		OrganizationID:   aggregate.OrganizationID().Bytes(),
		CustomerName:     aggregate.Customer().Name,
		CustomerEmail:    aggregate.Customer().Email,
		TotalAmountCents: aggregate.TotalAmountCents(),
		Status:           string(aggregate.Status()),
		Priority:         string(aggregate.Priority()),
		DueDate:          aggregate.DueDate(),
		Notes:            aggregate.Notes(),
		Version:          aggregate.Version(),
		CreatedAt:        aggregate.CreatedAt(),
		UpdatedAt:        aggregate.UpdatedAt(),
		Items:            itemDTOs,
	}
}

// toDomain converts a database DTO to an order aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	organizationID, err := kernel.UUIDFromBytes(dto.OrganizationID[:])
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := toDomainItem(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		id,
		organizationID,
		order.Customer{Name: dto.CustomerName, Email: dto.CustomerEmail},
		items,
		dto.TotalAmountCents,
		order.Status(dto.Status),
		order.Priority(dto.Priority),
		dto.DueDate,
		dto.Notes,
		dto.Version,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}

func toDomainItem(dto ItemDTO) (order.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return order.Item{}, err
	}

	catalogItemID, err := kernel.UUIDFromBytes(dto.CatalogItemID[:])
	if err != nil {
		return order.Item{}, err
	}

	return order.NewItem(id, catalogItemID, dto.Quantity, dto.UnitPriceCents)
}
