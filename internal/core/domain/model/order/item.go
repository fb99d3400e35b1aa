package order

import (
	"errors"
	"fmt"

	"merchflow/internal/core/domain/model/kernel"
	"merchflow/internal/pkg/errs"
)

var (
	// ErrItemIsNotConstructed is returned when an Item instance was not
	// created through the NewItem factory function.
	ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")
)

// Item is an order line referencing a catalog item managed outside this
// system. Quantity must be positive and unit price non-negative.
type Item struct {
	id             kernel.UUID
	catalogItemID  kernel.UUID
	quantity       int
	unitPriceCents int64

	isConstructed bool
}

// NewItem creates a validated order line.
func NewItem(id kernel.UUID, catalogItemID kernel.UUID, quantity int, unitPriceCents int64) (Item, error) {
	item := Item{isConstructed: true}

	if err := errors.Join(
		item.setID(id),
		item.setCatalogItemID(catalogItemID),
		item.setQuantity(quantity),
		item.setUnitPriceCents(unitPriceCents),
	); err != nil {
		return Item{}, err
	}

	return item, nil
}

// Validate ensures the Item was created through NewItem.
func (i Item) Validate() error {
	if !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// ID returns the line's unique identifier.
func (i Item) ID() kernel.UUID {
	return i.id
}

// CatalogItemID returns the external catalog reference.
func (i Item) CatalogItemID() kernel.UUID {
	return i.catalogItemID
}

// Quantity returns the ordered quantity.
func (i Item) Quantity() int {
	return i.quantity
}

// UnitPriceCents returns the unit price in cents.
func (i Item) UnitPriceCents() int64 {
	return i.unitPriceCents
}

// SubtotalCents returns quantity times unit price.
func (i Item) SubtotalCents() int64 {
	return int64(i.quantity) * i.unitPriceCents
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setCatalogItemID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("catalog item id", err)
	}
	i.catalogItemID = id
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setUnitPriceCents(price int64) error {
	if price < 0 {
		return errs.NewValueIsInvalidErrorWithCause("unit price", fmt.Errorf("%d is negative", price))
	}
	i.unitPriceCents = price
	return nil
}
