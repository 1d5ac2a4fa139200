package models

import "strings"

// InventoryItem is an entry on the shared shopping list.
//
// Price and Purchaser are set exactly when IsBought is true.
type InventoryItem struct {
	// ID is the unique identifier for the item (UUID format).
	ID string

	// Name is what to buy (e.g., "Beras", "Galon").
	Name string

	// QuantityNeeded is free text (e.g., "5kg"). Optional.
	QuantityNeeded string

	// IsBought marks the item as purchased.
	IsBought bool

	// Price is what the purchaser paid, in whole currency units.
	Price *int64

	// Purchaser is the display name of whoever bought the item.
	Purchaser *string
}

// Normalize clears purchase details from an item that is not bought.
func (i *InventoryItem) Normalize() {
	i.Name = strings.TrimSpace(i.Name)
	i.QuantityNeeded = strings.TrimSpace(i.QuantityNeeded)
	if !i.IsBought {
		i.Price = nil
		i.Purchaser = nil
	}
}

// Validate enforces the bought/price/purchaser invariant.
func (i *InventoryItem) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return Invalid("name", "is required")
	}
	if !i.IsBought {
		if i.Price != nil || i.Purchaser != nil {
			return Invalid("is_bought", "price and purchaser are only allowed on bought items")
		}
		return nil
	}
	if i.Price == nil {
		return Invalid("price", "is required when the item is bought")
	}
	if *i.Price < 0 {
		return Invalid("price", "must not be negative")
	}
	if i.Purchaser == nil || strings.TrimSpace(*i.Purchaser) == "" {
		return Invalid("purchaser", "is required when the item is bought")
	}
	return nil
}

// MarkBought sets the purchase details on the item.
func (i *InventoryItem) MarkBought(price int64, purchaser string) {
	i.IsBought = true
	i.Price = &price
	i.Purchaser = &purchaser
}

// Unmark reverts the item to not bought and clears price and purchaser.
func (i *InventoryItem) Unmark() {
	i.IsBought = false
	i.Price = nil
	i.Purchaser = nil
}

// Clone returns a deep copy of the item.
func (i InventoryItem) Clone() InventoryItem {
	if i.Price != nil {
		p := *i.Price
		i.Price = &p
	}
	if i.Purchaser != nil {
		p := *i.Purchaser
		i.Purchaser = &p
	}
	return i
}
