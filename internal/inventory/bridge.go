// Package inventory holds the rule that turns a purchased shopping-list item
// into an expense.
package inventory

import (
	"time"

	"github.com/mmynk/tripsplit/internal/models"
)

// PurchaseExpense returns the expense a purchase spawns, if any.
//
// prev is the item before the change, or nil when the item is new. An
// expense is produced only when the item moves into the bought state with a
// price above zero. Editing an item that was already bought produces
// nothing, and unmarking never retracts an expense: the two records are not
// linked after creation.
func PurchaseExpense(prev *models.InventoryItem, next models.InventoryItem, now time.Time) (models.Expense, bool) {
	if !next.IsBought || next.Price == nil || *next.Price <= 0 || next.Purchaser == nil {
		return models.Expense{}, false
	}
	if prev != nil && prev.IsBought {
		return models.Expense{}, false
	}

	return models.Expense{
		Title:    next.Name,
		Amount:   *next.Price,
		Payer:    *next.Purchaser,
		Category: models.CategoryMakanan,
		Date:     now,
	}, true
}
