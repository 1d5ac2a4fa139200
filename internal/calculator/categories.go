package calculator

import "github.com/mmynk/tripsplit/internal/models"

// CategoryTotals sums expense amounts per category.
// Every known category is present, even with a zero total.
func CategoryTotals(expenses []models.Expense) map[models.Category]int64 {
	totals := make(map[models.Category]int64, len(models.Categories))
	for _, c := range models.Categories {
		totals[c] = 0
	}
	for _, e := range expenses {
		totals[e.Category] += e.Amount
	}
	return totals
}

// FilterByCategory returns the expenses in the given category, keeping order.
func FilterByCategory(expenses []models.Expense, category models.Category) []models.Expense {
	var out []models.Expense
	for _, e := range expenses {
		if e.Category == category {
			out = append(out, e)
		}
	}
	return out
}
