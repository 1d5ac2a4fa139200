package models

import (
	"strings"
	"time"
)

// Category groups expenses the way the trip splits its pages.
type Category string

const (
	CategoryTransport Category = "transport"
	CategoryAlat      Category = "alat" // gear and equipment
	CategoryMakanan   Category = "makanan"
)

// Categories lists every valid category in display order.
var Categories = []Category{CategoryTransport, CategoryAlat, CategoryMakanan}

// Valid reports whether c is one of the fixed categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory converts user input into a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", Invalid("category", "must be one of transport, alat, makanan (got %q)", s)
	}
	return c, nil
}

// Expense is money one participant fronted on behalf of the group.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// Title describes what was bought (e.g., "Grab to Hotel").
	Title string

	// Amount is in whole currency units. Never negative.
	Amount int64

	// Payer is the display name of the participant who paid.
	// It may name someone outside the configured roster.
	Payer string

	// Category is one of transport, alat, makanan.
	Category Category

	// Date is when the expense was recorded.
	Date time.Time
}

// Validate checks the fields a user must provide for an expense.
func (e *Expense) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return Invalid("title", "is required")
	}
	if e.Amount < 0 {
		return Invalid("amount", "must not be negative")
	}
	if strings.TrimSpace(e.Payer) == "" {
		return Invalid("payer", "is required")
	}
	if !e.Category.Valid() {
		return Invalid("category", "must be one of transport, alat, makanan (got %q)", e.Category)
	}
	return nil
}

// ExpensePatch holds the editable fields of an expense.
// Nil fields are left unchanged.
type ExpensePatch struct {
	Title    *string
	Amount   *int64
	Payer    *string
	Category *Category
}

// Apply returns a copy of e with the patch applied.
func (p ExpensePatch) Apply(e Expense) Expense {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Amount != nil {
		e.Amount = *p.Amount
	}
	if p.Payer != nil {
		e.Payer = *p.Payer
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	return e
}

// CloneExpenses returns a structural copy of the list.
// Expense holds only value fields, so copying the slice is enough.
func CloneExpenses(expenses []Expense) []Expense {
	if expenses == nil {
		return []Expense{}
	}
	out := make([]Expense, len(expenses))
	copy(out, expenses)
	return out
}

// SumAmounts totals the amounts of the given expenses.
func SumAmounts(expenses []Expense) int64 {
	var total int64
	for _, e := range expenses {
		total += e.Amount
	}
	return total
}
