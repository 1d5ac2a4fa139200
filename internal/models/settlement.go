package models

import "time"

// Settlement is an archived snapshot of every expense at the moment the
// group settled up. Settlements are append-only and never edited.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string

	// Date is when the settlement was created.
	Date time.Time

	// Note labels the settlement (e.g., "Bali 2024"). Required.
	Note string

	// TotalAmount is the sum of the snapshotted expense amounts.
	TotalAmount int64

	// Participants is the roster the expenses were split across at settle
	// time, in roster order.
	Participants []string

	// Expenses is a frozen copy of the live expenses at settle time.
	// Later edits or deletes of live expenses do not reach it.
	Expenses []Expense
}
