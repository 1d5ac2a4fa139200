// Package models defines the core domain models for tripsplit.
//
// # Models
//
//   - Expense: money one participant fronted for the group, in one category
//   - InventoryItem: an entry on the shared shopping list
//   - Roster: the participant list a settlement is computed against
//   - Settlement: an archived, immutable snapshot of expenses at settle time
//
// Participants are identified by display name only. There are no user
// accounts; a client picks one name from the roster as its session.
//
// # Design Principles
//
//  1. Amounts are whole currency units (Rupiah) stored as int64
//  2. Optional inventory fields are pointers so "unset" differs from zero
//  3. Use ID strings instead of pointers for relationships
//  4. A Settlement owns a copy of its expenses, never a reference
//
// Each model carries a Validate method returning *ValidationError so that
// bad input is rejected before anything is written.
package models
