// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/mmynk/tripsplit/internal/models"
)

// Collection names a group of records that can be watched for changes.
type Collection string

const (
	CollectionExpenses    Collection = "expenses"
	CollectionInventory   Collection = "inventory"
	CollectionSettlements Collection = "settlements"
)

// Store defines the interface for trip record storage.
// This abstraction allows swapping storage backends (SQLite, MongoDB)
// without changing the service layer.
//
// Writes are last-write-wins per record; there is no transaction spanning
// several calls.
type Store interface {
	ExpenseStore
	InventoryStore
	SettlementStore

	// Subscribe returns a channel that receives a value after every
	// successful write to the collection. Bursts are coalesced, so a
	// receiver should re-read the full collection on each signal.
	// The channel is closed when ctx is done.
	Subscribe(ctx context.Context, collection Collection) <-chan struct{}

	// Close releases any resources held by the store.
	Close() error
}

// ExpenseStore persists live expenses.
type ExpenseStore interface {
	// CreateExpense persists a new expense.
	// The expense.ID field will be populated by the store.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense by ID. Returns ErrNotFound if missing.
	GetExpense(ctx context.Context, id string) (*models.Expense, error)

	// UpdateExpense replaces an existing expense. Returns ErrNotFound if missing.
	UpdateExpense(ctx context.Context, expense *models.Expense) error

	// DeleteExpense removes an expense. Returns ErrNotFound if missing.
	DeleteExpense(ctx context.Context, id string) error

	// ListExpenses returns all live expenses, newest first.
	ListExpenses(ctx context.Context) ([]models.Expense, error)
}

// InventoryStore persists the shopping list.
type InventoryStore interface {
	CreateInventoryItem(ctx context.Context, item *models.InventoryItem) error
	GetInventoryItem(ctx context.Context, id string) (*models.InventoryItem, error)
	UpdateInventoryItem(ctx context.Context, item *models.InventoryItem) error
	DeleteInventoryItem(ctx context.Context, id string) error

	// ListInventory returns items in the order they were added.
	ListInventory(ctx context.Context) ([]models.InventoryItem, error)
}

// SettlementStore persists the append-only settlement history.
type SettlementStore interface {
	// CreateSettlement stores the settlement together with its own copy of
	// the expenses. The settlement.ID field will be populated by the store.
	CreateSettlement(ctx context.Context, settlement *models.Settlement) error

	GetSettlement(ctx context.Context, id string) (*models.Settlement, error)

	// ListSettlements returns all settlements, newest first.
	ListSettlements(ctx context.Context) ([]models.Settlement, error)
}
