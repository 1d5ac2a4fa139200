package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/storage"
)

// CreateInventoryItem persists a new shopping-list item.
func (s *SQLiteStore) CreateInventoryItem(ctx context.Context, item *models.InventoryItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO inventory_items (id, name, quantity_needed, is_bought, price, purchaser, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.Name, item.QuantityNeeded, item.IsBought,
		nullInt(item.Price), nullString(item.Purchaser), time.Now().UnixNano(),
	)
	if err != nil {
		return execError("insert inventory item", err)
	}

	s.Publish(storage.CollectionInventory)
	return nil
}

// GetInventoryItem retrieves an item by ID.
func (s *SQLiteStore) GetInventoryItem(ctx context.Context, id string) (*models.InventoryItem, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, name, quantity_needed, is_bought, price, purchaser FROM inventory_items WHERE id = ?",
		id,
	)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.NotFound(storage.CollectionInventory, id)
	}
	if err != nil {
		return nil, storage.Unavailable("get inventory item", err)
	}
	return item, nil
}

// UpdateInventoryItem replaces every field of an existing item.
func (s *SQLiteStore) UpdateInventoryItem(ctx context.Context, item *models.InventoryItem) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE inventory_items
		 SET name = ?, quantity_needed = ?, is_bought = ?, price = ?, purchaser = ?
		 WHERE id = ?`,
		item.Name, item.QuantityNeeded, item.IsBought, nullInt(item.Price), nullString(item.Purchaser), item.ID,
	)
	if err != nil {
		return execError("update inventory item", err)
	}
	if err := rowsAffected(res, storage.CollectionInventory, item.ID, "update inventory item"); err != nil {
		return err
	}

	s.Publish(storage.CollectionInventory)
	return nil
}

// DeleteInventoryItem removes an item by ID.
func (s *SQLiteStore) DeleteInventoryItem(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM inventory_items WHERE id = ?", id)
	if err != nil {
		return execError("delete inventory item", err)
	}
	if err := rowsAffected(res, storage.CollectionInventory, id, "delete inventory item"); err != nil {
		return err
	}

	s.Publish(storage.CollectionInventory)
	return nil
}

// ListInventory returns every item in the order it was added.
func (s *SQLiteStore) ListInventory(ctx context.Context) ([]models.InventoryItem, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, quantity_needed, is_bought, price, purchaser FROM inventory_items ORDER BY created_at, rowid",
	)
	if err != nil {
		return nil, storage.Unavailable("list inventory", err)
	}
	defer rows.Close()

	items := []models.InventoryItem{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, storage.Unavailable("scan inventory item", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, storage.Unavailable("iterate inventory", err)
	}

	return items, nil
}

func scanItem(row scanner) (*models.InventoryItem, error) {
	var (
		item      models.InventoryItem
		price     sql.NullInt64
		purchaser sql.NullString
	)
	if err := row.Scan(&item.ID, &item.Name, &item.QuantityNeeded, &item.IsBought, &price, &purchaser); err != nil {
		return nil, err
	}
	if price.Valid {
		item.Price = &price.Int64
	}
	if purchaser.Valid {
		item.Purchaser = &purchaser.String
	}
	return &item, nil
}

func nullInt(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}
