package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/storage"
)

// CreateSettlement persists a settlement and its expense snapshot in one
// transaction.
func (s *SQLiteStore) CreateSettlement(ctx context.Context, settlement *models.Settlement) error {
	// Generate ID if not set
	if settlement.ID == "" {
		settlement.ID = uuid.New().String()
	}
	if settlement.Date.IsZero() {
		settlement.Date = time.Now().UTC()
	}

	participants, err := encodeParticipants(settlement.Participants)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storage.Unavailable("begin transaction", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO settlements (id, date, note, total_amount, participants) VALUES (?, ?, ?, ?, ?)",
		settlement.ID, toNanos(settlement.Date), settlement.Note, settlement.TotalAmount, participants,
	)
	if err != nil {
		return execError("insert settlement", err)
	}

	// Insert the snapshot
	for i, e := range settlement.Expenses {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO settlement_expenses (settlement_id, position, expense_id, title, amount, payer, category, date)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			settlement.ID, i, e.ID, e.Title, e.Amount, e.Payer, string(e.Category), toNanos(e.Date),
		)
		if err != nil {
			return execError("insert settlement expense", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return storage.Unavailable("commit settlement", err)
	}

	s.Publish(storage.CollectionSettlements)
	return nil
}

// GetSettlement retrieves a settlement by ID, including its snapshot.
func (s *SQLiteStore) GetSettlement(ctx context.Context, id string) (*models.Settlement, error) {
	settlement := &models.Settlement{}
	var (
		date         int64
		participants string
	)

	err := s.db.QueryRowContext(ctx,
		"SELECT id, date, note, total_amount, participants FROM settlements WHERE id = ?",
		id,
	).Scan(&settlement.ID, &date, &settlement.Note, &settlement.TotalAmount, &participants)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.NotFound(storage.CollectionSettlements, id)
	}
	if err != nil {
		return nil, storage.Unavailable("get settlement", err)
	}
	settlement.Date = fromNanos(date)
	if settlement.Participants, err = decodeParticipants(participants); err != nil {
		return nil, err
	}

	if settlement.Expenses, err = s.snapshot(ctx, settlement.ID); err != nil {
		return nil, err
	}

	return settlement, nil
}

// ListSettlements retrieves all settlements, newest first.
func (s *SQLiteStore) ListSettlements(ctx context.Context) ([]models.Settlement, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, date, note, total_amount, participants FROM settlements ORDER BY date DESC, rowid DESC",
	)
	if err != nil {
		return nil, storage.Unavailable("list settlements", err)
	}

	settlements := []models.Settlement{}
	for rows.Next() {
		var (
			settlement   models.Settlement
			date         int64
			participants string
		)
		if err := rows.Scan(&settlement.ID, &date, &settlement.Note, &settlement.TotalAmount, &participants); err != nil {
			rows.Close()
			return nil, storage.Unavailable("scan settlement", err)
		}
		settlement.Date = fromNanos(date)
		if settlement.Participants, err = decodeParticipants(participants); err != nil {
			rows.Close()
			return nil, err
		}
		settlements = append(settlements, settlement)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, storage.Unavailable("iterate settlements", err)
	}

	// Load snapshots after the outer rows are closed; the pool has a
	// single connection.
	for i := range settlements {
		if settlements[i].Expenses, err = s.snapshot(ctx, settlements[i].ID); err != nil {
			return nil, err
		}
	}

	return settlements, nil
}

// snapshot loads the archived expenses of a settlement in archive order.
func (s *SQLiteStore) snapshot(ctx context.Context, settlementID string) ([]models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT expense_id, title, amount, payer, category, date
		 FROM settlement_expenses WHERE settlement_id = ? ORDER BY position`,
		settlementID,
	)
	if err != nil {
		return nil, storage.Unavailable("get settlement expenses", err)
	}
	defer rows.Close()

	expenses := []models.Expense{}
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, storage.Unavailable("scan settlement expense", err)
		}
		expenses = append(expenses, *expense)
	}
	if err := rows.Err(); err != nil {
		return nil, storage.Unavailable("iterate settlement expenses", err)
	}

	return expenses, nil
}

func encodeParticipants(names []string) (string, error) {
	if names == nil {
		names = []string{}
	}
	b, err := json.Marshal(names)
	if err != nil {
		return "", fmt.Errorf("failed to encode participants: %w", err)
	}
	return string(b), nil
}

func decodeParticipants(s string) ([]string, error) {
	var names []string
	if err := json.Unmarshal([]byte(s), &names); err != nil {
		return nil, fmt.Errorf("failed to decode participants %q: %w", s, err)
	}
	if len(names) == 0 {
		return nil, nil
	}
	return names, nil
}
