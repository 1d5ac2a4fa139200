package sqlite

import (
	"database/sql"
	"fmt"
)

// schema contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
// Dates are stored as Unix nanoseconds so snapshots round-trip exactly.
// settlement_expenses deliberately has no foreign key to expenses: it is a
// copy that must survive deletion of the live rows.
const schema = `
CREATE TABLE IF NOT EXISTS expenses (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    amount INTEGER NOT NULL CHECK (amount >= 0),
    payer TEXT NOT NULL,
    category TEXT NOT NULL,
    date INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS inventory_items (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    quantity_needed TEXT NOT NULL DEFAULT '',
    is_bought INTEGER NOT NULL DEFAULT 0,
    price INTEGER,
    purchaser TEXT,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS settlements (
    id TEXT PRIMARY KEY,
    date INTEGER NOT NULL,
    note TEXT NOT NULL,
    total_amount INTEGER NOT NULL,
    participants TEXT NOT NULL DEFAULT '[]'
);

CREATE TABLE IF NOT EXISTS settlement_expenses (
    settlement_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    expense_id TEXT NOT NULL,
    title TEXT NOT NULL,
    amount INTEGER NOT NULL,
    payer TEXT NOT NULL,
    category TEXT NOT NULL,
    date INTEGER NOT NULL,
    PRIMARY KEY (settlement_id, position),
    FOREIGN KEY (settlement_id) REFERENCES settlements(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_expenses_date ON expenses(date);
CREATE INDEX IF NOT EXISTS idx_settlements_date ON settlements(date);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return err
	}
	// Databases created before settlements recorded their participants.
	return addColumnIfMissing(db, "settlements", "participants", "TEXT NOT NULL DEFAULT '[]'")
}

func addColumnIfMissing(db *sql.DB, table, column, definition string) error {
	rows, err := db.Query(fmt.Sprintf("SELECT name FROM pragma_table_info('%s')", table))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		if name == column {
			return nil
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	rows.Close()

	_, err = db.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, definition))
	return err
}
