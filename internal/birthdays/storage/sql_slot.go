package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Dialect selects placeholder and DDL syntax for SQLSlot.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// SQLSlot keeps the collection in one row of the kv_slots table.
type SQLSlot struct {
	db      *sql.DB
	key     string
	dialect Dialect
}

// NewSQLSlot creates a SQLSlot. Call EnsureSchema before first use on a
// fresh database.
func NewSQLSlot(db *sql.DB, dialect Dialect, key string) *SQLSlot {
	if key == "" {
		key = DefaultKey
	}
	return &SQLSlot{db: db, key: key, dialect: dialect}
}

func (s *SQLSlot) Key() string { return s.key }

// EnsureSchema creates the kv_slots table if it does not exist
func (s *SQLSlot) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS kv_slots (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("create kv_slots: %w", err)
	}
	return nil
}

func (s *SQLSlot) Load(ctx context.Context) ([]byte, error) {
	query := `SELECT value FROM kv_slots WHERE key = ` + s.placeholder(1)

	var value string
	err := s.db.QueryRowContext(ctx, query, s.key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("load slot %s: %w", s.key, err)
	}
	return []byte(value), nil
}

// Save upserts the slot row.
func (s *SQLSlot) Save(ctx context.Context, data []byte) error {
	query := fmt.Sprintf(`
		INSERT INTO kv_slots (key, value, updated_at)
		VALUES (%s, %s, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP`,
		s.placeholder(1), s.placeholder(2))

	if _, err := s.db.ExecContext(ctx, query, s.key, string(data)); err != nil {
		return fmt.Errorf("save slot %s: %w", s.key, err)
	}
	return nil
}

func (s *SQLSlot) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLSlot) placeholder(n int) string {
	if s.dialect == DialectPostgres {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}
