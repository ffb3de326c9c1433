package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

const schema = `
CREATE TABLE IF NOT EXISTS kv_entries (
    entry_key   TEXT PRIMARY KEY,
    entry_value TEXT NOT NULL,
    updated_at  TIMESTAMP NOT NULL
)`

// SQLStore keeps entries in a single table. The same queries run on sqlite and postgres;
// placeholders are rebound for the connected driver.
type SQLStore struct {
	DB *sqlx.DB
}

func NewSQLStore(ctx context.Context, db *sqlx.DB) (*SQLStore, error) {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("failed to migrate kv_entries: %w", err)
	}
	return &SQLStore{DB: db}, nil
}

type entry struct {
	Key       string    `db:"entry_key"`
	Value     string    `db:"entry_value"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	query := s.DB.Rebind(`SELECT entry_value FROM kv_entries WHERE entry_key = ? LIMIT 1`)
	err := s.DB.GetContext(ctx, &value, query, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get %q: %w", key, err)
	}
	return []byte(value), nil
}

func (s *SQLStore) Set(ctx context.Context, key string, value []byte) error {
	query := `
        INSERT INTO kv_entries (entry_key, entry_value, updated_at)
        VALUES (:entry_key, :entry_value, :updated_at)
        ON CONFLICT (entry_key) DO UPDATE
        SET entry_value = excluded.entry_value, updated_at = excluded.updated_at
    `
	e := entry{Key: key, Value: string(value), UpdatedAt: time.Now().UTC()}
	if _, err := s.DB.NamedExecContext(ctx, query, e); err != nil {
		return fmt.Errorf("failed to set %q: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, key string) error {
	query := s.DB.Rebind(`DELETE FROM kv_entries WHERE entry_key = ?`)
	if _, err := s.DB.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Close() error {
	return s.DB.Close()
}
