// Package localstore keeps cart snapshots in a SQLite file, one JSON
// document per key. The CLI uses it as the cart's durable store.
package localstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nikolayk812/coinvault/internal/domain"
	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS cart_snapshots (
	key        TEXT PRIMARY KEY,
	payload    TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the SQLite file at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("path is empty")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}
	// single writer
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, errors.Join(fmt.Errorf("db.ExecContext: %w", err), db.Close())
	}

	return &Store{db: db}, nil
}

func (s *Store) Load(ctx context.Context, key string) ([]domain.CartItem, error) {
	if key == "" {
		return nil, fmt.Errorf("key is empty")
	}

	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM cart_snapshots WHERE key = ?`, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return []domain.CartItem{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("row.Scan: %w", err)
	}

	items, err := domain.UnmarshalCartItems([]byte(payload))
	if err != nil {
		return nil, fmt.Errorf("domain.UnmarshalCartItems: %w", err)
	}

	return items, nil
}

func (s *Store) Save(ctx context.Context, key string, items []domain.CartItem) error {
	if key == "" {
		return fmt.Errorf("key is empty")
	}

	payload, err := domain.MarshalCartItems(items)
	if err != nil {
		return fmt.Errorf("domain.MarshalCartItems: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO cart_snapshots (key, payload, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE SET payload = excluded.payload, updated_at = CURRENT_TIMESTAMP`,
		key, string(payload))
	if err != nil {
		return fmt.Errorf("db.ExecContext: %w", err)
	}

	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
