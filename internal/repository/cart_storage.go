package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/nikolayk812/coinvault/internal/db"
	"github.com/nikolayk812/coinvault/internal/domain"
	"github.com/nikolayk812/coinvault/internal/port"
)

type cartStorage struct {
	q *db.Queries
}

// NewCartStorage keeps cart snapshots as JSON documents, one row per key.
func NewCartStorage(pool DBPool) (port.CartStorage, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}

	return &cartStorage{q: db.New(pool)}, nil
}

func (s *cartStorage) Load(ctx context.Context, key string) ([]domain.CartItem, error) {
	if key == "" {
		return nil, fmt.Errorf("key is empty")
	}

	payload, err := s.q.GetCartSnapshot(ctx, key)
	if errors.Is(err, pgx.ErrNoRows) {
		return []domain.CartItem{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("q.GetCartSnapshot: %w", err)
	}

	items, err := domain.UnmarshalCartItems(payload)
	if err != nil {
		return nil, fmt.Errorf("domain.UnmarshalCartItems: %w", err)
	}

	return items, nil
}

func (s *cartStorage) Save(ctx context.Context, key string, items []domain.CartItem) error {
	if key == "" {
		return fmt.Errorf("key is empty")
	}

	payload, err := domain.MarshalCartItems(items)
	if err != nil {
		return fmt.Errorf("domain.MarshalCartItems: %w", err)
	}

	err = s.q.UpsertCartSnapshot(ctx, db.UpsertCartSnapshotParams{
		Key:     key,
		Payload: payload,
	})
	if err != nil {
		return fmt.Errorf("q.UpsertCartSnapshot: %w", err)
	}

	return nil
}
