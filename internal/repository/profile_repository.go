package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/nikolayk812/coinvault/internal/db"
	"github.com/nikolayk812/coinvault/internal/domain"
	"github.com/nikolayk812/coinvault/internal/port"
)

type profileRepository struct {
	q *db.Queries
}

func NewProfile(pool DBPool) (port.ProfileRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}

	return &profileRepository{q: db.New(pool)}, nil
}

func (r *profileRepository) GetProfile(ctx context.Context, id uuid.UUID) (domain.Profile, error) {
	if id == uuid.Nil {
		return domain.Profile{}, fmt.Errorf("%w: profile id is empty", domain.ErrInvalidInput)
	}

	row, err := r.q.GetProfile(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Profile{}, fmt.Errorf("profile[%s]: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Profile{}, fmt.Errorf("q.GetProfile: %w", err)
	}

	return mapProfileToDomain(row), nil
}

func (r *profileRepository) UpdateProfile(ctx context.Context, id uuid.UUID, update domain.ProfileUpdate) (domain.Profile, error) {
	if id == uuid.Nil {
		return domain.Profile{}, fmt.Errorf("%w: profile id is empty", domain.ErrInvalidInput)
	}

	row, err := r.q.UpdateProfile(ctx, db.UpdateProfileParams{
		ID:       id,
		FullName: update.FullName,
		Phone:    update.Phone,
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Profile{}, fmt.Errorf("profile[%s]: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Profile{}, fmt.Errorf("q.UpdateProfile: %w", err)
	}

	return mapProfileToDomain(row), nil
}
