package repository

import (
	"context"
	"fmt"

	"github.com/nikolayk812/coinvault/internal/db"
	"github.com/nikolayk812/coinvault/internal/domain"
	"github.com/nikolayk812/coinvault/internal/port"
)

type categoryRepository struct {
	q *db.Queries
}

func NewCategory(pool DBPool) (port.CategoryRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}

	return &categoryRepository{q: db.New(pool)}, nil
}

func (r *categoryRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.q.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("q.ListCategories: %w", err)
	}

	categories := make([]domain.Category, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, domain.Category{
			ID:          row.ID,
			Name:        row.Name,
			Slug:        row.Slug,
			Description: row.Description,
			CreatedAt:   row.CreatedAt,
		})
	}

	return categories, nil
}
