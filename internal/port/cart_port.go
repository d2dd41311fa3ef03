package port

import (
	"context"

	"github.com/nikolayk812/coinvault/internal/domain"
)

// CartStorage is the durable key-value store a cart is written through to.
// Load returns an empty slice and no error for an unknown key.
type CartStorage interface {
	Load(ctx context.Context, key string) ([]domain.CartItem, error)
	Save(ctx context.Context, key string, items []domain.CartItem) error
}
