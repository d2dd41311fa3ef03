package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/coinvault/internal/domain"
)

type OrderRepository interface {
	// CreateOrder stores the order and its items and decrements stock for
	// every item, all or nothing.
	CreateOrder(ctx context.Context, order domain.NewOrder) (domain.Order, error)
	GetOrder(ctx context.Context, id int64) (domain.Order, error)
	ListOrders(ctx context.Context) ([]domain.Order, error)
	ListUserOrders(ctx context.Context, userID uuid.UUID) ([]domain.Order, error)
	UpdateOrder(ctx context.Context, id int64, update domain.OrderUpdate) (domain.Order, error)
}
