package port

import (
	"context"

	"github.com/nikolayk812/coinvault/internal/domain"
)

type EventPublisher interface {
	OrderPlaced(ctx context.Context, order domain.Order) error
	CatalogChanged(ctx context.Context, productID int64, action string) error
}
