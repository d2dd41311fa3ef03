package port

import (
	"context"

	"github.com/nikolayk812/coinvault/internal/domain"
)

type ProductRepository interface {
	ListProducts(ctx context.Context, query domain.ProductQuery) ([]domain.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (domain.Product, error)
	GetProduct(ctx context.Context, id int64) (domain.Product, error)
	CreateProduct(ctx context.Context, in domain.ProductInput) (domain.Product, error)
	UpdateProduct(ctx context.Context, id int64, update domain.ProductUpdate) (domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) (bool, error)
	SetStock(ctx context.Context, id int64, quantity int) error
}

type CategoryRepository interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
}
