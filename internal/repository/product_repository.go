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

type productRepository struct {
	q    *db.Queries
	pool DBPool
}

func NewProduct(pool DBPool) (port.ProductRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}

	return &productRepository{
		q:    db.New(pool),
		pool: pool,
	}, nil
}

func NewProductWithTx(tx pgx.Tx) port.ProductRepository {
	return &productRepository{
		q:    db.New(tx),
		pool: nil, // use provided transaction instead
	}
}

func (r *productRepository) ListProducts(ctx context.Context, query domain.ProductQuery) ([]domain.Product, error) {
	rows, err := r.q.ListProducts(ctx, db.ListProductsParams{
		IncludeInactive: query.IncludeInactive,
		CategorySlug:    query.CategorySlug,
		MinPrice:        query.MinPrice,
		MaxPrice:        query.MaxPrice,
		Condition:       stringPtr(query.Condition),
		Rarity:          stringPtr(query.Rarity),
		Country:         query.Country,
		Search:          query.Search,
	})
	if err != nil {
		return nil, fmt.Errorf("q.ListProducts: %w", err)
	}

	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	images, err := r.listImages(ctx, r.q, ids)
	if err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		product, err := mapProductRowToDomain(row, images[row.ID])
		if err != nil {
			return nil, fmt.Errorf("mapProductRowToDomain[%d]: %w", row.ID, err)
		}
		products = append(products, product)
	}

	return products, nil
}

func (r *productRepository) GetProductBySlug(ctx context.Context, slug string) (domain.Product, error) {
	if slug == "" {
		return domain.Product{}, fmt.Errorf("%w: slug is empty", domain.ErrInvalidInput)
	}

	row, err := r.q.GetProductBySlug(ctx, slug)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Product{}, fmt.Errorf("product[%s]: %w", slug, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("q.GetProductBySlug: %w", err)
	}

	return r.withImages(ctx, r.q, productRow(row))
}

func (r *productRepository) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	return r.getProduct(ctx, r.q, id)
}

func (r *productRepository) getProduct(ctx context.Context, q *db.Queries, id int64) (domain.Product, error) {
	row, err := q.GetProduct(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Product{}, fmt.Errorf("product[%d]: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("q.GetProduct: %w", err)
	}

	return r.withImages(ctx, q, productRow(row))
}

func (r *productRepository) CreateProduct(ctx context.Context, in domain.ProductInput) (domain.Product, error) {
	if err := in.Validate(); err != nil {
		return domain.Product{}, err
	}

	stock, err := toInt32("stock quantity", in.StockQuantity)
	if err != nil {
		return domain.Product{}, err
	}
	year, err := int32Ptr("year", in.Year)
	if err != nil {
		return domain.Product{}, err
	}

	return withTx(ctx, r.pool, r.q, func(q *db.Queries) (domain.Product, error) {
		id, err := q.CreateProduct(ctx, db.CreateProductParams{
			Name:                 in.Name,
			Slug:                 in.Slug,
			CategoryID:           in.CategoryID,
			Description:          in.Description,
			PriceAmount:          in.Price.Amount,
			PriceCurrency:        in.Price.Currency.String(),
			StockQuantity:        stock,
			Condition:            stringPtr(in.Condition),
			Year:                 year,
			Country:              in.Country,
			RarityLevel:          stringPtr(in.Rarity),
			CertificationDetails: in.CertificationDetails,
			IsActive:             in.IsActive,
		})
		if isUniqueViolation(err) {
			return domain.Product{}, fmt.Errorf("%w: slug[%s] already exists", domain.ErrInvalidInput, in.Slug)
		}
		if err != nil {
			return domain.Product{}, fmt.Errorf("q.CreateProduct: %w", err)
		}

		if in.ImageURL != nil && *in.ImageURL != "" {
			err := q.AddProductImage(ctx, db.AddProductImageParams{
				ProductID:    id,
				ImageUrl:     *in.ImageURL,
				DisplayOrder: 0,
			})
			if err != nil {
				return domain.Product{}, fmt.Errorf("q.AddProductImage: %w", err)
			}
		}

		return r.getProduct(ctx, q, id)
	})
}

func (r *productRepository) UpdateProduct(ctx context.Context, id int64, update domain.ProductUpdate) (domain.Product, error) {
	if err := update.Validate(); err != nil {
		return domain.Product{}, err
	}

	stock, err := int32Ptr("stock quantity", update.StockQuantity)
	if err != nil {
		return domain.Product{}, err
	}
	year, err := int32Ptr("year", update.Year)
	if err != nil {
		return domain.Product{}, err
	}

	params := db.UpdateProductParams{
		ID:                   id,
		Name:                 update.Name,
		Slug:                 update.Slug,
		CategoryID:           update.CategoryID,
		Description:          update.Description,
		StockQuantity:        stock,
		Condition:            stringPtr(update.Condition),
		Year:                 year,
		Country:              update.Country,
		RarityLevel:          stringPtr(update.Rarity),
		CertificationDetails: update.CertificationDetails,
		IsActive:             update.IsActive,
	}
	if update.Price != nil {
		amount := update.Price.Amount
		code := update.Price.Currency.String()
		params.PriceAmount = &amount
		params.PriceCurrency = &code
	}

	rowsAffected, err := r.q.UpdateProduct(ctx, params)
	if isUniqueViolation(err) {
		return domain.Product{}, fmt.Errorf("%w: slug[%s] already exists", domain.ErrInvalidInput, *update.Slug)
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("q.UpdateProduct: %w", err)
	}
	if rowsAffected == 0 {
		return domain.Product{}, fmt.Errorf("product[%d]: %w", id, domain.ErrNotFound)
	}

	return r.getProduct(ctx, r.q, id)
}

func (r *productRepository) DeleteProduct(ctx context.Context, id int64) (bool, error) {
	rowsAffected, err := r.q.DeleteProduct(ctx, id)
	if err != nil {
		return false, fmt.Errorf("q.DeleteProduct: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *productRepository) SetStock(ctx context.Context, id int64, quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("%w: stock quantity is negative", domain.ErrInvalidInput)
	}

	stock, err := toInt32("stock quantity", quantity)
	if err != nil {
		return err
	}

	rowsAffected, err := r.q.SetProductStock(ctx, db.SetProductStockParams{
		ID:            id,
		StockQuantity: stock,
	})
	if err != nil {
		return fmt.Errorf("q.SetProductStock: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("product[%d]: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *productRepository) withImages(ctx context.Context, q *db.Queries, row productRow) (domain.Product, error) {
	images, err := r.listImages(ctx, q, []int64{row.ID})
	if err != nil {
		return domain.Product{}, err
	}

	product, err := mapProductRowToDomain(row, images[row.ID])
	if err != nil {
		return domain.Product{}, fmt.Errorf("mapProductRowToDomain[%d]: %w", row.ID, err)
	}

	return product, nil
}

// listImages returns image URLs per product in display order.
func (r *productRepository) listImages(ctx context.Context, q *db.Queries, ids []int64) (map[int64][]string, error) {
	images := make(map[int64][]string, len(ids))
	if len(ids) == 0 {
		return images, nil
	}

	rows, err := q.ListProductImages(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("q.ListProductImages: %w", err)
	}

	for _, row := range rows {
		images[row.ProductID] = append(images[row.ProductID], row.ImageUrl)
	}

	return images, nil
}
