// Package service wires the cart, the catalog pipeline and the stores into
// the storefront, checkout and admin use cases.
package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/nikolayk812/coinvault/internal/catalog"
	"github.com/nikolayk812/coinvault/internal/domain"
	"github.com/nikolayk812/coinvault/internal/port"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Invalidator drops cached catalog reads after a write.
type Invalidator interface {
	Invalidate()
}

type BrowseRequest struct {
	Filters domain.Filters
	Sort    domain.SortKey
	Search  string
}

// Catalog serves storefront reads. Product lists are cached per store query
// until the next Invalidate.
type Catalog struct {
	products   port.ProductRepository
	categories port.CategoryRepository
	logger     *zap.Logger

	group singleflight.Group

	mu    sync.RWMutex
	gen   uint64
	cache map[string][]domain.Product
}

func NewCatalog(products port.ProductRepository, categories port.CategoryRepository, logger *zap.Logger) (*Catalog, error) {
	if products == nil {
		return nil, fmt.Errorf("products is nil")
	}
	if categories == nil {
		return nil, fmt.Errorf("categories is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Catalog{
		products:   products,
		categories: categories,
		logger:     logger,
		cache:      make(map[string][]domain.Product),
	}, nil
}

// Browse pushes category, price and search down to the store and runs the
// filter/sort pipeline over the result.
func (c *Catalog) Browse(ctx context.Context, req BrowseRequest) ([]domain.Product, error) {
	if err := req.Filters.Validate(); err != nil {
		return nil, err
	}

	query := domain.ProductQuery{
		MinPrice: &req.Filters.PriceRange.Low,
		MaxPrice: &req.Filters.PriceRange.High,
	}
	// numeric categories are category IDs and only the pipeline resolves them
	if category := req.Filters.Category; category != "" {
		if _, err := strconv.ParseInt(category, 10, 64); err != nil {
			query.CategorySlug = &category
		}
	}
	if search := strings.TrimSpace(req.Search); search != "" {
		query.Search = &search
	}

	products, err := c.list(ctx, query)
	if err != nil {
		return nil, err
	}

	return catalog.Apply(products, req.Filters, req.Sort), nil
}

func (c *Catalog) Product(ctx context.Context, slug string) (domain.Product, error) {
	product, err := c.products.GetProductBySlug(ctx, slug)
	if err != nil {
		return domain.Product{}, fmt.Errorf("products.GetProductBySlug: %w", err)
	}
	return product, nil
}

func (c *Catalog) Categories(ctx context.Context) ([]domain.Category, error) {
	v, err := c.shared(ctx, "categories", func(ctx context.Context) (any, error) {
		return c.categories.ListCategories(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("categories.ListCategories: %w", err)
	}
	return v.([]domain.Category), nil
}

func (c *Catalog) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gen++
	clear(c.cache)
}

func (c *Catalog) list(ctx context.Context, query domain.ProductQuery) ([]domain.Product, error) {
	key := queryKey(query)

	c.mu.RLock()
	cached, ok := c.cache[key]
	gen := c.gen
	c.mu.RUnlock()
	if ok {
		return cached, nil
	}

	v, err := c.shared(ctx, "products:"+key, func(ctx context.Context) (any, error) {
		return c.products.ListProducts(ctx, query)
	})
	if err != nil {
		return nil, fmt.Errorf("products.ListProducts: %w", err)
	}
	products := v.([]domain.Product)

	c.mu.Lock()
	// a write since the fetch started makes the result stale
	if c.gen == gen {
		c.cache[key] = products
	}
	c.mu.Unlock()

	return products, nil
}

// shared runs fetch once for concurrent callers with the same key. The
// fetch outlives a cancelled caller; that caller just stops waiting.
func (c *Catalog) shared(ctx context.Context, key string, fetch func(ctx context.Context) (any, error)) (any, error) {
	detached := context.WithoutCancel(ctx)

	ch := c.group.DoChan(key, func() (any, error) {
		return fetch(detached)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Shared {
			c.logger.Debug("catalog fetch shared", zap.String("key", key))
		}
		return res.Val, res.Err
	}
}

func queryKey(q domain.ProductQuery) string {
	var b strings.Builder
	field := func(name string, v *string) {
		b.WriteString(name)
		b.WriteByte('=')
		if v != nil {
			b.WriteString(strconv.Quote(*v))
		}
		b.WriteByte(';')
	}

	field("category", q.CategorySlug)
	if q.MinPrice != nil {
		field("min", ptr(q.MinPrice.String()))
	}
	if q.MaxPrice != nil {
		field("max", ptr(q.MaxPrice.String()))
	}
	if q.Condition != nil {
		field("condition", ptr(string(*q.Condition)))
	}
	if q.Rarity != nil {
		field("rarity", ptr(string(*q.Rarity)))
	}
	field("country", q.Country)
	field("search", q.Search)
	field("inactive", ptr(strconv.FormatBool(q.IncludeInactive)))

	return b.String()
}

func ptr[T any](v T) *T {
	return &v
}
