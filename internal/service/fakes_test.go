package service_test

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/coinvault/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type fakeProducts struct {
	mu       sync.Mutex
	products []domain.Product
	queries  []domain.ProductQuery
	stock    map[int64]int
	deleted  []int64
	created  []domain.ProductInput
	block    chan struct{}
	listErr  error
}

func (f *fakeProducts) ListProducts(ctx context.Context, query domain.ProductQuery) ([]domain.Product, error) {
	f.mu.Lock()
	f.queries = append(f.queries, query)
	block := f.block
	f.mu.Unlock()

	if block != nil {
		<-block
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.listErr != nil {
		return nil, f.listErr
	}

	var result []domain.Product
	for _, p := range f.products {
		if !query.IncludeInactive && !p.IsActive {
			continue
		}
		if query.CategorySlug != nil && (p.Category == nil || p.Category.Slug != *query.CategorySlug) {
			continue
		}
		if query.MinPrice != nil && p.Price.Amount.LessThan(*query.MinPrice) {
			continue
		}
		if query.MaxPrice != nil && p.Price.Amount.GreaterThan(*query.MaxPrice) {
			continue
		}
		result = append(result, p)
	}
	return result, nil
}

func (f *fakeProducts) listCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queries)
}

func (f *fakeProducts) GetProductBySlug(_ context.Context, slug string) (domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, p := range f.products {
		if p.Slug == slug && p.IsActive {
			return p, nil
		}
	}
	return domain.Product{}, domain.ErrNotFound
}

func (f *fakeProducts) GetProduct(_ context.Context, id int64) (domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, p := range f.products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, domain.ErrNotFound
}

func (f *fakeProducts) CreateProduct(_ context.Context, in domain.ProductInput) (domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := in.Validate(); err != nil {
		return domain.Product{}, err
	}
	f.created = append(f.created, in)
	p := domain.Product{
		ID:            int64(len(f.products) + 1),
		Name:          in.Name,
		Slug:          in.Slug,
		Price:         in.Price,
		StockQuantity: in.StockQuantity,
		IsActive:      in.IsActive,
	}
	f.products = append(f.products, p)
	return p, nil
}

func (f *fakeProducts) UpdateProduct(_ context.Context, id int64, update domain.ProductUpdate) (domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, p := range f.products {
		if p.ID != id {
			continue
		}
		if update.Name != nil {
			p.Name = *update.Name
		}
		if update.Slug != nil {
			p.Slug = *update.Slug
		}
		f.products[i] = p
		return p, nil
	}
	return domain.Product{}, domain.ErrNotFound
}

func (f *fakeProducts) DeleteProduct(_ context.Context, id int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, p := range f.products {
		if p.ID == id {
			f.products = slices.Delete(f.products, i, i+1)
			f.deleted = append(f.deleted, id)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeProducts) SetStock(_ context.Context, id int64, quantity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, p := range f.products {
		if p.ID == id {
			f.products[i].StockQuantity = quantity
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeCategories struct {
	categories []domain.Category
}

func (f *fakeCategories) ListCategories(context.Context) ([]domain.Category, error) {
	return f.categories, nil
}

type fakeOrders struct {
	mu        sync.Mutex
	orders    []domain.Order
	createErr error
	created   []domain.NewOrder
}

func (f *fakeOrders) CreateOrder(_ context.Context, in domain.NewOrder) (domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.created = append(f.created, in)
	if f.createErr != nil {
		return domain.Order{}, f.createErr
	}

	order := domain.Order{
		ID:            int64(len(f.orders) + 1),
		UserID:        in.UserID,
		Customer:      in.Customer,
		Shipping:      in.Shipping,
		Total:         in.Total,
		PaymentStatus: domain.PaymentPending,
		OrderStatus:   domain.OrderPending,
		Notes:         in.Notes,
		Items:         in.Items,
		CreatedAt:     time.Now(),
	}
	f.orders = append(f.orders, order)
	return order, nil
}

func (f *fakeOrders) GetOrder(_ context.Context, id int64) (domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, o := range f.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return domain.Order{}, domain.ErrNotFound
}

func (f *fakeOrders) ListOrders(context.Context) ([]domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return slices.Clone(f.orders), nil
}

func (f *fakeOrders) ListUserOrders(_ context.Context, userID uuid.UUID) ([]domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []domain.Order
	for _, o := range f.orders {
		if o.UserID != nil && *o.UserID == userID {
			result = append(result, o)
		}
	}
	return result, nil
}

func (f *fakeOrders) UpdateOrder(_ context.Context, id int64, update domain.OrderUpdate) (domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, o := range f.orders {
		if o.ID != id {
			continue
		}
		if update.Status != nil {
			o.OrderStatus = *update.Status
		}
		if update.TrackingNumber != nil {
			o.TrackingNumber = update.TrackingNumber
		}
		f.orders[i] = o
		return o, nil
	}
	return domain.Order{}, domain.ErrNotFound
}

type catalogEvent struct {
	productID int64
	action    string
}

type fakeEvents struct {
	mu      sync.Mutex
	orders  []domain.Order
	catalog []catalogEvent
	err     error
}

func (f *fakeEvents) OrderPlaced(_ context.Context, order domain.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return f.err
	}
	f.orders = append(f.orders, order)
	return nil
}

func (f *fakeEvents) CatalogChanged(_ context.Context, productID int64, action string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return f.err
	}
	f.catalog = append(f.catalog, catalogEvent{productID: productID, action: action})
	return nil
}

type memoryStorage struct {
	mu    sync.Mutex
	items map[string][]domain.CartItem
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{items: make(map[string][]domain.CartItem)}
}

func (m *memoryStorage) Load(_ context.Context, key string) ([]domain.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return slices.Clone(m.items[key]), nil
}

func (m *memoryStorage) Save(_ context.Context, key string, items []domain.CartItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items[key] = slices.Clone(items)
	return nil
}

type countingInvalidator struct {
	mu    sync.Mutex
	count int
}

func (c *countingInvalidator) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.count++
}

func (c *countingInvalidator) calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

func usd(amount string) domain.Money {
	return domain.Money{Amount: decimal.RequireFromString(amount), Currency: currency.USD}
}

func ptr[T any](v T) *T {
	return &v
}
