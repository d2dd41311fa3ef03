package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/nikolayk812/coinvault/internal/catalog"
	"github.com/nikolayk812/coinvault/internal/domain"
	"github.com/nikolayk812/coinvault/internal/events"
	"github.com/nikolayk812/coinvault/internal/port"
	"go.uber.org/zap"
	"golang.org/x/text/currency"
)

const (
	analyticsMonths   = 6
	topProductsLimit  = 5
	recentOrdersLimit = 5
)

type Admin struct {
	products port.ProductRepository
	orders   port.OrderRepository
	events   port.EventPublisher
	cache    Invalidator
	currency currency.Unit
	logger   *zap.Logger
	now      func() time.Time
}

type AdminOption func(*Admin)

func WithAdminCurrency(unit currency.Unit) AdminOption {
	return func(a *Admin) {
		a.currency = unit
	}
}

func WithAdminClock(now func() time.Time) AdminOption {
	return func(a *Admin) {
		a.now = now
	}
}

func NewAdmin(products port.ProductRepository, orders port.OrderRepository, events port.EventPublisher, cache Invalidator, logger *zap.Logger, opts ...AdminOption) (*Admin, error) {
	if products == nil {
		return nil, fmt.Errorf("products is nil")
	}
	if orders == nil {
		return nil, fmt.Errorf("orders is nil")
	}
	if events == nil {
		return nil, fmt.Errorf("events is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	a := &Admin{
		products: products,
		orders:   orders,
		events:   events,
		cache:    cache,
		currency: currency.USD,
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}

	return a, nil
}

// CreateProduct derives the slug from the name when none is given.
func (a *Admin) CreateProduct(ctx context.Context, in domain.ProductInput) (domain.Product, error) {
	if strings.TrimSpace(in.Slug) == "" {
		in.Slug = domain.Slugify(in.Name)
	}

	product, err := a.products.CreateProduct(ctx, in)
	if err != nil {
		return domain.Product{}, fmt.Errorf("products.CreateProduct: %w", err)
	}

	a.catalogChanged(ctx, product.ID, events.CatalogActionCreated)
	return product, nil
}

func (a *Admin) UpdateProduct(ctx context.Context, id int64, update domain.ProductUpdate) (domain.Product, error) {
	if update.Slug != nil && strings.TrimSpace(*update.Slug) == "" && update.Name != nil {
		slug := domain.Slugify(*update.Name)
		update.Slug = &slug
	}

	product, err := a.products.UpdateProduct(ctx, id, update)
	if err != nil {
		return domain.Product{}, fmt.Errorf("products.UpdateProduct: %w", err)
	}

	a.catalogChanged(ctx, id, events.CatalogActionUpdated)
	return product, nil
}

func (a *Admin) DeleteProduct(ctx context.Context, id int64) error {
	deleted, err := a.products.DeleteProduct(ctx, id)
	if err != nil {
		return fmt.Errorf("products.DeleteProduct: %w", err)
	}
	if !deleted {
		return fmt.Errorf("product[%d]: %w", id, domain.ErrNotFound)
	}

	a.catalogChanged(ctx, id, events.CatalogActionDeleted)
	return nil
}

// Products lists every product, inactive included, matching search on
// name or country.
func (a *Admin) Products(ctx context.Context, search string) ([]domain.Product, error) {
	products, err := a.allProducts(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Search(products, search), nil
}

// SetStock parses the raw quantity typed by the admin.
func (a *Admin) SetStock(ctx context.Context, id int64, raw string) error {
	quantity, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("%w: stock quantity[%s] is not a number", domain.ErrInvalidInput, raw)
	}
	if quantity < 0 {
		return fmt.Errorf("%w: stock quantity is negative", domain.ErrInvalidInput)
	}

	if err := a.products.SetStock(ctx, id, quantity); err != nil {
		return fmt.Errorf("products.SetStock: %w", err)
	}

	a.catalogChanged(ctx, id, events.CatalogActionStockChanged)
	return nil
}

type InventoryView struct {
	Products []domain.Product
	Summary  catalog.InventorySummary
}

// Inventory summarizes stock over all products and lists the ones matching
// search and mode.
func (a *Admin) Inventory(ctx context.Context, search string, mode catalog.InventoryMode) (InventoryView, error) {
	products, err := a.allProducts(ctx)
	if err != nil {
		return InventoryView{}, err
	}

	return InventoryView{
		Products: catalog.FilterInventory(products, search, mode),
		Summary:  catalog.Summarize(products, a.currency),
	}, nil
}

func (a *Admin) Orders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	orders, err := a.orders.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("orders.ListOrders: %w", err)
	}
	return catalog.FilterOrders(orders, filter), nil
}

func (a *Admin) Order(ctx context.Context, id int64) (domain.Order, error) {
	order, err := a.orders.GetOrder(ctx, id)
	if err != nil {
		return domain.Order{}, fmt.Errorf("orders.GetOrder: %w", err)
	}
	return order, nil
}

// UpdateOrder changes status and/or tracking number. An empty status keeps
// the current one.
func (a *Admin) UpdateOrder(ctx context.Context, id int64, status string, trackingNumber *string) (domain.Order, error) {
	var update domain.OrderUpdate

	if status != "" {
		parsed, err := domain.ParseOrderStatus(status)
		if err != nil {
			return domain.Order{}, err
		}
		update.Status = &parsed
	}
	update.TrackingNumber = trackingNumber

	if update.Status == nil && update.TrackingNumber == nil {
		return domain.Order{}, fmt.Errorf("%w: nothing to update", domain.ErrInvalidInput)
	}

	order, err := a.orders.UpdateOrder(ctx, id, update)
	if err != nil {
		return domain.Order{}, fmt.Errorf("orders.UpdateOrder: %w", err)
	}
	return order, nil
}

type Dashboard struct {
	Stats        catalog.OrderStats
	RecentOrders []domain.Order
	LowStock     []domain.Product
}

func (a *Admin) Dashboard(ctx context.Context) (Dashboard, error) {
	orders, err := a.orders.ListOrders(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("orders.ListOrders: %w", err)
	}

	products, err := a.allProducts(ctx)
	if err != nil {
		return Dashboard{}, err
	}

	return Dashboard{
		Stats:        catalog.Stats(orders, a.currency),
		RecentOrders: catalog.Recent(orders, recentOrdersLimit),
		LowStock:     catalog.LowOrOutOfStock(products),
	}, nil
}

type Analytics struct {
	Stats             catalog.OrderStats
	MonthlyRevenue    []catalog.MonthRevenue
	TopProducts       []catalog.ProductSales
	UniqueCustomers   int
	AverageOrderValue domain.Money
}

func (a *Admin) Analytics(ctx context.Context) (Analytics, error) {
	orders, err := a.orders.ListOrders(ctx)
	if err != nil {
		return Analytics{}, fmt.Errorf("orders.ListOrders: %w", err)
	}

	stats := catalog.Stats(orders, a.currency)

	return Analytics{
		Stats:             stats,
		MonthlyRevenue:    catalog.MonthlyRevenue(orders, a.now(), analyticsMonths, a.currency),
		TopProducts:       catalog.TopProducts(orders, topProductsLimit, a.currency),
		UniqueCustomers:   catalog.UniqueCustomers(orders),
		AverageOrderValue: stats.AverageOrderValue(),
	}, nil
}

func (a *Admin) allProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := a.products.ListProducts(ctx, domain.ProductQuery{IncludeInactive: true})
	if err != nil {
		return nil, fmt.Errorf("products.ListProducts: %w", err)
	}
	return products, nil
}

// catalogChanged drops cached reads and announces the change. A failed
// publish does not undo the write.
func (a *Admin) catalogChanged(ctx context.Context, productID int64, action string) {
	if a.cache != nil {
		a.cache.Invalidate()
	}

	if err := a.events.CatalogChanged(ctx, productID, action); err != nil {
		a.logger.Warn("catalog changed event not published",
			zap.Int64("product_id", productID),
			zap.String("action", action),
			zap.Error(err))
	}
}
