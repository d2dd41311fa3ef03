package service_test

import (
	"testing"
	"time"

	"github.com/nikolayk812/coinvault/internal/catalog"
	"github.com/nikolayk812/coinvault/internal/domain"
	"github.com/nikolayk812/coinvault/internal/events"
	"github.com/nikolayk812/coinvault/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var adminNow = time.Date(2026, time.June, 10, 9, 0, 0, 0, time.UTC)

type adminFixture struct {
	admin    *service.Admin
	products *fakeProducts
	orders   *fakeOrders
	events   *fakeEvents
	cache    *countingInvalidator
}

func newAdmin(t *testing.T) adminFixture {
	t.Helper()

	f := adminFixture{
		products: &fakeProducts{products: []domain.Product{
			{ID: 1, Name: "Denarius", Country: ptr("Italy"), Price: usd("100"), StockQuantity: 0, IsActive: true},
			{ID: 2, Name: "Assignat", Country: ptr("France"), Price: usd("20"), StockQuantity: 5, IsActive: true},
			{ID: 3, Name: "Thaler", Country: ptr("Austria"), Price: usd("50"), StockQuantity: 10, IsActive: false},
		}},
		orders: &fakeOrders{orders: []domain.Order{
			{
				ID: 1, Customer: domain.Customer{Name: "Ada", Email: "ada@example.com"},
				Total: usd("200"), PaymentStatus: domain.PaymentCompleted, OrderStatus: domain.OrderDelivered,
				Items:     []domain.OrderItem{{ProductName: "Denarius", Quantity: 2, Price: usd("100")}},
				CreatedAt: adminNow.AddDate(0, -1, 0),
			},
			{
				ID: 2, Customer: domain.Customer{Name: "Grace", Email: "grace@example.com"},
				Total: usd("20"), PaymentStatus: domain.PaymentPending, OrderStatus: domain.OrderPending,
				Items:     []domain.OrderItem{{ProductName: "Assignat", Quantity: 1, Price: usd("20")}},
				CreatedAt: adminNow,
			},
			{
				ID: 3, Customer: domain.Customer{Name: "Ada", Email: "ada@example.com"},
				Total: usd("101"), PaymentStatus: domain.PaymentCompleted, OrderStatus: domain.OrderShipped,
				Items:     []domain.OrderItem{{ProductName: "Thaler", Quantity: 2, Price: usd("50.50")}},
				CreatedAt: adminNow.AddDate(0, 0, -2),
			},
		}},
		events: &fakeEvents{},
		cache:  &countingInvalidator{},
	}

	var err error
	f.admin, err = service.NewAdmin(f.products, f.orders, f.events, f.cache, nil, service.WithAdminClock(func() time.Time { return adminNow }))
	require.NoError(t, err)
	return f
}

func TestAdminCreateProductSlug(t *testing.T) {
	tests := []struct {
		name     string
		in       domain.ProductInput
		wantSlug string
	}{
		{
			name:     "slug from name",
			in:       domain.ProductInput{Name: "1909-S VDB Lincoln Cent!", Price: usd("900")},
			wantSlug: "1909-s-vdb-lincoln-cent",
		},
		{
			name:     "explicit slug kept",
			in:       domain.ProductInput{Name: "Thaler", Slug: "maria-theresa-thaler", Price: usd("50")},
			wantSlug: "maria-theresa-thaler",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAdmin(t)

			product, err := f.admin.CreateProduct(t.Context(), tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSlug, product.Slug)
			assert.Equal(t, 1, f.cache.calls())
			require.Len(t, f.events.catalog, 1)
			assert.Equal(t, events.CatalogActionCreated, f.events.catalog[0].action)
		})
	}
}

func TestAdminUpdateAndDeleteProduct(t *testing.T) {
	f := newAdmin(t)

	product, err := f.admin.UpdateProduct(t.Context(), 2, domain.ProductUpdate{Name: ptr("French Assignat"), Slug: ptr("")})
	require.NoError(t, err)
	assert.Equal(t, "french-assignat", product.Slug)

	require.NoError(t, f.admin.DeleteProduct(t.Context(), 2))
	require.ErrorIs(t, f.admin.DeleteProduct(t.Context(), 2), domain.ErrNotFound)

	assert.Equal(t, []catalogEvent{
		{productID: 2, action: events.CatalogActionUpdated},
		{productID: 2, action: events.CatalogActionDeleted},
	}, f.events.catalog)
}

func TestAdminSetStock(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr error
		want    int
	}{
		{name: "number", raw: "12", want: 12},
		{name: "padded", raw: " 3 ", want: 3},
		{name: "zero", raw: "0", want: 0},
		{name: "not a number", raw: "ten", wantErr: domain.ErrInvalidInput},
		{name: "negative", raw: "-1", wantErr: domain.ErrInvalidInput},
		{name: "empty", raw: "", wantErr: domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAdmin(t)

			err := f.admin.SetStock(t.Context(), 2, tt.raw)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, f.events.catalog)
				return
			}
			require.NoError(t, err)

			p, err := f.products.GetProduct(t.Context(), 2)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.StockQuantity)
		})
	}

	f := newAdmin(t)
	require.ErrorIs(t, f.admin.SetStock(t.Context(), 99, "1"), domain.ErrNotFound)
}

func TestAdminInventory(t *testing.T) {
	f := newAdmin(t)

	view, err := f.admin.Inventory(t.Context(), "", catalog.InventoryAll)
	require.NoError(t, err)
	assert.Len(t, view.Products, 3)
	assert.Equal(t, 1, view.Summary.OutOfStock)
	assert.Equal(t, 1, view.Summary.LowStock)
	assert.Equal(t, "600.00", view.Summary.TotalValue.Amount.StringFixed(2))

	view, err = f.admin.Inventory(t.Context(), "fra", catalog.InventoryLow)
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, productIDs(view.Products))

	products, err := f.admin.Products(t.Context(), "AUSTRIA")
	require.NoError(t, err)
	assert.Equal(t, []int64{3}, productIDs(products))
}

func TestAdminOrders(t *testing.T) {
	f := newAdmin(t)

	orders, err := f.admin.Orders(t.Context(), domain.OrderFilter{Search: "ada"})
	require.NoError(t, err)
	assert.Len(t, orders, 2)

	shipped := domain.OrderShipped
	orders, err = f.admin.Orders(t.Context(), domain.OrderFilter{Status: &shipped})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, int64(3), orders[0].ID)

	order, err := f.admin.UpdateOrder(t.Context(), 2, "processing", ptr("TRK-9"))
	require.NoError(t, err)
	assert.Equal(t, domain.OrderProcessing, order.OrderStatus)
	assert.Equal(t, "TRK-9", *order.TrackingNumber)

	_, err = f.admin.UpdateOrder(t.Context(), 2, "lost", nil)
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.admin.UpdateOrder(t.Context(), 2, "", nil)
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.admin.Order(t.Context(), 42)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAdminDashboardAndAnalytics(t *testing.T) {
	f := newAdmin(t)

	dashboard, err := f.admin.Dashboard(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 3, dashboard.Stats.TotalOrders)
	assert.Equal(t, "301.00", dashboard.Stats.TotalRevenue.Amount.StringFixed(2))
	assert.Equal(t, 1, dashboard.Stats.Pending)
	assert.Equal(t, []int64{2, 3, 1}, orderIDs(dashboard.RecentOrders))
	assert.Equal(t, []int64{1, 2}, productIDs(dashboard.LowStock))

	analytics, err := f.admin.Analytics(t.Context())
	require.NoError(t, err)
	require.Len(t, analytics.MonthlyRevenue, 6)
	assert.Equal(t, "101.00", analytics.MonthlyRevenue[5].Revenue.Amount.StringFixed(2))
	assert.Equal(t, "200.00", analytics.MonthlyRevenue[4].Revenue.Amount.StringFixed(2))
	assert.Equal(t, 2, analytics.UniqueCustomers)
	assert.Equal(t, "100", analytics.AverageOrderValue.Amount.String())
	require.Len(t, analytics.TopProducts, 3)
	assert.Equal(t, "Denarius", analytics.TopProducts[0].Name)
}

func orderIDs(orders []domain.Order) []int64 {
	out := make([]int64, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.ID)
	}
	return out
}
