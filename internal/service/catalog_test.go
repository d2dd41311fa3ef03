package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/nikolayk812/coinvault/internal/domain"
	"github.com/nikolayk812/coinvault/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storefrontProducts() []domain.Product {
	coins := &domain.CategoryRef{Name: "Old Coins", Slug: "coins"}
	notes := &domain.CategoryRef{Name: "Paper Currency", Slug: "currency"}
	fine := domain.ConditionFine

	return []domain.Product{
		{ID: 1, Slug: "denarius", Name: "Denarius", CategoryID: ptr(int64(1)), Category: coins, Price: usd("120"), IsActive: true, Year: ptr(-44), Condition: &fine},
		{ID: 2, Slug: "assignat", Name: "Assignat", CategoryID: ptr(int64(2)), Category: notes, Price: usd("35.50"), IsActive: true, Year: ptr(1792)},
		{ID: 3, Slug: "aureus", Name: "Aureus", CategoryID: ptr(int64(1)), Category: coins, Price: usd("5800"), IsActive: true},
		{ID: 4, Slug: "hidden", Name: "Hidden", Category: coins, Price: usd("10"), IsActive: false},
	}
}

func newCatalog(t *testing.T, products *fakeProducts) *service.Catalog {
	t.Helper()

	c, err := service.NewCatalog(products, &fakeCategories{categories: []domain.Category{
		{ID: 1, Name: "Old Coins", Slug: "coins"},
		{ID: 2, Name: "Paper Currency", Slug: "currency"},
	}}, nil)
	require.NoError(t, err)
	return c
}

func productIDs(products []domain.Product) []int64 {
	out := make([]int64, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestBrowse(t *testing.T) {
	tests := []struct {
		name      string
		req       service.BrowseRequest
		wantIDs   []int64
		wantQuery func(t *testing.T, q domain.ProductQuery)
	}{
		{
			name:    "defaults keep featured order",
			req:     service.BrowseRequest{Filters: domain.DefaultFilters()},
			wantIDs: []int64{1, 2, 3},
			wantQuery: func(t *testing.T, q domain.ProductQuery) {
				assert.Nil(t, q.CategorySlug)
				assert.Nil(t, q.Search)
				require.NotNil(t, q.MaxPrice)
				assert.True(t, q.MaxPrice.Equal(decimal.NewFromInt(6000)))
			},
		},
		{
			name: "category slug is pushed down",
			req: service.BrowseRequest{
				Filters: domain.DefaultFilters().With(domain.FiltersUpdate{Category: ptr("coins")}),
				Sort:    domain.SortPriceDesc,
			},
			wantIDs: []int64{3, 1},
			wantQuery: func(t *testing.T, q domain.ProductQuery) {
				require.NotNil(t, q.CategorySlug)
				assert.Equal(t, "coins", *q.CategorySlug)
			},
		},
		{
			name: "numeric category is resolved by the pipeline",
			req: service.BrowseRequest{
				Filters: domain.DefaultFilters().With(domain.FiltersUpdate{Category: ptr("2")}),
			},
			wantIDs: []int64{2},
			wantQuery: func(t *testing.T, q domain.ProductQuery) {
				assert.Nil(t, q.CategorySlug)
			},
		},
		{
			name: "facets and sort by year",
			req: service.BrowseRequest{
				Filters: domain.DefaultFilters().With(domain.FiltersUpdate{
					PriceRange: &domain.PriceRange{Low: decimal.Zero, High: decimal.NewFromInt(500)},
				}),
				Sort:   domain.SortYear,
				Search: "  a  ",
			},
			wantIDs: []int64{1, 2},
			wantQuery: func(t *testing.T, q domain.ProductQuery) {
				require.NotNil(t, q.Search)
				assert.Equal(t, "a", *q.Search)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products := &fakeProducts{products: storefrontProducts()}
			c := newCatalog(t, products)

			got, err := c.Browse(t.Context(), tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantIDs, productIDs(got))

			require.Len(t, products.queries, 1)
			tt.wantQuery(t, products.queries[0])
		})
	}
}

func TestBrowseInvalidPriceRange(t *testing.T) {
	products := &fakeProducts{products: storefrontProducts()}
	c := newCatalog(t, products)

	_, err := c.Browse(t.Context(), service.BrowseRequest{Filters: domain.Filters{
		PriceRange: domain.PriceRange{Low: decimal.NewFromInt(10), High: decimal.NewFromInt(1)},
	}})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0, products.listCalls())
}

func TestBrowseCacheAndInvalidate(t *testing.T) {
	products := &fakeProducts{products: storefrontProducts()}
	c := newCatalog(t, products)
	req := service.BrowseRequest{Filters: domain.DefaultFilters()}

	_, err := c.Browse(t.Context(), req)
	require.NoError(t, err)
	_, err = c.Browse(t.Context(), service.BrowseRequest{Filters: domain.DefaultFilters(), Sort: domain.SortName})
	require.NoError(t, err)
	assert.Equal(t, 1, products.listCalls(), "same store query is served from cache")

	c.Invalidate()

	_, err = c.Browse(t.Context(), req)
	require.NoError(t, err)
	assert.Equal(t, 2, products.listCalls())
}

func TestBrowseCancelledCallerStopsWaiting(t *testing.T) {
	block := make(chan struct{})
	products := &fakeProducts{products: storefrontProducts(), block: block}
	c := newCatalog(t, products)
	req := service.BrowseRequest{Filters: domain.DefaultFilters()}

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() {
		_, err := c.Browse(ctx, req)
		done <- err
	}()

	require.Eventually(t, func() bool { return products.listCalls() == 1 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("cancelled browse did not return")
	}

	close(block)

	got, err := c.Browse(t.Context(), req)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, productIDs(got))
}

func TestProductAndCategories(t *testing.T) {
	c := newCatalog(t, &fakeProducts{products: storefrontProducts()})

	p, err := c.Product(t.Context(), "aureus")
	require.NoError(t, err)
	assert.Equal(t, int64(3), p.ID)

	_, err = c.Product(t.Context(), "hidden")
	require.ErrorIs(t, err, domain.ErrNotFound)

	categories, err := c.Categories(t.Context())
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "coins", categories[0].Slug)
}
