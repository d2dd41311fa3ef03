package catalog_test

import (
	"testing"

	"github.com/nikolayk812/coinvault/internal/catalog"
	"github.com/nikolayk812/coinvault/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/currency"
)

func TestStockLevelOf(t *testing.T) {
	tests := []struct {
		quantity int
		want     catalog.StockLevel
	}{
		{quantity: 0, want: catalog.OutOfStock},
		{quantity: 1, want: catalog.LowStock},
		{quantity: 5, want: catalog.LowStock},
		{quantity: 6, want: catalog.InStock},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, catalog.StockLevelOf(tt.quantity), "quantity %d", tt.quantity)
	}
}

func inventoryFixture() []domain.Product {
	return []domain.Product{
		{ID: 1, Name: "Gold Mohur", Country: ptr("India"), Price: usd(1000), StockQuantity: 0},
		{ID: 2, Name: "Half Dime", Country: ptr("USA"), Price: usd(25), StockQuantity: 4},
		{ID: 3, Name: "Rupee Note", Country: ptr("India"), Price: usd(10), StockQuantity: 12},
		{ID: 4, Name: "Mystery Token", Price: usd(2.5), StockQuantity: 2},
	}
}

func TestSummarize(t *testing.T) {
	summary := catalog.Summarize(inventoryFixture(), currency.USD)

	assert.Equal(t, 1, summary.OutOfStock)
	assert.Equal(t, 2, summary.LowStock)
	assert.True(t, decimal.NewFromInt(225).Equal(summary.TotalValue.Amount), "got %s", summary.TotalValue.Amount)
	assert.Equal(t, "USD", summary.TotalValue.Currency.String())
}

func TestFilterInventory(t *testing.T) {
	tests := []struct {
		name   string
		search string
		mode   catalog.InventoryMode
		want   []int64
	}{
		{name: "all", mode: catalog.InventoryAll, want: []int64{1, 2, 3, 4}},
		{name: "low", mode: catalog.InventoryLow, want: []int64{2, 4}},
		{name: "out", mode: catalog.InventoryOut, want: []int64{1}},
		{name: "search by country", search: "india", mode: catalog.InventoryAll, want: []int64{1, 3}},
		{name: "search by name and low", search: "DIME", mode: catalog.InventoryLow, want: []int64{2}},
		{name: "search without match", search: "drachma", mode: catalog.InventoryAll, want: []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := catalog.FilterInventory(inventoryFixture(), tt.search, tt.mode)

			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestParseInventoryMode(t *testing.T) {
	assert.Equal(t, catalog.InventoryLow, catalog.ParseInventoryMode("low"))
	assert.Equal(t, catalog.InventoryAll, catalog.ParseInventoryMode("whatever"))
}

func TestLowOrOutOfStock(t *testing.T) {
	got := catalog.LowOrOutOfStock(inventoryFixture())

	assert.Equal(t, []int64{1, 2, 4}, ids(got))
}
