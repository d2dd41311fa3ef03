package catalog

import (
	"strings"

	"github.com/nikolayk812/coinvault/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// LowStockThreshold is the highest stock count still reported as low.
const LowStockThreshold = 5

type StockLevel string

const (
	OutOfStock StockLevel = "out_of_stock"
	LowStock   StockLevel = "low_stock"
	InStock    StockLevel = "in_stock"
)

func StockLevelOf(quantity int) StockLevel {
	switch {
	case quantity <= 0:
		return OutOfStock
	case quantity <= LowStockThreshold:
		return LowStock
	default:
		return InStock
	}
}

type InventorySummary struct {
	OutOfStock int
	LowStock   int
	TotalValue domain.Money
}

// Summarize counts out-of-stock and low-stock products and values the stock
// on hand at list price.
func Summarize(products []domain.Product, unit currency.Unit) InventorySummary {
	summary := InventorySummary{TotalValue: domain.NewMoney(decimal.Zero, unit)}

	for _, p := range products {
		switch StockLevelOf(p.StockQuantity) {
		case OutOfStock:
			summary.OutOfStock++
		case LowStock:
			summary.LowStock++
		}
		summary.TotalValue = summary.TotalValue.Add(p.Price.Mul(p.StockQuantity))
	}

	return summary
}

type InventoryMode string

const (
	InventoryAll InventoryMode = "all"
	InventoryLow InventoryMode = "low"
	InventoryOut InventoryMode = "out"
)

func ParseInventoryMode(s string) InventoryMode {
	switch m := InventoryMode(s); m {
	case InventoryLow, InventoryOut:
		return m
	default:
		return InventoryAll
	}
}

// FilterInventory keeps products matching search (name or country) and the
// stock mode.
func FilterInventory(products []domain.Product, search string, mode InventoryMode) []domain.Product {
	result := make([]domain.Product, 0, len(products))

	for _, p := range Search(products, search) {
		switch mode {
		case InventoryLow:
			if StockLevelOf(p.StockQuantity) != LowStock {
				continue
			}
		case InventoryOut:
			if StockLevelOf(p.StockQuantity) != OutOfStock {
				continue
			}
		}
		result = append(result, p)
	}

	return result
}

// Search keeps products whose name or country contains search,
// case-insensitively. An empty search keeps everything.
func Search(products []domain.Product, search string) []domain.Product {
	needle := strings.ToLower(strings.TrimSpace(search))

	result := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if needle == "" ||
			strings.Contains(strings.ToLower(p.Name), needle) ||
			(p.Country != nil && strings.Contains(strings.ToLower(*p.Country), needle)) {
			result = append(result, p)
		}
	}

	return result
}

// LowOrOutOfStock lists products at or below the low stock threshold.
func LowOrOutOfStock(products []domain.Product) []domain.Product {
	var result []domain.Product
	for _, p := range products {
		if p.StockQuantity <= LowStockThreshold {
			result = append(result, p)
		}
	}
	return result
}
