// Package catalog turns a product list plus the current view configuration
// into the ordered subset to display, and derives the admin back-office
// aggregates over products and orders.
package catalog

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"github.com/nikolayk812/coinvault/internal/domain"
)

// Apply keeps the products matching f and orders them by sort. The input
// slice is not modified; equal elements keep their input order.
func Apply(products []domain.Product, f domain.Filters, sort domain.SortKey) []domain.Product {
	result := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if Matches(p, f) {
			result = append(result, p)
		}
	}

	Sort(result, sort)

	return result
}

// Matches applies the category, price, condition, rarity and country
// predicates in that order.
func Matches(p domain.Product, f domain.Filters) bool {
	return matchCategory(p, f.Category) &&
		f.PriceRange.Contains(p.Price.Amount) &&
		matchSet(f.Conditions, conditionOf(p)) &&
		matchSet(f.Rarities, rarityOf(p)) &&
		matchSet(f.Countries, p.Country)
}

// Sort orders products in place with a stable sort. Featured keeps the
// current order.
func Sort(products []domain.Product, key domain.SortKey) {
	var compare func(a, b domain.Product) int

	switch key {
	case domain.SortPriceAsc:
		compare = func(a, b domain.Product) int { return a.Price.Amount.Cmp(b.Price.Amount) }
	case domain.SortPriceDesc:
		compare = func(a, b domain.Product) int { return b.Price.Amount.Cmp(a.Price.Amount) }
	case domain.SortName:
		compare = func(a, b domain.Product) int { return strings.Compare(a.Name, b.Name) }
	case domain.SortYear:
		compare = func(a, b domain.Product) int { return cmp.Compare(yearOf(a), yearOf(b)) }
	default:
		return
	}

	slices.SortStableFunc(products, compare)
}

func matchCategory(p domain.Product, category string) bool {
	if category == "" {
		return true
	}
	if p.Category != nil && p.Category.Slug == category {
		return true
	}
	return p.CategoryID != nil && strconv.FormatInt(*p.CategoryID, 10) == category
}

// matchSet treats an empty set as match-all. A missing value never matches
// a non-empty set.
func matchSet(set []string, value *string) bool {
	if len(set) == 0 {
		return true
	}
	if value == nil {
		return false
	}
	return slices.Contains(set, *value)
}

func conditionOf(p domain.Product) *string {
	if p.Condition == nil {
		return nil
	}
	s := string(*p.Condition)
	return &s
}

func rarityOf(p domain.Product) *string {
	if p.Rarity == nil {
		return nil
	}
	s := string(*p.Rarity)
	return &s
}

// yearOf sorts products without a year as year 0.
func yearOf(p domain.Product) int {
	if p.Year == nil {
		return 0
	}
	return *p.Year
}
