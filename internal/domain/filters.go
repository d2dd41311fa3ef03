package domain

import (
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
)

// DefaultPriceCeiling is the upper bound of the storefront price slider.
var DefaultPriceCeiling = decimal.NewFromInt(6000)

type PriceRange struct {
	Low  decimal.Decimal
	High decimal.Decimal
}

func (r PriceRange) Validate() error {
	if r.Low.IsNegative() || r.High.IsNegative() {
		return fmt.Errorf("%w: price range is negative", ErrInvalidInput)
	}
	if r.Low.GreaterThan(r.High) {
		return fmt.Errorf("%w: price range low %s > high %s", ErrInvalidInput, r.Low, r.High)
	}
	return nil
}

// Contains reports whether amount lies in [Low, High].
func (r PriceRange) Contains(amount decimal.Decimal) bool {
	return amount.GreaterThanOrEqual(r.Low) && amount.LessThanOrEqual(r.High)
}

// Filters is the catalog view configuration. An empty facet set matches
// every product.
type Filters struct {
	Category   string
	PriceRange PriceRange
	Conditions []string
	Rarities   []string
	Countries  []string
}

func DefaultFilters() Filters {
	return Filters{
		PriceRange: PriceRange{Low: decimal.Zero, High: DefaultPriceCeiling},
	}
}

func (f Filters) Validate() error {
	return f.PriceRange.Validate()
}

// FiltersUpdate names the fields to replace; nil means keep.
type FiltersUpdate struct {
	Category   *string
	PriceRange *PriceRange
	Conditions *[]string
	Rarities   *[]string
	Countries  *[]string
}

// With returns a copy of f with the update applied. f is left untouched.
func (f Filters) With(u FiltersUpdate) Filters {
	out := Filters{
		Category:   f.Category,
		PriceRange: f.PriceRange,
		Conditions: slices.Clone(f.Conditions),
		Rarities:   slices.Clone(f.Rarities),
		Countries:  slices.Clone(f.Countries),
	}

	if u.Category != nil {
		out.Category = *u.Category
	}
	if u.PriceRange != nil {
		out.PriceRange = *u.PriceRange
	}
	if u.Conditions != nil {
		out.Conditions = slices.Clone(*u.Conditions)
	}
	if u.Rarities != nil {
		out.Rarities = slices.Clone(*u.Rarities)
	}
	if u.Countries != nil {
		out.Countries = slices.Clone(*u.Countries)
	}

	return out
}

// Toggle adds label to the set when on and removes it otherwise, returning
// a new slice.
func Toggle(set []string, label string, on bool) []string {
	out := slices.DeleteFunc(slices.Clone(set), func(s string) bool { return s == label })
	if on {
		out = append(out, label)
	}
	return out
}

type SortKey string

const (
	SortFeatured  SortKey = "featured"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortName      SortKey = "name"
	SortYear      SortKey = "year"
)

// ParseSortKey falls back to featured for unknown keys.
func ParseSortKey(s string) SortKey {
	switch k := SortKey(s); k {
	case SortPriceAsc, SortPriceDesc, SortName, SortYear:
		return k
	default:
		return SortFeatured
	}
}
