package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Condition string

const (
	ConditionPoor         Condition = "Poor"
	ConditionFair         Condition = "Fair"
	ConditionFine         Condition = "Fine"
	ConditionGood         Condition = "Good"
	ConditionVeryGood     Condition = "Very Good"
	ConditionExcellent    Condition = "Excellent"
	ConditionUncirculated Condition = "Uncirculated"
)

var Conditions = []Condition{
	ConditionPoor, ConditionFair, ConditionFine, ConditionGood,
	ConditionVeryGood, ConditionExcellent, ConditionUncirculated,
}

func ParseCondition(s string) (Condition, error) {
	for _, c := range Conditions {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: condition[%s] is not valid", ErrInvalidInput, s)
}

type Rarity string

const (
	RarityCommon        Rarity = "Common"
	RarityUncommon      Rarity = "Uncommon"
	RarityRare          Rarity = "Rare"
	RarityVeryRare      Rarity = "Very Rare"
	RarityExtremelyRare Rarity = "Extremely Rare"
)

var Rarities = []Rarity{
	RarityCommon, RarityUncommon, RarityRare, RarityVeryRare, RarityExtremelyRare,
}

func ParseRarity(s string) (Rarity, error) {
	for _, r := range Rarities {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: rarity[%s] is not valid", ErrInvalidInput, s)
}

type Category struct {
	ID          int64
	Name        string
	Slug        string
	Description *string
	CreatedAt   time.Time
}

type CategoryRef struct {
	Name string
	Slug string
}

type Product struct {
	ID                   int64
	Slug                 string
	Name                 string
	CategoryID           *int64
	Category             *CategoryRef
	Description          *string
	Price                Money
	StockQuantity        int
	Condition            *Condition
	Year                 *int
	Country              *string
	Rarity               *Rarity
	CertificationDetails *string
	Images               []string
	IsActive             bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CartItem builds the cart line for quantity units of the product.
func (p Product) CartItem(quantity int) CartItem {
	item := CartItem{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Quantity: quantity,
	}
	if len(p.Images) > 0 {
		item.Image = p.Images[0]
	}
	if p.Condition != nil {
		item.Condition = string(*p.Condition)
	}
	if p.Year != nil {
		item.Year = *p.Year
	}
	return item
}

func (p Product) InStock() bool {
	return p.StockQuantity > 0
}

// ProductQuery is the predicate pushed down to the product store.
// Nil fields are not applied.
type ProductQuery struct {
	CategorySlug *string
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
	Condition    *Condition
	Rarity       *Rarity
	Country      *string
	Search       *string

	IncludeInactive bool
}

type ProductInput struct {
	Name                 string
	Slug                 string
	CategoryID           *int64
	Description          *string
	Price                Money
	StockQuantity        int
	Condition            *Condition
	Year                 *int
	Country              *string
	Rarity               *Rarity
	CertificationDetails *string
	IsActive             bool
	ImageURL             *string
}

func (in ProductInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalidInput)
	}
	if in.Slug == "" {
		return fmt.Errorf("%w: slug is empty", ErrInvalidInput)
	}
	if in.Price.Amount.IsNegative() {
		return fmt.Errorf("%w: price is negative", ErrInvalidInput)
	}
	if in.StockQuantity < 0 {
		return fmt.Errorf("%w: stock quantity is negative", ErrInvalidInput)
	}
	return nil
}

// ProductUpdate carries the fields to change; nil means keep.
type ProductUpdate struct {
	Name                 *string
	Slug                 *string
	CategoryID           *int64
	Description          *string
	Price                *Money
	StockQuantity        *int
	Condition            *Condition
	Year                 *int
	Country              *string
	Rarity               *Rarity
	CertificationDetails *string
	IsActive             *bool
}

func (u ProductUpdate) Validate() error {
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalidInput)
	}
	if u.Slug != nil && *u.Slug == "" {
		return fmt.Errorf("%w: slug is empty", ErrInvalidInput)
	}
	if u.Price != nil && u.Price.Amount.IsNegative() {
		return fmt.Errorf("%w: price is negative", ErrInvalidInput)
	}
	if u.StockQuantity != nil && *u.StockQuantity < 0 {
		return fmt.Errorf("%w: stock quantity is negative", ErrInvalidInput)
	}
	return nil
}

var slugInvalid = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases s and collapses every run of non-alphanumerics into a
// single dash, trimming dashes at both ends.
func Slugify(s string) string {
	slug := slugInvalid.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(slug, "-")
}
