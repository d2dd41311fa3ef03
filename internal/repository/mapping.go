package repository

import (
	"errors"
	"fmt"
	"math"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/nikolayk812/coinvault/internal/db"
	"github.com/nikolayk812/coinvault/internal/domain"
	"golang.org/x/text/currency"
)

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func parseCurrency(code string) (currency.Unit, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return currency.Unit{}, fmt.Errorf("currency[%s] is not valid: %w", code, err)
	}
	return unit, nil
}

// productRow is the shared shape of every product select.
type productRow = db.ListProductsRow

func mapProductRowToDomain(row productRow, images []string) (domain.Product, error) {
	unit, err := parseCurrency(row.PriceCurrency)
	if err != nil {
		return domain.Product{}, err
	}

	product := domain.Product{
		ID:                   row.ID,
		Slug:                 row.Slug,
		Name:                 row.Name,
		CategoryID:           row.CategoryID,
		Description:          row.Description,
		Price:                domain.Money{Amount: row.PriceAmount, Currency: unit},
		StockQuantity:        int(row.StockQuantity),
		Country:              row.Country,
		CertificationDetails: row.CertificationDetails,
		Images:               images,
		IsActive:             row.IsActive,
		CreatedAt:            row.CreatedAt,
		UpdatedAt:            row.UpdatedAt,
	}
	if product.Images == nil {
		product.Images = []string{}
	}

	if row.CategorySlug != nil {
		ref := domain.CategoryRef{Slug: *row.CategorySlug}
		if row.CategoryName != nil {
			ref.Name = *row.CategoryName
		}
		product.Category = &ref
	}

	if row.Condition != nil {
		condition, err := domain.ParseCondition(*row.Condition)
		if err != nil {
			return domain.Product{}, err
		}
		product.Condition = &condition
	}

	if row.RarityLevel != nil {
		rarity, err := domain.ParseRarity(*row.RarityLevel)
		if err != nil {
			return domain.Product{}, err
		}
		product.Rarity = &rarity
	}

	if row.Year != nil {
		year := int(*row.Year)
		product.Year = &year
	}

	return product, nil
}

func mapOrderToDomain(row db.Order, items []db.OrderItem) (domain.Order, error) {
	unit, err := parseCurrency(row.TotalCurrency)
	if err != nil {
		return domain.Order{}, err
	}

	order := domain.Order{
		ID:     row.ID,
		UserID: row.UserID,
		Customer: domain.Customer{
			Name:  row.CustomerName,
			Email: row.CustomerEmail,
			Phone: row.CustomerPhone,
		},
		Shipping: domain.ShippingAddress{
			Line1:   row.ShippingAddressLine1,
			Line2:   row.ShippingAddressLine2,
			City:    row.ShippingCity,
			State:   row.ShippingState,
			Zip:     row.ShippingZip,
			Country: row.ShippingCountry,
		},
		Total:          domain.Money{Amount: row.TotalAmount, Currency: unit},
		PaymentStatus:  domain.PaymentStatus(row.PaymentStatus),
		OrderStatus:    domain.OrderStatus(row.OrderStatus),
		PaymentID:      row.PaymentID,
		TrackingNumber: row.TrackingNumber,
		Notes:          row.Notes,
		Items:          make([]domain.OrderItem, 0, len(items)),
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}

	for _, item := range items {
		mapped, err := mapOrderItemToDomain(item)
		if err != nil {
			return domain.Order{}, fmt.Errorf("mapOrderItemToDomain: %w", err)
		}
		order.Items = append(order.Items, mapped)
	}

	return order, nil
}

func mapOrderItemToDomain(row db.OrderItem) (domain.OrderItem, error) {
	unit, err := parseCurrency(row.PriceCurrency)
	if err != nil {
		return domain.OrderItem{}, err
	}

	return domain.OrderItem{
		ID:          row.ID,
		OrderID:     row.OrderID,
		ProductID:   row.ProductID,
		ProductName: row.ProductName,
		Quantity:    int(row.Quantity),
		Price:       domain.Money{Amount: row.PriceAmount, Currency: unit},
		CreatedAt:   row.CreatedAt,
	}, nil
}

func mapProfileToDomain(row db.Profile) domain.Profile {
	return domain.Profile{
		ID:        row.ID,
		Email:     row.Email,
		FullName:  row.FullName,
		Phone:     row.Phone,
		Role:      domain.Role(row.Role),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

// toInt32 narrows v for an int4 column, rejecting values that do not fit.
func toInt32(field string, v int) (int32, error) {
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %s[%d] is out of range", domain.ErrInvalidInput, field, v)
	}
	return int32(v), nil
}

func int32Ptr(field string, v *int) (*int32, error) {
	if v == nil {
		return nil, nil
	}
	out, err := toInt32(field, *v)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func stringPtr[T ~string](v *T) *string {
	if v == nil {
		return nil
	}
	out := string(*v)
	return &out
}
