package repository_test

import (
	"context"
	"fmt"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/nikolayk812/coinvault/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"golang.org/x/text/currency"
)

func startPostgres(ctx context.Context) (*postgres.PostgresContainer, string, error) {
	postgresContainer, err := postgres.Run(ctx, "postgres:17.6-alpine3.22",
		postgres.BasicWaitStrategies(),
		postgres.WithInitScripts(
			"../migrations/01_catalog.up.sql",
			"../migrations/02_orders.up.sql",
			"../migrations/03_profiles.up.sql",
			"../migrations/04_cart_snapshots.up.sql"),
	)
	if err != nil {
		return nil, "", fmt.Errorf("postgres.Run: %w", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", fmt.Errorf("pc.ConnectionString: %w", err)
	}

	return postgresContainer, connStr, nil
}

func randomMoney() domain.Money {
	return domain.Money{
		Amount:   decimal.NewFromFloat(gofakeit.Price(1, 5000)).Round(2),
		Currency: currency.USD,
	}
}

func randomProductInput() domain.ProductInput {
	name := gofakeit.Country() + " " + gofakeit.Noun()
	condition := domain.Conditions[gofakeit.IntN(len(domain.Conditions))]
	rarity := domain.Rarities[gofakeit.IntN(len(domain.Rarities))]
	year := gofakeit.IntRange(1700, 2000)
	country := gofakeit.Country()

	return domain.ProductInput{
		Name:          name,
		Slug:          domain.Slugify(name) + "-" + gofakeit.LetterN(6),
		Price:         randomMoney(),
		StockQuantity: gofakeit.IntRange(1, 20),
		Condition:     &condition,
		Year:          &year,
		Country:       &country,
		Rarity:        &rarity,
		IsActive:      true,
	}
}

func randomCustomer() domain.Customer {
	return domain.Customer{
		Name:  gofakeit.Name(),
		Email: gofakeit.Email(),
		Phone: gofakeit.Phone(),
	}
}

func randomShipping() domain.ShippingAddress {
	return domain.ShippingAddress{
		Line1:   gofakeit.Street(),
		City:    gofakeit.City(),
		State:   gofakeit.State(),
		Zip:     gofakeit.Zip(),
		Country: gofakeit.Country(),
	}
}

func ptr[T any](v T) *T {
	return &v
}

var (
	currencyComparer = cmp.Comparer(func(x, y currency.Unit) bool {
		return x.String() == y.String()
	})
	decimalComparer = cmp.Comparer(func(x, y decimal.Decimal) bool {
		return x.Equal(y)
	})
)
