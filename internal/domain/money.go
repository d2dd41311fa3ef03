package domain

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

func NewMoney(amount decimal.Decimal, unit currency.Unit) Money {
	return Money{Amount: amount, Currency: unit}
}

// Mul multiplies the amount by an integer quantity, keeping the currency.
func (m Money) Mul(quantity int) Money {
	return Money{
		Amount:   m.Amount.Mul(decimal.NewFromInt(int64(quantity))),
		Currency: m.Currency,
	}
}

// Add sums two amounts and keeps the receiver's currency. Operands must
// share it; the cart rejects lines in another currency before summing.
func (m Money) Add(other Money) Money {
	return Money{
		Amount:   m.Amount.Add(other.Amount),
		Currency: m.Currency,
	}
}

func (m Money) IsZero() bool {
	return m.Amount.IsZero()
}
