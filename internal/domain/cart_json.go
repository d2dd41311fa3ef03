package domain

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// cartItemJSON is the persisted layout of one cart line.
type cartItemJSON struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Currency  string          `json:"currency"`
	Quantity  int             `json:"quantity"`
	Image     string          `json:"image,omitempty"`
	Condition string          `json:"condition,omitempty"`
	Year      int             `json:"year,omitempty"`
}

// MarshalCartItems encodes cart lines as a JSON array.
func MarshalCartItems(items []CartItem) ([]byte, error) {
	out := make([]cartItemJSON, 0, len(items))
	for _, item := range items {
		out = append(out, cartItemJSON{
			ID:        item.ID,
			Name:      item.Name,
			Price:     item.Price.Amount,
			Currency:  item.Price.Currency.String(),
			Quantity:  item.Quantity,
			Image:     item.Image,
			Condition: item.Condition,
			Year:      item.Year,
		})
	}

	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %w", err)
	}
	return data, nil
}

// UnmarshalCartItems decodes a JSON array written by MarshalCartItems.
// Empty input decodes to an empty cart.
func UnmarshalCartItems(data []byte) ([]CartItem, error) {
	items := []CartItem{}
	if len(data) == 0 {
		return items, nil
	}

	var in []cartItemJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("json.Unmarshal: %w", err)
	}

	for _, line := range in {
		unit, err := currency.ParseISO(line.Currency)
		if err != nil {
			return nil, fmt.Errorf("currency[%s] is not valid: %w", line.Currency, err)
		}
		items = append(items, CartItem{
			ID:        line.ID,
			Name:      line.Name,
			Price:     Money{Amount: line.Price, Currency: unit},
			Quantity:  line.Quantity,
			Image:     line.Image,
			Condition: line.Condition,
			Year:      line.Year,
		})
	}

	return items, nil
}
