package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// CartNamespace is the fixed storage key the cart is persisted under.
const CartNamespace = "coin-cart"

// MaxQuantity caps the units of one cart or order line.
const MaxQuantity = 9999

type CartItem struct {
	ID        int64
	Name      string
	Price     Money
	Quantity  int
	Image     string
	Condition string
	Year      int
}

// ValidateQuantity rejects quantities outside 1..MaxQuantity.
func ValidateQuantity(quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}
	if quantity > MaxQuantity {
		return fmt.Errorf("%w: quantity[%d] exceeds %d", ErrInvalidInput, quantity, MaxQuantity)
	}
	return nil
}

func (i CartItem) Subtotal() Money {
	return i.Price.Mul(i.Quantity)
}

// CartOwner identifies whose cart is addressed: a signed-in user or an
// anonymous browser session.
type CartOwner struct {
	UserID    uuid.UUID
	SessionID uuid.UUID
}

func (o CartOwner) IsZero() bool {
	return o.UserID == uuid.Nil && o.SessionID == uuid.Nil
}

// Key is the storage key for the owner's cart.
func (o CartOwner) Key() string {
	if o.UserID != uuid.Nil {
		return CartNamespace + ":user:" + o.UserID.String()
	}
	if o.SessionID != uuid.Nil {
		return CartNamespace + ":session:" + o.SessionID.String()
	}
	return CartNamespace
}
