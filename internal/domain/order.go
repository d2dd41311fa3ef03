package domain

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

var OrderStatuses = []OrderStatus{
	OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled,
}

func ParseOrderStatus(s string) (OrderStatus, error) {
	for _, st := range OrderStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: order status[%s] is not valid", ErrInvalidInput, s)
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

type Customer struct {
	Name  string
	Email string
	Phone string
}

type ShippingAddress struct {
	Line1   string
	Line2   *string
	City    string
	State   string
	Zip     string
	Country string
}

type Order struct {
	ID             int64
	UserID         *uuid.UUID
	Customer       Customer
	Shipping       ShippingAddress
	Total          Money
	PaymentStatus  PaymentStatus
	OrderStatus    OrderStatus
	PaymentID      *string
	TrackingNumber *string
	Notes          *string
	Items          []OrderItem

	CreatedAt time.Time
	UpdatedAt time.Time
}

type OrderItem struct {
	ID          int64
	OrderID     int64
	ProductID   *int64
	ProductName string
	Quantity    int
	Price       Money

	CreatedAt time.Time
}

func (i OrderItem) Subtotal() Money {
	return i.Price.Mul(i.Quantity)
}

// NewOrder is the input for creating an order together with its items.
type NewOrder struct {
	UserID   *uuid.UUID
	Customer Customer
	Shipping ShippingAddress
	Total    Money
	Notes    *string
	Items    []OrderItem
}

func (o NewOrder) Validate() error {
	if err := o.Customer.Validate(); err != nil {
		return err
	}
	if err := o.Shipping.Validate(); err != nil {
		return err
	}
	if len(o.Items) == 0 {
		return ErrEmptyCart
	}
	for _, item := range o.Items {
		if err := ValidateQuantity(item.Quantity); err != nil {
			return fmt.Errorf("item[%s]: %w", item.ProductName, err)
		}
	}
	return nil
}

func (c Customer) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: customer name is empty", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(c.Email); err != nil {
		return fmt.Errorf("%w: customer email[%s] is not valid", ErrInvalidInput, c.Email)
	}
	if strings.TrimSpace(c.Phone) == "" {
		return fmt.Errorf("%w: customer phone is empty", ErrInvalidInput)
	}
	return nil
}

func (a ShippingAddress) Validate() error {
	required := []struct{ name, value string }{
		{"address line 1", a.Line1},
		{"city", a.City},
		{"state", a.State},
		{"zip", a.Zip},
		{"country", a.Country},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return fmt.Errorf("%w: shipping %s is empty", ErrInvalidInput, field.name)
		}
	}
	return nil
}

// OrderUpdate changes status and/or tracking number; nil means keep.
type OrderUpdate struct {
	Status         *OrderStatus
	TrackingNumber *string
}

// OrderFilter narrows an admin order listing.
type OrderFilter struct {
	Search string
	Status *OrderStatus
}
