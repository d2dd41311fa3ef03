package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/nikolayk812/coinvault/internal/cart"
	"github.com/nikolayk812/coinvault/internal/domain"
	"github.com/nikolayk812/coinvault/internal/port"
	"go.uber.org/zap"
)

type CheckoutRequest struct {
	Customer domain.Customer
	Shipping domain.ShippingAddress
	Notes    *string
}

func (r CheckoutRequest) Validate() error {
	if err := r.Customer.Validate(); err != nil {
		return err
	}
	return r.Shipping.Validate()
}

// Checkout turns an owner's cart into an order. Payment stays pending; there
// is no payment integration.
type Checkout struct {
	carts  *cart.Registry
	orders port.OrderRepository
	events port.EventPublisher
	cache  Invalidator
	logger *zap.Logger
}

func NewCheckout(carts *cart.Registry, orders port.OrderRepository, events port.EventPublisher, cache Invalidator, logger *zap.Logger) (*Checkout, error) {
	if carts == nil {
		return nil, fmt.Errorf("carts is nil")
	}
	if orders == nil {
		return nil, fmt.Errorf("orders is nil")
	}
	if events == nil {
		return nil, fmt.Errorf("events is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Checkout{
		carts:  carts,
		orders: orders,
		events: events,
		cache:  cache,
		logger: logger,
	}, nil
}

// PlaceOrder stores the cart as an order, decrementing stock, and clears
// the cart once the order is committed. The cart is held for the whole
// call, so concurrent checkouts of one cart place a single order.
func (c *Checkout) PlaceOrder(ctx context.Context, owner domain.CartOwner, req CheckoutRequest) (domain.Order, error) {
	if err := req.Validate(); err != nil {
		return domain.Order{}, err
	}

	store, err := c.carts.View(ctx, owner.Key())
	if err != nil {
		return domain.Order{}, fmt.Errorf("carts.View: %w", err)
	}

	var order domain.Order
	err = store.Checkout(ctx, func(items []domain.CartItem, total domain.Money) error {
		newOrder := domain.NewOrder{
			Customer: req.Customer,
			Shipping: req.Shipping,
			Total:    total,
			Notes:    req.Notes,
			Items:    make([]domain.OrderItem, 0, len(items)),
		}
		if owner.UserID != uuid.Nil {
			userID := owner.UserID
			newOrder.UserID = &userID
		}
		for _, item := range items {
			productID := item.ID
			newOrder.Items = append(newOrder.Items, domain.OrderItem{
				ProductID:   &productID,
				ProductName: item.Name,
				Quantity:    item.Quantity,
				Price:       item.Price,
			})
		}

		created, err := c.orders.CreateOrder(ctx, newOrder)
		if err != nil {
			return fmt.Errorf("orders.CreateOrder: %w", err)
		}
		order = created
		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}

	if c.cache != nil {
		c.cache.Invalidate()
	}

	if err := c.events.OrderPlaced(ctx, order); err != nil {
		c.logger.Warn("order placed event not published",
			zap.Int64("order_id", order.ID),
			zap.Error(err))
	}

	c.logger.Info("order placed",
		zap.Int64("order_id", order.ID),
		zap.Int("lines", len(order.Items)),
		zap.String("total", order.Total.Amount.StringFixed(2)))

	return order, nil
}

// Orders lists the user's orders, newest first.
func (c *Checkout) Orders(ctx context.Context, userID uuid.UUID) ([]domain.Order, error) {
	orders, err := c.orders.ListUserOrders(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("orders.ListUserOrders: %w", err)
	}
	return orders, nil
}
