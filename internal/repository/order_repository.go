package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/nikolayk812/coinvault/internal/db"
	"github.com/nikolayk812/coinvault/internal/domain"
	"github.com/nikolayk812/coinvault/internal/port"
)

type orderRepository struct {
	q    *db.Queries
	pool DBPool
}

func NewOrder(pool DBPool) (port.OrderRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}

	return &orderRepository{
		q:    db.New(pool),
		pool: pool,
	}, nil
}

func NewOrderWithTx(tx pgx.Tx) port.OrderRepository {
	return &orderRepository{
		q:    db.New(tx),
		pool: nil, // use provided transaction instead
	}
}

func (r *orderRepository) CreateOrder(ctx context.Context, order domain.NewOrder) (domain.Order, error) {
	if err := order.Validate(); err != nil {
		return domain.Order{}, err
	}

	return withTx(ctx, r.pool, r.q, func(q *db.Queries) (domain.Order, error) {
		row, err := q.CreateOrder(ctx, db.CreateOrderParams{
			UserID:               order.UserID,
			CustomerName:         order.Customer.Name,
			CustomerEmail:        order.Customer.Email,
			CustomerPhone:        order.Customer.Phone,
			ShippingAddressLine1: order.Shipping.Line1,
			ShippingAddressLine2: order.Shipping.Line2,
			ShippingCity:         order.Shipping.City,
			ShippingState:        order.Shipping.State,
			ShippingZip:          order.Shipping.Zip,
			ShippingCountry:      order.Shipping.Country,
			TotalAmount:          order.Total.Amount,
			TotalCurrency:        order.Total.Currency.String(),
			Notes:                order.Notes,
		})
		if err != nil {
			return domain.Order{}, fmt.Errorf("q.CreateOrder: %w", err)
		}

		created := domain.Order{
			ID:            row.ID,
			UserID:        order.UserID,
			Customer:      order.Customer,
			Shipping:      order.Shipping,
			Total:         order.Total,
			PaymentStatus: domain.PaymentStatus(row.PaymentStatus),
			OrderStatus:   domain.OrderStatus(row.OrderStatus),
			Notes:         order.Notes,
			Items:         make([]domain.OrderItem, 0, len(order.Items)),
			CreatedAt:     row.CreatedAt,
			UpdatedAt:     row.UpdatedAt,
		}

		for _, item := range order.Items {
			quantity, err := toInt32("quantity", item.Quantity)
			if err != nil {
				return domain.Order{}, err
			}

			itemRow, err := q.CreateOrderItem(ctx, db.CreateOrderItemParams{
				OrderID:       row.ID,
				ProductID:     item.ProductID,
				ProductName:   item.ProductName,
				Quantity:      quantity,
				PriceAmount:   item.Price.Amount,
				PriceCurrency: item.Price.Currency.String(),
			})
			if err != nil {
				return domain.Order{}, fmt.Errorf("q.CreateOrderItem: %w", err)
			}

			if item.ProductID != nil {
				rowsAffected, err := q.DecrementProductStock(ctx, db.DecrementProductStockParams{
					Quantity: quantity,
					ID:       *item.ProductID,
				})
				if err != nil {
					return domain.Order{}, fmt.Errorf("q.DecrementProductStock: %w", err)
				}
				if rowsAffected == 0 {
					return domain.Order{}, fmt.Errorf("product[%d] %s: %w", *item.ProductID, item.ProductName, domain.ErrInsufficientStock)
				}
			}

			item.ID = itemRow.ID
			item.OrderID = row.ID
			item.CreatedAt = itemRow.CreatedAt
			created.Items = append(created.Items, item)
		}

		return created, nil
	})
}

func (r *orderRepository) GetOrder(ctx context.Context, id int64) (domain.Order, error) {
	row, err := r.q.GetOrder(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Order{}, fmt.Errorf("order[%d]: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Order{}, fmt.Errorf("q.GetOrder: %w", err)
	}

	orders, err := r.withItems(ctx, []db.Order{row})
	if err != nil {
		return domain.Order{}, err
	}

	return orders[0], nil
}

func (r *orderRepository) ListOrders(ctx context.Context) ([]domain.Order, error) {
	rows, err := r.q.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("q.ListOrders: %w", err)
	}

	return r.withItems(ctx, rows)
}

func (r *orderRepository) ListUserOrders(ctx context.Context, userID uuid.UUID) ([]domain.Order, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: user id is empty", domain.ErrInvalidInput)
	}

	rows, err := r.q.ListUserOrders(ctx, &userID)
	if err != nil {
		return nil, fmt.Errorf("q.ListUserOrders: %w", err)
	}

	return r.withItems(ctx, rows)
}

func (r *orderRepository) UpdateOrder(ctx context.Context, id int64, update domain.OrderUpdate) (domain.Order, error) {
	if update.Status != nil {
		if _, err := domain.ParseOrderStatus(string(*update.Status)); err != nil {
			return domain.Order{}, err
		}
	}

	rowsAffected, err := r.q.UpdateOrder(ctx, db.UpdateOrderParams{
		ID:             id,
		OrderStatus:    stringPtr(update.Status),
		TrackingNumber: update.TrackingNumber,
	})
	if err != nil {
		return domain.Order{}, fmt.Errorf("q.UpdateOrder: %w", err)
	}
	if rowsAffected == 0 {
		return domain.Order{}, fmt.Errorf("order[%d]: %w", id, domain.ErrNotFound)
	}

	return r.GetOrder(ctx, id)
}

func (r *orderRepository) withItems(ctx context.Context, rows []db.Order) ([]domain.Order, error) {
	orders := make([]domain.Order, 0, len(rows))
	if len(rows) == 0 {
		return orders, nil
	}

	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	itemRows, err := r.q.ListOrderItems(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("q.ListOrderItems: %w", err)
	}

	items := make(map[int64][]db.OrderItem, len(rows))
	for _, item := range itemRows {
		items[item.OrderID] = append(items[item.OrderID], item)
	}

	for _, row := range rows {
		order, err := mapOrderToDomain(row, items[row.ID])
		if err != nil {
			return nil, fmt.Errorf("mapOrderToDomain[%d]: %w", row.ID, err)
		}
		orders = append(orders, order)
	}

	return orders, nil
}
