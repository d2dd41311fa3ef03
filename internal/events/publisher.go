package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/coinvault/internal/domain"
	"github.com/nikolayk812/coinvault/internal/port"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type Publisher struct {
	ch       Channel
	producer string
	logger   *zap.Logger
	now      func() time.Time
}

type PublisherOptions struct {
	Producer string
	Logger   *zap.Logger
}

var _ port.EventPublisher = (*Publisher)(nil)

func NewPublisher(ch Channel, opts PublisherOptions) (*Publisher, error) {
	if ch == nil {
		return nil, fmt.Errorf("channel is nil")
	}

	producer := opts.Producer
	if producer == "" {
		producer = defaultProducer
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Publisher{
		ch:       ch,
		producer: producer,
		logger:   logger,
		now:      time.Now,
	}, nil
}

func (p *Publisher) Close() error {
	return p.ch.Close()
}

func (p *Publisher) OrderPlaced(ctx context.Context, order domain.Order) error {
	payload := OrderPlacedPayload{
		OrderID:       order.ID,
		CustomerEmail: order.Customer.Email,
		Total:         order.Total.Amount.StringFixed(2),
		Currency:      order.Total.Currency.String(),
		Items:         make([]OrderPlacedItem, 0, len(order.Items)),
	}
	if order.UserID != nil {
		payload.UserID = order.UserID.String()
	}
	for _, item := range order.Items {
		payload.Items = append(payload.Items, OrderPlacedItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price.Amount.StringFixed(2),
		})
	}

	return p.publish(ctx, OrderPlacedRoutingKey, EventTypeOrderPlaced, strconv.FormatInt(order.ID, 10), payload)
}

func (p *Publisher) CatalogChanged(ctx context.Context, productID int64, action string) error {
	payload := CatalogChangedPayload{
		ProductID: productID,
		Action:    action,
	}

	return p.publish(ctx, CatalogChangedRoutingKey, EventTypeCatalogChanged, strconv.FormatInt(productID, 10), payload)
}

func (p *Publisher) publish(ctx context.Context, routingKey, eventName, partitionKey string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", eventName, err)
	}

	env := EventEnvelope{
		EventName:    eventName,
		EventVersion: 1,
		EventID:      uuid.NewString(),
		Producer:     p.producer,
		PartitionKey: partitionKey,
		OccurredAt:   p.now().UTC(),
		Payload:      raw,
	}

	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal %s envelope: %w", eventName, err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	err = p.ch.PublishWithContext(
		pubCtx,
		EventsExchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    env.EventID,
			Timestamp:    env.OccurredAt,
			Type:         eventName,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("ch.PublishWithContext %s: %w", routingKey, err)
	}

	p.logger.Debug("event published",
		zap.String("event", eventName),
		zap.String("event_id", env.EventID),
		zap.String("partition_key", partitionKey))

	return nil
}

// Noop drops every event. Used when no broker is configured.
type Noop struct{}

var _ port.EventPublisher = Noop{}

func (Noop) OrderPlaced(context.Context, domain.Order) error {
	return nil
}

func (Noop) CatalogChanged(context.Context, int64, string) error {
	return nil
}
