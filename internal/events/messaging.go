package events

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	EventsExchange            = "coinvault.events"
	OrderPlacedRoutingKey     = "order.placed.v1"
	CatalogChangedRoutingKey  = "catalog.changed.v1"
	EventTypeOrderPlaced      = "OrderPlaced"
	EventTypeCatalogChanged   = "CatalogChanged"
	defaultProducer           = "coinvault"
	CatalogActionCreated      = "created"
	CatalogActionUpdated      = "updated"
	CatalogActionDeleted      = "deleted"
	CatalogActionStockChanged = "stock_changed"
)

// Channel is the part of *amqp.Channel the publisher needs.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Dial connects to the broker and declares the events exchange.
// The returned close func releases both channel and connection.
func Dial(url string) (Channel, func() error, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("amqp.Dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("open channel: %w", err)
	}

	if err := declareEventsExchange(ch); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, fmt.Errorf("declare events exchange: %w", err)
	}

	closeFn := func() error {
		chErr := ch.Close()
		connErr := conn.Close()
		if chErr != nil {
			return chErr
		}
		return connErr
	}

	return ch, closeFn, nil
}

func declareEventsExchange(ch *amqp.Channel) error {
	return ch.ExchangeDeclare(
		EventsExchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
}
