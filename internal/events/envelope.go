package events

import (
	"encoding/json"
	"time"
)

// EventEnvelope wraps every published payload.
type EventEnvelope struct {
	EventName    string          `json:"eventName"`
	EventVersion int             `json:"eventVersion"`
	EventID      string          `json:"eventId"`
	Producer     string          `json:"producer"`
	PartitionKey string          `json:"partitionKey"`
	OccurredAt   time.Time       `json:"occurredAt"`
	Payload      json.RawMessage `json:"payload"`
}

type OrderPlacedPayload struct {
	OrderID       int64             `json:"orderId"`
	UserID        string            `json:"userId,omitempty"`
	CustomerEmail string            `json:"customerEmail"`
	Total         string            `json:"total"`
	Currency      string            `json:"currency"`
	Items         []OrderPlacedItem `json:"items"`
}

type OrderPlacedItem struct {
	ProductID   *int64 `json:"productId,omitempty"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	Price       string `json:"price"`
}

type CatalogChangedPayload struct {
	ProductID int64  `json:"productId"`
	Action    string `json:"action"`
}
