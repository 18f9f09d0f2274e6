package kafka

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderPlacedEvent is published once an order and its stock decrement commit
type OrderPlacedEvent struct {
	EventID   string            `json:"event_id"`
	EventType string            `json:"event_type"`
	OrderID   string            `json:"order_id"`
	UserID    uint              `json:"user_id"`
	Total     decimal.Decimal   `json:"total"`
	Currency  string            `json:"currency"`
	Items     []OrderPlacedItem `json:"items"`
	Timestamp time.Time         `json:"timestamp"`
}

// OrderPlacedItem is one ordered product
type OrderPlacedItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Event types
const (
	EventTypeOrderPlaced = "order.placed"
)

// DefaultTopic carries storefront order events
const DefaultTopic = "storefront-orders"
