package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// RoutingKeyOrderPlaced is the AMQP routing key of OrderPlacedEvent.
const RoutingKeyOrderPlaced = "order.placed"

// OutboxMessage is an event waiting to be published to the broker.
type OutboxMessage struct {
	ID          int64
	RoutingKey  string
	Payload     []byte
	RetryCount  int
	MaxRetries  int
	LastError   *string
	CreatedAt   time.Time
	NextRetryAt time.Time
}

// OrderPlacedEvent is published after an order commits.
type OrderPlacedEvent struct {
	OrderID     int64           `json:"order_id"`
	CustomerID  int64           `json:"customer_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	ItemCount   int             `json:"item_count"`
	PlacedAt    time.Time       `json:"placed_at"`
}
