package model

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Money columns are NUMERIC(12,2) and quantities INTEGER.
var (
	MaxAmount   = decimal.RequireFromString("9999999999.99")
	MaxQuantity = math.MaxInt32
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

// Recognised order statuses.
const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// ParseOrderStatus returns the status named by s, or ErrInvalidStatus.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch status := OrderStatus(s); status {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusCompleted, OrderStatusCancelled:
		return status, nil
	default:
		return "", ErrInvalidStatus
	}
}

// IsTerminal reports whether no further transition is allowed out of s.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// CanTransitionTo reports whether an order in status s may move to next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s == next {
		return true
	}
	return !s.IsTerminal()
}

// Order represents a customer order.
type Order struct {
	ID              int64           `json:"order_id" db:"order_id"`
	CustomerID      int64           `json:"customer_id" db:"customer_id"`
	PaymentMethodID *int64          `json:"payment_method_id" db:"payment_method_id"`
	EmployeeID      *int64          `json:"employee_id" db:"employee_id"`
	TotalAmount     decimal.Decimal `json:"total_amount" db:"total_amount"`
	Status          OrderStatus     `json:"status" db:"status"`
	IdempotencyKey  *uuid.UUID      `json:"-" db:"idempotency_key"`
	OrderDate       time.Time       `json:"order_date" db:"order_date"`
	CompletedDate   *time.Time      `json:"completed_date" db:"completed_date"`
	Items           []OrderItem     `json:"items,omitempty"`
}

// OrderItem represents a line item in an order.
type OrderItem struct {
	ID        int64           `json:"order_item_id" db:"order_item_id"`
	OrderID   int64           `json:"order_id" db:"order_id"`
	PartID    int64           `json:"part_id" db:"part_id"`
	Quantity  int             `json:"quantity" db:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price" db:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal" db:"subtotal"`
}

// PlaceOrderRequest represents the request payload for placing an order.
type PlaceOrderRequest struct {
	CustomerID      int64              `json:"customer_id"`
	PaymentMethodID *int64             `json:"payment_method_id,omitempty"`
	EmployeeID      *int64             `json:"employee_id,omitempty"`
	Items           []OrderItemRequest `json:"items"`

	// IdempotencyKey is taken from the Idempotency-Key header, not the body.
	IdempotencyKey *uuid.UUID `json:"-"`
}

// OrderItemRequest represents a single item in an order request.
type OrderItemRequest struct {
	PartID    int64           `json:"part_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Subtotal returns quantity × unit price.
func (r OrderItemRequest) Subtotal() decimal.Decimal {
	return r.UnitPrice.Mul(decimal.NewFromInt(int64(r.Quantity)))
}

// Validate checks the request shape without touching the store.
func (r *PlaceOrderRequest) Validate() error {
	if r == nil {
		return NewValidationError("order request is nil")
	}
	if r.CustomerID <= 0 {
		return NewValidationError("customer_id is required")
	}
	if len(r.Items) == 0 {
		return ErrEmptyOrder
	}
	for i, item := range r.Items {
		if item.PartID <= 0 {
			return NewValidationError(fmt.Sprintf("item %d: part_id is required", i))
		}
		if item.Quantity <= 0 || item.Quantity > MaxQuantity {
			return ErrInvalidQuantity
		}
		if item.UnitPrice.IsNegative() || !item.UnitPrice.Equal(item.UnitPrice.Round(2)) {
			return ErrInvalidPrice
		}
	}
	if r.TotalAmount().GreaterThan(MaxAmount) {
		return NewValidationError("order total exceeds " + MaxAmount.StringFixed(2))
	}
	return nil
}

// TotalAmount returns the sum of every item subtotal.
func (r *PlaceOrderRequest) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, item := range r.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// UpdateOrderStatusRequest is the body of PUT /api/orders/{id}/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// OrderFilter narrows order listings.
type OrderFilter struct {
	CustomerID *int64
	Status     *OrderStatus
	Limit      int
	Offset     int
}

// PlaceOrderResponse is returned from order placement.
type PlaceOrderResponse struct {
	OrderID int64  `json:"order_id"`
	Order   *Order `json:"order"`
}
