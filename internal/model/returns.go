package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReturnStatusPending is the status of a newly requested return.
const ReturnStatusPending = "pending"

// Return is a customer request to send back part of an order.
type Return struct {
	ID            int64           `json:"return_id" db:"return_id"`
	OrderID       int64           `json:"order_id" db:"order_id"`
	OrderItemID   int64           `json:"order_item_id" db:"order_item_id"`
	Reason        *string         `json:"reason" db:"reason"`
	Quantity      int             `json:"quantity" db:"quantity"`
	RefundAmount  decimal.Decimal `json:"refund_amount" db:"refund_amount"`
	Status        string          `json:"status" db:"status"`
	RequestedDate time.Time       `json:"requested_date" db:"requested_date"`
	ProcessedDate *time.Time      `json:"processed_date" db:"processed_date"`
}

// CreateReturnRequest is the body of POST /api/returns.
type CreateReturnRequest struct {
	OrderID      int64           `json:"order_id"`
	OrderItemID  int64           `json:"order_item_id"`
	Reason       *string         `json:"reason"`
	Quantity     int             `json:"quantity"`
	RefundAmount decimal.Decimal `json:"refund_amount"`
}

// Validate checks required fields.
func (r *CreateReturnRequest) Validate() error {
	if r.OrderID <= 0 || r.OrderItemID <= 0 {
		return NewValidationError("order_id and order_item_id are required")
	}
	if r.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if r.RefundAmount.IsNegative() {
		return ErrInvalidPrice
	}
	return nil
}

// UpdateReturnStatusRequest is the body of PUT /api/returns/{id}/status.
type UpdateReturnStatusRequest struct {
	Status string `json:"status"`
}
