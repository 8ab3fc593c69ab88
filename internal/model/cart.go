package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem represents a part in a customer's cart.
type CartItem struct {
	ID         int64     `json:"cart_item_id" db:"cart_item_id"`
	CustomerID int64     `json:"customer_id" db:"customer_id"`
	PartID     int64     `json:"part_id" db:"part_id"`
	Quantity   int       `json:"quantity" db:"quantity"`
	AddedAt    time.Time `json:"added_at" db:"added_at"`
}

// CartLine is a cart item joined with its part.
type CartLine struct {
	CartItemID int64           `json:"cart_item_id"`
	Quantity   int             `json:"quantity"`
	AddedAt    time.Time       `json:"added_at"`
	PartID     int64           `json:"part_id"`
	PartNumber string          `json:"part_number"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Status     string          `json:"status"`
}

// AddToCartRequest is the body of POST /api/cart.
type AddToCartRequest struct {
	CustomerID int64 `json:"customerId"`
	PartID     int64 `json:"partId"`
	Quantity   int   `json:"quantity"`
}

// UpdateCartItemRequest is the body of PUT /api/cart/{cartItemId}.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// CheckoutRequest is the body of POST /api/orders/checkout.
type CheckoutRequest struct {
	CustomerID      int64  `json:"customer_id"`
	PaymentMethodID *int64 `json:"payment_method_id,omitempty"`
}
