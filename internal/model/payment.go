package model

import "time"

// PaymentMethod is a stored card reference; full card numbers are never stored.
type PaymentMethod struct {
	ID               int64     `json:"payment_method_id" db:"payment_method_id"`
	CustomerID       int64     `json:"customer_id" db:"customer_id"`
	CardType         *string   `json:"card_type" db:"card_type"`
	MaskedCardNumber *string   `json:"masked_card_number" db:"masked_card_number"`
	CardHolderName   *string   `json:"card_holder_name" db:"card_holder_name"`
	ExpiryDate       *string   `json:"expiry_date" db:"expiry_date"`
	IsDefault        bool      `json:"is_default" db:"is_default"`
	AddedAt          time.Time `json:"added_at" db:"added_at"`
}

// CreatePaymentMethodRequest is the body of POST /api/payment-methods.
type CreatePaymentMethodRequest struct {
	CustomerID       int64   `json:"customer_id"`
	CardType         *string `json:"card_type"`
	MaskedCardNumber *string `json:"masked_card_number"`
	CardHolderName   *string `json:"card_holder_name"`
	ExpiryDate       *string `json:"expiry_date"`
	IsDefault        bool    `json:"is_default"`
}

// PaymentMethodUpdate carries the fields of PUT /api/payment-methods/{id}.
type PaymentMethodUpdate struct {
	CardType         *string `json:"card_type"`
	MaskedCardNumber *string `json:"masked_card_number"`
	CardHolderName   *string `json:"card_holder_name"`
	ExpiryDate       *string `json:"expiry_date"`
	IsDefault        *bool   `json:"is_default"`
}

// Changes returns the column values to update.
func (u *PaymentMethodUpdate) Changes() map[string]any {
	changes := map[string]any{}
	setIf(changes, "card_type", u.CardType)
	setIf(changes, "masked_card_number", u.MaskedCardNumber)
	setIf(changes, "card_holder_name", u.CardHolderName)
	setIf(changes, "expiry_date", u.ExpiryDate)
	setIf(changes, "is_default", u.IsDefault)
	return changes
}
