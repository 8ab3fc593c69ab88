package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PartStatusAvailable is the default status of a newly listed part.
const PartStatusAvailable = "available"

// Part represents an auto part in the catalogue.
type Part struct {
	ID           int64           `json:"part_id" db:"part_id"`
	PartNumber   string          `json:"part_number" db:"part_number"`
	Name         string          `json:"name" db:"name"`
	Description  *string         `json:"description" db:"description"`
	Manufacturer *string         `json:"manufacturer" db:"manufacturer"`
	Category     *string         `json:"category" db:"category"`
	Price        decimal.Decimal `json:"price" db:"price"`
	Status       string          `json:"status" db:"status"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
}

// CreatePartRequest is the body of POST /api/parts.
type CreatePartRequest struct {
	PartNumber   string          `json:"part_number"`
	Name         string          `json:"name"`
	Description  *string         `json:"description"`
	Manufacturer *string         `json:"manufacturer"`
	Category     *string         `json:"category"`
	Price        decimal.Decimal `json:"price"`
	Status       *string         `json:"status"`
}

// Validate checks required fields.
func (r *CreatePartRequest) Validate() error {
	if r.PartNumber == "" {
		return NewValidationError("part_number is required")
	}
	if r.Name == "" {
		return NewValidationError("name is required")
	}
	if r.Price.IsNegative() {
		return ErrInvalidPrice
	}
	return nil
}

// PartUpdate carries the fields of PUT /api/parts/{id}; nil fields are left unchanged.
type PartUpdate struct {
	PartNumber   *string          `json:"part_number"`
	Name         *string          `json:"name"`
	Description  *string          `json:"description"`
	Manufacturer *string          `json:"manufacturer"`
	Category     *string          `json:"category"`
	Price        *decimal.Decimal `json:"price"`
	Status       *string          `json:"status"`
}

// Changes returns the column values to update.
func (u *PartUpdate) Changes() map[string]any {
	changes := map[string]any{}
	setIf(changes, "part_number", u.PartNumber)
	setIf(changes, "name", u.Name)
	setIf(changes, "description", u.Description)
	setIf(changes, "manufacturer", u.Manufacturer)
	setIf(changes, "category", u.Category)
	setIf(changes, "price", u.Price)
	setIf(changes, "status", u.Status)
	return changes
}

// setIf records column = *value when value is non-nil.
func setIf[T any](changes map[string]any, column string, value *T) {
	if value != nil {
		changes[column] = *value
	}
}
