package model

import "time"

// Store represents a physical shop location.
type Store struct {
	ID        int64     `json:"store_id" db:"store_id"`
	StoreName string    `json:"store_name" db:"store_name"`
	Address   string    `json:"address" db:"address"`
	Phone     *string   `json:"phone" db:"phone"`
	Email     *string   `json:"email" db:"email"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CreateStoreRequest is the body of POST /api/stores.
type CreateStoreRequest struct {
	StoreName string  `json:"store_name"`
	Address   string  `json:"address"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email"`
}

// Validate checks required fields.
func (r *CreateStoreRequest) Validate() error {
	if r.StoreName == "" || r.Address == "" {
		return NewValidationError("store_name and address are required")
	}
	return nil
}

// StoreUpdate carries the fields of PUT /api/stores/{id}.
type StoreUpdate struct {
	StoreName *string `json:"store_name"`
	Address   *string `json:"address"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email"`
}

// Changes returns the column values to update.
func (u *StoreUpdate) Changes() map[string]any {
	changes := map[string]any{}
	setIf(changes, "store_name", u.StoreName)
	setIf(changes, "address", u.Address)
	setIf(changes, "phone", u.Phone)
	setIf(changes, "email", u.Email)
	return changes
}
