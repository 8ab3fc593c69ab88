package model

import "time"

// Customer represents a registered shopper.
type Customer struct {
	ID           int64     `json:"customer_id" db:"customer_id"`
	FirstName    string    `json:"first_name" db:"first_name"`
	LastName     string    `json:"last_name" db:"last_name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Phone        *string   `json:"phone" db:"phone"`
	Address      *string   `json:"address" db:"address"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// CustomerUpdate carries the fields of PUT /api/customers/{id}.
type CustomerUpdate struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
	Address   *string `json:"address"`
	IsActive  *bool   `json:"is_active"`
}

// Changes returns the column values to update.
func (u *CustomerUpdate) Changes() map[string]any {
	changes := map[string]any{}
	setIf(changes, "first_name", u.FirstName)
	setIf(changes, "last_name", u.LastName)
	setIf(changes, "phone", u.Phone)
	setIf(changes, "address", u.Address)
	setIf(changes, "is_active", u.IsActive)
	return changes
}

// Vehicle is a car registered by a customer, used to find fitting parts.
type Vehicle struct {
	ID         int64   `json:"vehicle_id" db:"vehicle_id"`
	CustomerID int64   `json:"customer_id" db:"customer_id"`
	Make       string  `json:"make" db:"make"`
	Model      string  `json:"model" db:"model"`
	Year       int     `json:"year" db:"year"`
	VIN        *string `json:"vin" db:"vin"`
}

// AddVehicleRequest is the body of POST /api/customers/{id}/vehicles.
type AddVehicleRequest struct {
	Make  string  `json:"make"`
	Model string  `json:"model"`
	Year  int     `json:"year"`
	VIN   *string `json:"vin"`
}

// Validate checks required fields.
func (r *AddVehicleRequest) Validate() error {
	if r.Make == "" || r.Model == "" {
		return NewValidationError("make and model are required")
	}
	if r.Year < 1886 || r.Year > time.Now().Year()+1 {
		return NewValidationError("year is out of range")
	}
	return nil
}
