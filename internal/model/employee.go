package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee represents a staff member.
type Employee struct {
	ID           int64            `json:"employee_id" db:"employee_id"`
	FirstName    string           `json:"first_name" db:"first_name"`
	LastName     string           `json:"last_name" db:"last_name"`
	Email        string           `json:"email" db:"email"`
	PasswordHash string           `json:"-" db:"password_hash"`
	Role         *string          `json:"role" db:"role"`
	HireDate     time.Time        `json:"hire_date" db:"hire_date"`
	Salary       *decimal.Decimal `json:"salary" db:"salary"`
	IsActive     bool             `json:"is_active" db:"is_active"`
	StoreID      *int64           `json:"store_id" db:"store_id"`
	CreatedAt    time.Time        `json:"created_at" db:"created_at"`
}

// CreateEmployeeRequest is the body of POST /api/employees.
type CreateEmployeeRequest struct {
	FirstName string           `json:"first_name"`
	LastName  string           `json:"last_name"`
	Email     string           `json:"email"`
	Password  string           `json:"password"`
	Role      *string          `json:"role"`
	Salary    *decimal.Decimal `json:"salary"`
	StoreID   *int64           `json:"store_id"`
}

// Validate checks required fields.
func (r *CreateEmployeeRequest) Validate() error {
	if r.FirstName == "" || r.LastName == "" || r.Email == "" {
		return NewValidationError("first_name, last_name and email are required")
	}
	if r.Password == "" {
		return NewValidationError("password is required")
	}
	return nil
}

// EmployeeUpdate carries the fields of PUT /api/employees/{id}.
type EmployeeUpdate struct {
	FirstName *string          `json:"first_name"`
	LastName  *string          `json:"last_name"`
	Email     *string          `json:"email"`
	Role      *string          `json:"role"`
	Salary    *decimal.Decimal `json:"salary"`
	IsActive  *bool            `json:"is_active"`
	StoreID   *int64           `json:"store_id"`
	Password  *string          `json:"password"`

	// PasswordHash is set by the service once Password has been hashed.
	PasswordHash *string `json:"-"`
}

// Changes returns the column values to update.
func (u *EmployeeUpdate) Changes() map[string]any {
	changes := map[string]any{}
	setIf(changes, "first_name", u.FirstName)
	setIf(changes, "last_name", u.LastName)
	setIf(changes, "email", u.Email)
	setIf(changes, "role", u.Role)
	setIf(changes, "salary", u.Salary)
	setIf(changes, "is_active", u.IsActive)
	setIf(changes, "store_id", u.StoreID)
	setIf(changes, "password_hash", u.PasswordHash)
	return changes
}
