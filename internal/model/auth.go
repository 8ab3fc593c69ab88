package model

// Role identifies the kind of principal behind a token.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleStaff    Role = "staff"
)

// Principal is the authenticated subject of a request.
type Principal struct {
	ID   int64
	Role Role
}

// IsStaff reports whether the principal is an employee.
func (p Principal) IsStaff() bool {
	return p.Role == RoleStaff
}

// CanAccessCustomer reports whether the principal may act on customerID's resources.
func (p Principal) CanAccessCustomer(customerID int64) bool {
	return p.IsStaff() || p.ID == customerID
}

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	Phone     *string `json:"phone"`
	Address   *string `json:"address"`
}

// Validate checks required fields.
func (r *RegisterRequest) Validate() error {
	if r.FirstName == "" || r.LastName == "" || r.Email == "" || r.Password == "" {
		return NewValidationError("first_name, last_name, email and password are required")
	}
	return nil
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// User is the authenticated user returned to the client.
type User struct {
	CustomerID *int64 `json:"customerId,omitempty"`
	EmployeeID *int64 `json:"employeeId,omitempty"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Role       Role   `json:"role"`
	Token      string `json:"token"`
}

// AuthResponse wraps the authenticated user.
type AuthResponse struct {
	User User `json:"user"`
}
