package service

import (
	"context"

	"partshop/internal/model"
)

// OrderService defines operations for order management.
type OrderService interface {
	// PlaceOrder creates an order and its items in one transaction. The
	// boolean is false when an earlier order with the same idempotency key
	// is returned instead.
	PlaceOrder(ctx context.Context, req *model.PlaceOrderRequest) (*model.Order, bool, error)

	// Checkout places an order from the customer's cart at current prices
	// and empties the cart in the same transaction.
	Checkout(ctx context.Context, p model.Principal, req *model.CheckoutRequest) (*model.Order, error)

	GetByID(ctx context.Context, p model.Principal, id int64) (*model.Order, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]model.Order, error)
	List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error)

	// UpdateStatus moves an order to status. Terminal orders cannot move.
	UpdateStatus(ctx context.Context, id int64, status string) (*model.Order, error)
}

// PartService defines operations for the parts catalogue.
type PartService interface {
	List(ctx context.Context, limit, offset int) ([]model.Part, error)
	Search(ctx context.Context, query string) ([]model.Part, error)
	GetByID(ctx context.Context, id int64) (*model.Part, error)
	Create(ctx context.Context, req *model.CreatePartRequest) (*model.Part, error)
	Update(ctx context.Context, id int64, upd *model.PartUpdate) (*model.Part, error)
	Delete(ctx context.Context, id int64) error
}

// CartService defines operations on a customer's cart.
type CartService interface {
	Get(ctx context.Context, customerID int64) ([]model.CartLine, error)

	// Add reports true when a new cart row was created.
	Add(ctx context.Context, p model.Principal, req *model.AddToCartRequest) (*model.CartItem, bool, error)
	UpdateQuantity(ctx context.Context, p model.Principal, cartItemID int64, quantity int) (*model.CartItem, error)
	DeleteItem(ctx context.Context, p model.Principal, cartItemID int64) error
	Clear(ctx context.Context, customerID int64) error
}

// AuthService registers and authenticates users.
type AuthService interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error)
}

// CustomerService defines operations on customer profiles.
type CustomerService interface {
	GetByID(ctx context.Context, id int64) (*model.Customer, error)
	Update(ctx context.Context, id int64, upd *model.CustomerUpdate) (*model.Customer, error)
	AddVehicle(ctx context.Context, customerID int64, req *model.AddVehicleRequest) (*model.Vehicle, error)
	ListVehicles(ctx context.Context, customerID int64) ([]model.Vehicle, error)
}

// EmployeeService defines staff management operations.
type EmployeeService interface {
	List(ctx context.Context) ([]model.Employee, error)
	GetByID(ctx context.Context, id int64) (*model.Employee, error)
	Create(ctx context.Context, req *model.CreateEmployeeRequest) (*model.Employee, error)
	Update(ctx context.Context, id int64, upd *model.EmployeeUpdate) (*model.Employee, error)
	Delete(ctx context.Context, id int64) error
}

// StoreService defines store management operations.
type StoreService interface {
	List(ctx context.Context) ([]model.Store, error)
	GetByID(ctx context.Context, id int64) (*model.Store, error)
	Create(ctx context.Context, req *model.CreateStoreRequest) (*model.Store, error)
	Update(ctx context.Context, id int64, upd *model.StoreUpdate) (*model.Store, error)
}

// InventoryService defines stock level operations.
type InventoryService interface {
	ListByStore(ctx context.Context, storeID int64) ([]model.InventoryItem, error)
	ListLowStock(ctx context.Context, storeID int64) ([]model.InventoryItem, error)
	UpdateQuantity(ctx context.Context, inventoryID int64, quantity int) (*model.InventoryItem, error)
}

// PaymentService defines payment method operations.
type PaymentService interface {
	ListByCustomer(ctx context.Context, customerID int64) ([]model.PaymentMethod, error)
	Create(ctx context.Context, req *model.CreatePaymentMethodRequest) (*model.PaymentMethod, error)
	Update(ctx context.Context, p model.Principal, id int64, upd *model.PaymentMethodUpdate) (*model.PaymentMethod, error)
	Delete(ctx context.Context, p model.Principal, id int64) error
	SetDefault(ctx context.Context, p model.Principal, id int64) (*model.PaymentMethod, error)
}

// ReturnService defines return request operations.
type ReturnService interface {
	Create(ctx context.Context, p model.Principal, req *model.CreateReturnRequest) (*model.Return, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]model.Return, error)
	List(ctx context.Context) ([]model.Return, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*model.Return, error)
}

// ReportService computes sales reports. Dates are YYYY-MM-DD in UTC.
type ReportService interface {
	DailySales(ctx context.Context, date string) (model.SalesTotal, error)
	WeeklySales(ctx context.Context, startDate string) (model.SalesTotal, error)
	MonthlySales(ctx context.Context, year, month string) (model.SalesTotal, error)
	EmployeeActivity(ctx context.Context, employeeID int64, startDate, endDate string) (model.EmployeeActivity, error)
}

// PartCache is a read-through cache of catalogue parts.
type PartCache interface {
	// Get returns the cached part, or nil on a miss.
	Get(ctx context.Context, id int64) (*model.Part, error)
	Set(ctx context.Context, part *model.Part) error
	Invalidate(ctx context.Context, id int64) error
}

// authorize fails with ErrForbidden unless p may act for customerID.
func authorize(p model.Principal, customerID int64) error {
	if !p.CanAccessCustomer(customerID) {
		return model.ErrForbidden
	}
	return nil
}
