package repository

import (
	"context"
	"time"

	"partshop/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction and
	// fills in its ID and order date. It reports false without error when
	// another order already holds the same idempotency key.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) (bool, error)

	// CreateOrderItems inserts the items in order within the provided
	// transaction and fills in their IDs.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// GetByID retrieves an order with its items, or nil when it does not exist.
	GetByID(ctx context.Context, id int64) (*model.Order, error)

	// GetByIdempotencyKey retrieves the order placed with key, or nil.
	GetByIdempotencyKey(ctx context.Context, key uuid.UUID) (*model.Order, error)

	// List retrieves orders newest first.
	List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error)

	// UpdateStatus moves an order from one status to another. It fails with
	// ErrInvalidStatusTransition when the order is no longer in status from.
	UpdateStatus(ctx context.Context, id int64, from, to model.OrderStatus) (*model.Order, error)
}

// PartRepository defines the interface for catalogue data access.
type PartRepository interface {
	List(ctx context.Context, limit, offset int) ([]model.Part, error)
	Search(ctx context.Context, query string, limit int) ([]model.Part, error)
	GetByID(ctx context.Context, id int64) (*model.Part, error)
	Create(ctx context.Context, part *model.Part) error
	Update(ctx context.Context, id int64, changes map[string]any) (*model.Part, error)
	Delete(ctx context.Context, id int64) error

	// UpsertByPartNumber inserts parts or updates the existing rows sharing
	// their part number, returning how many rows were written.
	UpsertByPartNumber(ctx context.Context, parts []model.Part) (int, error)
}

// CartRepository defines the interface for shopping cart data access.
type CartRepository interface {
	ListByCustomer(ctx context.Context, customerID int64) ([]model.CartLine, error)

	// Add inserts a cart row or increments the quantity of the existing one.
	// It reports true when a new row was inserted.
	Add(ctx context.Context, customerID, partID int64, quantity int) (*model.CartItem, bool, error)

	GetItem(ctx context.Context, cartItemID int64) (*model.CartItem, error)
	UpdateQuantity(ctx context.Context, cartItemID int64, quantity int) (*model.CartItem, error)
	DeleteItem(ctx context.Context, cartItemID int64) error
	Clear(ctx context.Context, customerID int64) error

	// ClearTx empties the cart within the provided transaction.
	ClearTx(ctx context.Context, tx pgx.Tx, customerID int64) error
}

// CustomerRepository defines the interface for customer data access.
type CustomerRepository interface {
	Create(ctx context.Context, customer *model.Customer) error
	GetByID(ctx context.Context, id int64) (*model.Customer, error)
	GetByEmail(ctx context.Context, email string) (*model.Customer, error)
	Update(ctx context.Context, id int64, changes map[string]any) (*model.Customer, error)
	AddVehicle(ctx context.Context, vehicle *model.Vehicle) error
	ListVehicles(ctx context.Context, customerID int64) ([]model.Vehicle, error)
}

// EmployeeRepository defines the interface for staff data access.
type EmployeeRepository interface {
	List(ctx context.Context) ([]model.Employee, error)
	GetByID(ctx context.Context, id int64) (*model.Employee, error)
	GetByEmail(ctx context.Context, email string) (*model.Employee, error)
	Create(ctx context.Context, employee *model.Employee) error
	Update(ctx context.Context, id int64, changes map[string]any) (*model.Employee, error)
	Delete(ctx context.Context, id int64) error
}

// StoreRepository defines the interface for store data access.
type StoreRepository interface {
	List(ctx context.Context) ([]model.Store, error)
	GetByID(ctx context.Context, id int64) (*model.Store, error)
	Create(ctx context.Context, store *model.Store) error
	Update(ctx context.Context, id int64, changes map[string]any) (*model.Store, error)
}

// InventoryRepository defines the interface for stock level data access.
type InventoryRepository interface {
	ListByStore(ctx context.Context, storeID int64) ([]model.InventoryItem, error)
	ListLowStock(ctx context.Context, storeID int64) ([]model.InventoryItem, error)
	UpdateQuantity(ctx context.Context, inventoryID int64, quantity int) (*model.InventoryItem, error)
}

// PaymentRepository defines the interface for payment method data access.
type PaymentRepository interface {
	ListByCustomer(ctx context.Context, customerID int64) ([]model.PaymentMethod, error)
	GetByID(ctx context.Context, id int64) (*model.PaymentMethod, error)
	Create(ctx context.Context, method *model.PaymentMethod) error
	Update(ctx context.Context, id int64, changes map[string]any) (*model.PaymentMethod, error)
	Delete(ctx context.Context, id int64) error

	// SetDefault makes id the only default method of its customer in one transaction.
	SetDefault(ctx context.Context, id int64) (*model.PaymentMethod, error)
}

// ReturnRepository defines the interface for return request data access.
type ReturnRepository interface {
	Create(ctx context.Context, ret *model.Return) error
	GetByID(ctx context.Context, id int64) (*model.Return, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]model.Return, error)
	List(ctx context.Context) ([]model.Return, error)

	// UpdateStatus sets the status, stamping processed_date for any status
	// other than pending.
	UpdateStatus(ctx context.Context, id int64, status string) (*model.Return, error)
}

// ReportRepository defines the interface for sales aggregates.
type ReportRepository interface {
	// SalesBetween sums order totals with from <= order date < to.
	SalesBetween(ctx context.Context, from, to time.Time) (model.SalesTotal, error)
	EmployeeActivity(ctx context.Context, employeeID int64, from, to *time.Time) (model.EmployeeActivity, error)
}

// OutboxRepository defines the interface for the order-event outbox.
type OutboxRepository interface {
	// Insert adds a message within the provided transaction.
	Insert(ctx context.Context, tx pgx.Tx, msg model.OutboxMessage) error
	GetPending(ctx context.Context, limit int) ([]model.OutboxMessage, error)
	Delete(ctx context.Context, id int64) error
	UpdateRetry(ctx context.Context, id int64, retryCount int, lastError string, nextRetryAt time.Time) error
}
