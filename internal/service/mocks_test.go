package service

import (
	"context"
	"time"

	"partshop/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/mock"
)

// MockOrderRepository is a mock implementation of OrderRepository.
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if tx, ok := args.Get(0).(pgx.Tx); ok {
		return tx, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) (bool, error) {
	args := m.Called(ctx, tx, order)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error {
	args := m.Called(ctx, tx, items)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	args := m.Called(ctx, id)
	order, _ := args.Get(0).(*model.Order)
	return order, args.Error(1)
}

func (m *MockOrderRepository) GetByIdempotencyKey(ctx context.Context, key uuid.UUID) (*model.Order, error) {
	args := m.Called(ctx, key)
	order, _ := args.Get(0).(*model.Order)
	return order, args.Error(1)
}

func (m *MockOrderRepository) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	args := m.Called(ctx, filter)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id int64, from, to model.OrderStatus) (*model.Order, error) {
	args := m.Called(ctx, id, from, to)
	order, _ := args.Get(0).(*model.Order)
	return order, args.Error(1)
}

// MockCartRepository is a mock implementation of CartRepository.
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) ListByCustomer(ctx context.Context, customerID int64) ([]model.CartLine, error) {
	args := m.Called(ctx, customerID)
	lines, _ := args.Get(0).([]model.CartLine)
	return lines, args.Error(1)
}

func (m *MockCartRepository) Add(ctx context.Context, customerID, partID int64, quantity int) (*model.CartItem, bool, error) {
	args := m.Called(ctx, customerID, partID, quantity)
	item, _ := args.Get(0).(*model.CartItem)
	return item, args.Bool(1), args.Error(2)
}

func (m *MockCartRepository) GetItem(ctx context.Context, cartItemID int64) (*model.CartItem, error) {
	args := m.Called(ctx, cartItemID)
	item, _ := args.Get(0).(*model.CartItem)
	return item, args.Error(1)
}

func (m *MockCartRepository) UpdateQuantity(ctx context.Context, cartItemID int64, quantity int) (*model.CartItem, error) {
	args := m.Called(ctx, cartItemID, quantity)
	item, _ := args.Get(0).(*model.CartItem)
	return item, args.Error(1)
}

func (m *MockCartRepository) DeleteItem(ctx context.Context, cartItemID int64) error {
	return m.Called(ctx, cartItemID).Error(0)
}

func (m *MockCartRepository) Clear(ctx context.Context, customerID int64) error {
	return m.Called(ctx, customerID).Error(0)
}

func (m *MockCartRepository) ClearTx(ctx context.Context, tx pgx.Tx, customerID int64) error {
	return m.Called(ctx, tx, customerID).Error(0)
}

// MockOutboxRepository is a mock implementation of OutboxRepository.
type MockOutboxRepository struct {
	mock.Mock
}

func (m *MockOutboxRepository) Insert(ctx context.Context, tx pgx.Tx, msg model.OutboxMessage) error {
	return m.Called(ctx, tx, msg).Error(0)
}

func (m *MockOutboxRepository) GetPending(ctx context.Context, limit int) ([]model.OutboxMessage, error) {
	args := m.Called(ctx, limit)
	msgs, _ := args.Get(0).([]model.OutboxMessage)
	return msgs, args.Error(1)
}

func (m *MockOutboxRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockOutboxRepository) UpdateRetry(ctx context.Context, id int64, retryCount int, lastError string, nextRetryAt time.Time) error {
	return m.Called(ctx, id, retryCount, lastError, nextRetryAt).Error(0)
}

// MockPartRepository is a mock implementation of PartRepository.
type MockPartRepository struct {
	mock.Mock
}

func (m *MockPartRepository) List(ctx context.Context, limit, offset int) ([]model.Part, error) {
	args := m.Called(ctx, limit, offset)
	parts, _ := args.Get(0).([]model.Part)
	return parts, args.Error(1)
}

func (m *MockPartRepository) Search(ctx context.Context, query string, limit int) ([]model.Part, error) {
	args := m.Called(ctx, query, limit)
	parts, _ := args.Get(0).([]model.Part)
	return parts, args.Error(1)
}

func (m *MockPartRepository) GetByID(ctx context.Context, id int64) (*model.Part, error) {
	args := m.Called(ctx, id)
	part, _ := args.Get(0).(*model.Part)
	return part, args.Error(1)
}

func (m *MockPartRepository) Create(ctx context.Context, part *model.Part) error {
	return m.Called(ctx, part).Error(0)
}

func (m *MockPartRepository) Update(ctx context.Context, id int64, changes map[string]any) (*model.Part, error) {
	args := m.Called(ctx, id, changes)
	part, _ := args.Get(0).(*model.Part)
	return part, args.Error(1)
}

func (m *MockPartRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockPartRepository) UpsertByPartNumber(ctx context.Context, parts []model.Part) (int, error) {
	args := m.Called(ctx, parts)
	return args.Int(0), args.Error(1)
}

// MockPartCache is a mock implementation of PartCache.
type MockPartCache struct {
	mock.Mock
}

func (m *MockPartCache) Get(ctx context.Context, id int64) (*model.Part, error) {
	args := m.Called(ctx, id)
	part, _ := args.Get(0).(*model.Part)
	return part, args.Error(1)
}

func (m *MockPartCache) Set(ctx context.Context, part *model.Part) error {
	return m.Called(ctx, part).Error(0)
}

func (m *MockPartCache) Invalidate(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// MockCustomerRepository is a mock implementation of CustomerRepository.
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) Create(ctx context.Context, customer *model.Customer) error {
	return m.Called(ctx, customer).Error(0)
}

func (m *MockCustomerRepository) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	args := m.Called(ctx, id)
	customer, _ := args.Get(0).(*model.Customer)
	return customer, args.Error(1)
}

func (m *MockCustomerRepository) GetByEmail(ctx context.Context, email string) (*model.Customer, error) {
	args := m.Called(ctx, email)
	customer, _ := args.Get(0).(*model.Customer)
	return customer, args.Error(1)
}

func (m *MockCustomerRepository) Update(ctx context.Context, id int64, changes map[string]any) (*model.Customer, error) {
	args := m.Called(ctx, id, changes)
	customer, _ := args.Get(0).(*model.Customer)
	return customer, args.Error(1)
}

func (m *MockCustomerRepository) AddVehicle(ctx context.Context, vehicle *model.Vehicle) error {
	return m.Called(ctx, vehicle).Error(0)
}

func (m *MockCustomerRepository) ListVehicles(ctx context.Context, customerID int64) ([]model.Vehicle, error) {
	args := m.Called(ctx, customerID)
	vehicles, _ := args.Get(0).([]model.Vehicle)
	return vehicles, args.Error(1)
}

// MockEmployeeRepository is a mock implementation of EmployeeRepository.
type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) List(ctx context.Context) ([]model.Employee, error) {
	args := m.Called(ctx)
	employees, _ := args.Get(0).([]model.Employee)
	return employees, args.Error(1)
}

func (m *MockEmployeeRepository) GetByID(ctx context.Context, id int64) (*model.Employee, error) {
	args := m.Called(ctx, id)
	employee, _ := args.Get(0).(*model.Employee)
	return employee, args.Error(1)
}

func (m *MockEmployeeRepository) GetByEmail(ctx context.Context, email string) (*model.Employee, error) {
	args := m.Called(ctx, email)
	employee, _ := args.Get(0).(*model.Employee)
	return employee, args.Error(1)
}

func (m *MockEmployeeRepository) Create(ctx context.Context, employee *model.Employee) error {
	return m.Called(ctx, employee).Error(0)
}

func (m *MockEmployeeRepository) Update(ctx context.Context, id int64, changes map[string]any) (*model.Employee, error) {
	args := m.Called(ctx, id, changes)
	employee, _ := args.Get(0).(*model.Employee)
	return employee, args.Error(1)
}

func (m *MockEmployeeRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// MockPaymentRepository is a mock implementation of PaymentRepository.
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) ListByCustomer(ctx context.Context, customerID int64) ([]model.PaymentMethod, error) {
	args := m.Called(ctx, customerID)
	methods, _ := args.Get(0).([]model.PaymentMethod)
	return methods, args.Error(1)
}

func (m *MockPaymentRepository) GetByID(ctx context.Context, id int64) (*model.PaymentMethod, error) {
	args := m.Called(ctx, id)
	method, _ := args.Get(0).(*model.PaymentMethod)
	return method, args.Error(1)
}

func (m *MockPaymentRepository) Create(ctx context.Context, method *model.PaymentMethod) error {
	return m.Called(ctx, method).Error(0)
}

func (m *MockPaymentRepository) Update(ctx context.Context, id int64, changes map[string]any) (*model.PaymentMethod, error) {
	args := m.Called(ctx, id, changes)
	method, _ := args.Get(0).(*model.PaymentMethod)
	return method, args.Error(1)
}

func (m *MockPaymentRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockPaymentRepository) SetDefault(ctx context.Context, id int64) (*model.PaymentMethod, error) {
	args := m.Called(ctx, id)
	method, _ := args.Get(0).(*model.PaymentMethod)
	return method, args.Error(1)
}

// MockReturnRepository is a mock implementation of ReturnRepository.
type MockReturnRepository struct {
	mock.Mock
}

func (m *MockReturnRepository) Create(ctx context.Context, ret *model.Return) error {
	return m.Called(ctx, ret).Error(0)
}

func (m *MockReturnRepository) GetByID(ctx context.Context, id int64) (*model.Return, error) {
	args := m.Called(ctx, id)
	ret, _ := args.Get(0).(*model.Return)
	return ret, args.Error(1)
}

func (m *MockReturnRepository) ListByCustomer(ctx context.Context, customerID int64) ([]model.Return, error) {
	args := m.Called(ctx, customerID)
	returns, _ := args.Get(0).([]model.Return)
	return returns, args.Error(1)
}

func (m *MockReturnRepository) List(ctx context.Context) ([]model.Return, error) {
	args := m.Called(ctx)
	returns, _ := args.Get(0).([]model.Return)
	return returns, args.Error(1)
}

func (m *MockReturnRepository) UpdateStatus(ctx context.Context, id int64, status string) (*model.Return, error) {
	args := m.Called(ctx, id, status)
	ret, _ := args.Get(0).(*model.Return)
	return ret, args.Error(1)
}

// MockReportRepository is a mock implementation of ReportRepository.
type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) SalesBetween(ctx context.Context, from, to time.Time) (model.SalesTotal, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(model.SalesTotal), args.Error(1)
}

func (m *MockReportRepository) EmployeeActivity(ctx context.Context, employeeID int64, from, to *time.Time) (model.EmployeeActivity, error) {
	args := m.Called(ctx, employeeID, from, to)
	return args.Get(0).(model.EmployeeActivity), args.Error(1)
}

// MockTx is a minimal mock implementation of pgx.Tx for testing.
type MockTx struct {
	mock.Mock
}

func (m *MockTx) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// Stub methods to satisfy pgx.Tx; the repositories are mocked so these are never reached.
func (m *MockTx) Begin(ctx context.Context) (pgx.Tx, error) { return nil, nil }
func (m *MockTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (m *MockTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (m *MockTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (m *MockTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (m *MockTx) Exec(ctx context.Context, sql string, arguments ...any) (commandTag pgconn.CommandTag, err error) {
	return
}
func (m *MockTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (m *MockTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (m *MockTx) Conn() *pgx.Conn                                               { return nil }

// MockStoreRepository is a mock implementation of StoreRepository.
type MockStoreRepository struct {
	mock.Mock
}

func (m *MockStoreRepository) List(ctx context.Context) ([]model.Store, error) {
	args := m.Called(ctx)
	stores, _ := args.Get(0).([]model.Store)
	return stores, args.Error(1)
}

func (m *MockStoreRepository) GetByID(ctx context.Context, id int64) (*model.Store, error) {
	args := m.Called(ctx, id)
	store, _ := args.Get(0).(*model.Store)
	return store, args.Error(1)
}

func (m *MockStoreRepository) Create(ctx context.Context, store *model.Store) error {
	return m.Called(ctx, store).Error(0)
}

func (m *MockStoreRepository) Update(ctx context.Context, id int64, changes map[string]any) (*model.Store, error) {
	args := m.Called(ctx, id, changes)
	store, _ := args.Get(0).(*model.Store)
	return store, args.Error(1)
}

// MockInventoryRepository is a mock implementation of InventoryRepository.
type MockInventoryRepository struct {
	mock.Mock
}

func (m *MockInventoryRepository) ListByStore(ctx context.Context, storeID int64) ([]model.InventoryItem, error) {
	args := m.Called(ctx, storeID)
	items, _ := args.Get(0).([]model.InventoryItem)
	return items, args.Error(1)
}

func (m *MockInventoryRepository) ListLowStock(ctx context.Context, storeID int64) ([]model.InventoryItem, error) {
	args := m.Called(ctx, storeID)
	items, _ := args.Get(0).([]model.InventoryItem)
	return items, args.Error(1)
}

func (m *MockInventoryRepository) UpdateQuantity(ctx context.Context, inventoryID int64, quantity int) (*model.InventoryItem, error) {
	args := m.Called(ctx, inventoryID, quantity)
	item, _ := args.Get(0).(*model.InventoryItem)
	return item, args.Error(1)
}
