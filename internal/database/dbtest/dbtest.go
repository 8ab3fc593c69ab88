// Package dbtest starts a migrated PostgreSQL container for tests.
package dbtest

import (
	"context"
	"testing"
	"time"

	"partshop/internal/database"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// Setup creates a PostgreSQL container, connects a pool and applies every
// migration. The container is terminated when the test finishes.
func Setup(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	opts := database.DefaultPoolOptions()
	opts.MaxConns = 10
	pool, err := database.Open(ctx, connStr, opts)
	if err != nil {
		t.Fatalf("failed to open pool: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := database.Migrate(ctx, pool, zerolog.Nop()); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return &TestDB{
		Container: container,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// Truncate empties every application table and resets identities.
func Truncate(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	_, err := pool.Exec(context.Background(), `
		TRUNCATE outbox_messages, returns, order_items, orders, payment_methods,
			cart_items, inventory, parts, employees, vehicles, customers, stores
		RESTART IDENTITY CASCADE
	`)
	if err != nil {
		t.Fatalf("failed to truncate tables: %v", err)
	}
}

// SeedCustomer inserts a customer and returns its ID.
func SeedCustomer(t *testing.T, pool *pgxpool.Pool, email string) int64 {
	t.Helper()

	var id int64
	err := pool.QueryRow(context.Background(), `
		INSERT INTO customers (first_name, last_name, email, password_hash)
		VALUES ('Test', 'Customer', $1, 'x')
		RETURNING customer_id
	`, email).Scan(&id)
	if err != nil {
		t.Fatalf("failed to seed customer %s: %v", email, err)
	}
	return id
}

// SeedPart inserts a part and returns its ID.
func SeedPart(t *testing.T, pool *pgxpool.Pool, partNumber, name, price string) int64 {
	t.Helper()

	var id int64
	err := pool.QueryRow(context.Background(), `
		INSERT INTO parts (part_number, name, price)
		VALUES ($1, $2, $3)
		RETURNING part_id
	`, partNumber, name, decimal.RequireFromString(price)).Scan(&id)
	if err != nil {
		t.Fatalf("failed to seed part %s: %v", partNumber, err)
	}
	return id
}

// SeedPaymentMethod inserts a card for customerID and returns its ID.
func SeedPaymentMethod(t *testing.T, pool *pgxpool.Pool, customerID int64) int64 {
	t.Helper()

	var id int64
	err := pool.QueryRow(context.Background(), `
		INSERT INTO payment_methods (customer_id, card_type, masked_card_number)
		VALUES ($1, 'visa', '**** 4242')
		RETURNING payment_method_id
	`, customerID).Scan(&id)
	if err != nil {
		t.Fatalf("failed to seed payment method for customer %d: %v", customerID, err)
	}
	return id
}

// SeedStore inserts a store and returns its ID.
func SeedStore(t *testing.T, pool *pgxpool.Pool, name string) int64 {
	t.Helper()

	var id int64
	err := pool.QueryRow(context.Background(), `
		INSERT INTO stores (store_name, address)
		VALUES ($1, '1 Main St')
		RETURNING store_id
	`, name).Scan(&id)
	if err != nil {
		t.Fatalf("failed to seed store %s: %v", name, err)
	}
	return id
}

// SeedEmployee inserts an employee and returns its ID.
func SeedEmployee(t *testing.T, pool *pgxpool.Pool, email string) int64 {
	t.Helper()

	var id int64
	err := pool.QueryRow(context.Background(), `
		INSERT INTO employees (first_name, last_name, email, password_hash)
		VALUES ('Test', 'Employee', $1, 'x')
		RETURNING employee_id
	`, email).Scan(&id)
	if err != nil {
		t.Fatalf("failed to seed employee %s: %v", email, err)
	}
	return id
}

// CountRows returns the number of rows in table.
func CountRows(t *testing.T, pool *pgxpool.Pool, table string) int {
	t.Helper()

	var n int
	if err := pool.QueryRow(context.Background(), "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		t.Fatalf("failed to count %s: %v", table, err)
	}
	return n
}
