package repository

import (
	"context"
	"errors"
	"fmt"

	"partshop/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const customerColumns = `customer_id, first_name, last_name, email, password_hash, phone, address, is_active, created_at`

type customerRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCustomerRepository creates a new PostgreSQL-backed customer repository.
func NewCustomerRepository(pool *pgxpool.Pool, logger zerolog.Logger) CustomerRepository {
	return &customerRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "customer").Logger(),
	}
}

func (r *customerRepository) Create(ctx context.Context, c *model.Customer) error {
	query := `
		INSERT INTO customers (first_name, last_name, email, password_hash, phone, address)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING customer_id, is_active, created_at
	`

	err := r.pool.QueryRow(ctx, query, c.FirstName, c.LastName, c.Email, c.PasswordHash, c.Phone, c.Address).
		Scan(&c.ID, &c.IsActive, &c.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to create customer")
		return translateError("failed to create customer", err)
	}
	return nil
}

func (r *customerRepository) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	return r.getOne(ctx, `SELECT `+customerColumns+` FROM customers WHERE customer_id = $1`, id)
}

func (r *customerRepository) GetByEmail(ctx context.Context, email string) (*model.Customer, error) {
	return r.getOne(ctx, `SELECT `+customerColumns+` FROM customers WHERE email = $1`, email)
}

func (r *customerRepository) getOne(ctx context.Context, query string, arg any) (*model.Customer, error) {
	c, err := scanCustomer(r.pool.QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query customer")
		return nil, fmt.Errorf("failed to query customer: %w", err)
	}
	return c, nil
}

func (r *customerRepository) Update(ctx context.Context, id int64, changes map[string]any) (*model.Customer, error) {
	query, args, err := buildUpdate("customers", "customer_id", id, changes, customerColumns)
	if err != nil {
		return nil, err
	}

	c, err := scanCustomer(r.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		r.logger.Error().Err(err).Int64("customer_id", id).Msg("failed to update customer")
		return nil, translateError("failed to update customer", err)
	}
	return c, nil
}

func (r *customerRepository) AddVehicle(ctx context.Context, v *model.Vehicle) error {
	query := `
		INSERT INTO vehicles (customer_id, make, model, year, vin)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING vehicle_id
	`

	if err := r.pool.QueryRow(ctx, query, v.CustomerID, v.Make, v.Model, v.Year, v.VIN).Scan(&v.ID); err != nil {
		r.logger.Error().Err(err).Int64("customer_id", v.CustomerID).Msg("failed to add vehicle")
		return translateError("failed to add vehicle", err)
	}
	return nil
}

func (r *customerRepository) ListVehicles(ctx context.Context, customerID int64) ([]model.Vehicle, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT vehicle_id, customer_id, make, model, year, vin
		FROM vehicles
		WHERE customer_id = $1
		ORDER BY vehicle_id
	`, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query vehicles: %w", err)
	}

	vehicles, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Vehicle])
	if err != nil {
		return nil, fmt.Errorf("failed to collect vehicles: %w", err)
	}
	return vehicles, nil
}

func scanCustomer(row pgx.Row) (*model.Customer, error) {
	var c model.Customer
	err := row.Scan(
		&c.ID,
		&c.FirstName,
		&c.LastName,
		&c.Email,
		&c.PasswordHash,
		&c.Phone,
		&c.Address,
		&c.IsActive,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
