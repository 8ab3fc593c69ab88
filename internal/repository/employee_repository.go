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

const employeeColumns = `employee_id, first_name, last_name, email, password_hash, role,
	hire_date, salary, is_active, store_id, created_at`

type employeeRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewEmployeeRepository creates a new PostgreSQL-backed employee repository.
func NewEmployeeRepository(pool *pgxpool.Pool, logger zerolog.Logger) EmployeeRepository {
	return &employeeRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "employee").Logger(),
	}
}

func (r *employeeRepository) List(ctx context.Context) ([]model.Employee, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+employeeColumns+` FROM employees ORDER BY employee_id`)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query employees")
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	employees := []model.Employee{}
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, *e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating employees: %w", err)
	}

	return employees, nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id int64) (*model.Employee, error) {
	return r.getOne(ctx, `SELECT `+employeeColumns+` FROM employees WHERE employee_id = $1`, id)
}

func (r *employeeRepository) GetByEmail(ctx context.Context, email string) (*model.Employee, error) {
	return r.getOne(ctx, `SELECT `+employeeColumns+` FROM employees WHERE email = $1`, email)
}

func (r *employeeRepository) getOne(ctx context.Context, query string, arg any) (*model.Employee, error) {
	e, err := scanEmployee(r.pool.QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query employee")
		return nil, fmt.Errorf("failed to query employee: %w", err)
	}
	return e, nil
}

func (r *employeeRepository) Create(ctx context.Context, e *model.Employee) error {
	query := `
		INSERT INTO employees (first_name, last_name, email, password_hash, role, salary, store_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING employee_id, hire_date, is_active, created_at
	`

	err := r.pool.QueryRow(ctx, query, e.FirstName, e.LastName, e.Email, e.PasswordHash, e.Role, e.Salary, e.StoreID).
		Scan(&e.ID, &e.HireDate, &e.IsActive, &e.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to create employee")
		return translateError("failed to create employee", err)
	}
	return nil
}

func (r *employeeRepository) Update(ctx context.Context, id int64, changes map[string]any) (*model.Employee, error) {
	query, args, err := buildUpdate("employees", "employee_id", id, changes, employeeColumns)
	if err != nil {
		return nil, err
	}

	e, err := scanEmployee(r.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		r.logger.Error().Err(err).Int64("employee_id", id).Msg("failed to update employee")
		return nil, translateError("failed to update employee", err)
	}
	return e, nil
}

func (r *employeeRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM employees WHERE employee_id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("employee_id", id).Msg("failed to delete employee")
		return translateError("failed to delete employee", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func scanEmployee(row pgx.Row) (*model.Employee, error) {
	var e model.Employee
	err := row.Scan(
		&e.ID,
		&e.FirstName,
		&e.LastName,
		&e.Email,
		&e.PasswordHash,
		&e.Role,
		&e.HireDate,
		&e.Salary,
		&e.IsActive,
		&e.StoreID,
		&e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
