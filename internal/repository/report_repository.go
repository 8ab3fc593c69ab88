package repository

import (
	"context"
	"fmt"
	"time"

	"partshop/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

type reportRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewReportRepository creates a new PostgreSQL-backed report repository.
func NewReportRepository(pool *pgxpool.Pool, logger zerolog.Logger) ReportRepository {
	return &reportRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "report").Logger(),
	}
}

func (r *reportRepository) SalesBetween(ctx context.Context, from, to time.Time) (model.SalesTotal, error) {
	query := `
		SELECT COALESCE(SUM(total_amount), 0)
		FROM orders
		WHERE order_date >= $1 AND order_date < $2
	`

	var total model.SalesTotal
	if err := r.pool.QueryRow(ctx, query, from, to).Scan(&total.Total); err != nil {
		r.logger.Error().Err(err).Time("from", from).Time("to", to).Msg("failed to sum sales")
		return model.SalesTotal{}, fmt.Errorf("failed to sum sales: %w", err)
	}
	return total, nil
}

// EmployeeActivity counts and sums the orders an employee handled,
// optionally bounded to from <= order date < to.
func (r *reportRepository) EmployeeActivity(ctx context.Context, employeeID int64, from, to *time.Time) (model.EmployeeActivity, error) {
	builder := psql.Select("COUNT(*)", "COALESCE(SUM(total_amount), 0)").
		From("orders").
		Where("employee_id = ?", employeeID)
	if from != nil {
		builder = builder.Where("order_date >= ?", *from)
	}
	if to != nil {
		builder = builder.Where("order_date < ?", *to)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return model.EmployeeActivity{}, fmt.Errorf("failed to build activity query: %w", err)
	}

	var activity model.EmployeeActivity
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&activity.OrdersHandled, &activity.TotalSales); err != nil {
		r.logger.Error().Err(err).Int64("employee_id", employeeID).Msg("failed to query employee activity")
		return model.EmployeeActivity{}, fmt.Errorf("failed to query employee activity: %w", err)
	}
	return activity, nil
}
