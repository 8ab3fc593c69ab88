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

const returnColumns = `return_id, order_id, order_item_id, reason, quantity, refund_amount,
	status, requested_date, processed_date`

type returnRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewReturnRepository creates a new PostgreSQL-backed return repository.
func NewReturnRepository(pool *pgxpool.Pool, logger zerolog.Logger) ReturnRepository {
	return &returnRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "return").Logger(),
	}
}

func (r *returnRepository) Create(ctx context.Context, ret *model.Return) error {
	query := `
		INSERT INTO returns (order_id, order_item_id, reason, quantity, refund_amount)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING return_id, status, requested_date
	`

	err := r.pool.QueryRow(ctx, query, ret.OrderID, ret.OrderItemID, ret.Reason, ret.Quantity, ret.RefundAmount).
		Scan(&ret.ID, &ret.Status, &ret.RequestedDate)
	if err != nil {
		r.logger.Error().Err(err).Int64("order_id", ret.OrderID).Msg("failed to create return")
		return translateError("failed to create return", err)
	}
	return nil
}

func (r *returnRepository) GetByID(ctx context.Context, id int64) (*model.Return, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+returnColumns+` FROM returns WHERE return_id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query return: %w", err)
	}

	ret, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.Return])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to collect return: %w", err)
	}
	return ret, nil
}

func (r *returnRepository) ListByCustomer(ctx context.Context, customerID int64) ([]model.Return, error) {
	query := `
		SELECT re.return_id, re.order_id, re.order_item_id, re.reason, re.quantity, re.refund_amount,
			re.status, re.requested_date, re.processed_date
		FROM returns re
		JOIN orders o ON re.order_id = o.order_id
		WHERE o.customer_id = $1
		ORDER BY re.requested_date DESC, re.return_id DESC
	`
	return r.list(ctx, query, customerID)
}

func (r *returnRepository) List(ctx context.Context) ([]model.Return, error) {
	return r.list(ctx, `SELECT `+returnColumns+` FROM returns ORDER BY requested_date DESC, return_id DESC`)
}

func (r *returnRepository) list(ctx context.Context, query string, args ...any) ([]model.Return, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query returns")
		return nil, fmt.Errorf("failed to query returns: %w", err)
	}

	returns, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Return])
	if err != nil {
		return nil, fmt.Errorf("failed to collect returns: %w", err)
	}
	return returns, nil
}

func (r *returnRepository) UpdateStatus(ctx context.Context, id int64, status string) (*model.Return, error) {
	query := `
		UPDATE returns
		SET status = $1::varchar,
			processed_date = CASE WHEN $1::varchar <> $2::varchar THEN NOW() ELSE processed_date END
		WHERE return_id = $3
		RETURNING ` + returnColumns

	rows, err := r.pool.Query(ctx, query, status, model.ReturnStatusPending, id)
	if err != nil {
		return nil, translateError("failed to update return status", err)
	}

	ret, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.Return])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		r.logger.Error().Err(err).Int64("return_id", id).Msg("failed to update return status")
		return nil, translateError("failed to update return status", err)
	}
	return ret, nil
}
