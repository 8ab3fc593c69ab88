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

const paymentColumns = `payment_method_id, customer_id, card_type, masked_card_number,
	card_holder_name, expiry_date, is_default, added_at`

type paymentRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPaymentRepository creates a new PostgreSQL-backed payment method repository.
func NewPaymentRepository(pool *pgxpool.Pool, logger zerolog.Logger) PaymentRepository {
	return &paymentRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "payment").Logger(),
	}
}

func (r *paymentRepository) ListByCustomer(ctx context.Context, customerID int64) ([]model.PaymentMethod, error) {
	query := `SELECT ` + paymentColumns + `
		FROM payment_methods
		WHERE customer_id = $1
		ORDER BY added_at DESC, payment_method_id DESC
	`

	rows, err := r.pool.Query(ctx, query, customerID)
	if err != nil {
		r.logger.Error().Err(err).Int64("customer_id", customerID).Msg("failed to query payment methods")
		return nil, fmt.Errorf("failed to query payment methods: %w", err)
	}

	methods, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.PaymentMethod])
	if err != nil {
		return nil, fmt.Errorf("failed to collect payment methods: %w", err)
	}
	return methods, nil
}

func (r *paymentRepository) GetByID(ctx context.Context, id int64) (*model.PaymentMethod, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+paymentColumns+` FROM payment_methods WHERE payment_method_id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query payment method: %w", err)
	}

	pm, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.PaymentMethod])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to collect payment method: %w", err)
	}
	return pm, nil
}

func (r *paymentRepository) Create(ctx context.Context, pm *model.PaymentMethod) error {
	query := `
		INSERT INTO payment_methods (customer_id, card_type, masked_card_number, card_holder_name, expiry_date, is_default)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING payment_method_id, added_at
	`

	err := r.pool.QueryRow(ctx, query,
		pm.CustomerID, pm.CardType, pm.MaskedCardNumber, pm.CardHolderName, pm.ExpiryDate, pm.IsDefault,
	).Scan(&pm.ID, &pm.AddedAt)
	if err != nil {
		r.logger.Error().Err(err).Int64("customer_id", pm.CustomerID).Msg("failed to create payment method")
		return translateError("failed to create payment method", err)
	}
	return nil
}

func (r *paymentRepository) Update(ctx context.Context, id int64, changes map[string]any) (*model.PaymentMethod, error) {
	query, args, err := buildUpdate("payment_methods", "payment_method_id", id, changes, paymentColumns)
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, translateError("failed to update payment method", err)
	}

	pm, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.PaymentMethod])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, translateError("failed to update payment method", err)
	}
	return pm, nil
}

func (r *paymentRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM payment_methods WHERE payment_method_id = $1`, id)
	if err != nil {
		return translateError("failed to delete payment method", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

// SetDefault clears the customer's other defaults and marks id as default.
func (r *paymentRepository) SetDefault(ctx context.Context, id int64) (pm *model.PaymentMethod, err error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				r.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	var customerID int64
	err = tx.QueryRow(ctx, `SELECT customer_id FROM payment_methods WHERE payment_method_id = $1 FOR UPDATE`, id).
		Scan(&customerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock payment method: %w", err)
	}

	if _, err = tx.Exec(ctx, `UPDATE payment_methods SET is_default = FALSE WHERE customer_id = $1`, customerID); err != nil {
		return nil, fmt.Errorf("failed to clear default payment method: %w", err)
	}

	rows, err := tx.Query(ctx,
		`UPDATE payment_methods SET is_default = TRUE WHERE payment_method_id = $1 RETURNING `+paymentColumns, id)
	if err != nil {
		return nil, fmt.Errorf("failed to set default payment method: %w", err)
	}
	pm, err = pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.PaymentMethod])
	if err != nil {
		return nil, fmt.Errorf("failed to set default payment method: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	r.logger.Info().
		Int64("payment_method_id", id).
		Int64("customer_id", customerID).
		Msg("default payment method changed")

	return pm, nil
}
