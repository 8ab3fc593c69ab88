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

const storeColumns = `store_id, store_name, address, phone, email, created_at`

type storeRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewStoreRepository creates a new PostgreSQL-backed store repository.
func NewStoreRepository(pool *pgxpool.Pool, logger zerolog.Logger) StoreRepository {
	return &storeRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "store").Logger(),
	}
}

func (r *storeRepository) List(ctx context.Context) ([]model.Store, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+storeColumns+` FROM stores ORDER BY store_id`)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query stores")
		return nil, fmt.Errorf("failed to query stores: %w", err)
	}

	stores, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Store])
	if err != nil {
		return nil, fmt.Errorf("failed to collect stores: %w", err)
	}
	return stores, nil
}

func (r *storeRepository) GetByID(ctx context.Context, id int64) (*model.Store, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+storeColumns+` FROM stores WHERE store_id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query store: %w", err)
	}

	store, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.Store])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to collect store: %w", err)
	}
	return store, nil
}

func (r *storeRepository) Create(ctx context.Context, s *model.Store) error {
	query := `
		INSERT INTO stores (store_name, address, phone, email)
		VALUES ($1, $2, $3, $4)
		RETURNING store_id, created_at
	`

	if err := r.pool.QueryRow(ctx, query, s.StoreName, s.Address, s.Phone, s.Email).Scan(&s.ID, &s.CreatedAt); err != nil {
		r.logger.Error().Err(err).Msg("failed to create store")
		return translateError("failed to create store", err)
	}
	return nil
}

func (r *storeRepository) Update(ctx context.Context, id int64, changes map[string]any) (*model.Store, error) {
	query, args, err := buildUpdate("stores", "store_id", id, changes, storeColumns)
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, translateError("failed to update store", err)
	}

	store, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.Store])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		r.logger.Error().Err(err).Int64("store_id", id).Msg("failed to update store")
		return nil, translateError("failed to update store", err)
	}
	return store, nil
}
