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

type inventoryRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewInventoryRepository creates a new PostgreSQL-backed inventory repository.
func NewInventoryRepository(pool *pgxpool.Pool, logger zerolog.Logger) InventoryRepository {
	return &inventoryRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "inventory").Logger(),
	}
}

const inventoryByStoreQuery = `
	SELECT i.inventory_id, i.store_id, i.part_id, i.quantity, i.reorder_level, i.last_updated,
		p.name, p.part_number
	FROM inventory i
	JOIN parts p ON i.part_id = p.part_id
	WHERE i.store_id = $1
`

func (r *inventoryRepository) ListByStore(ctx context.Context, storeID int64) ([]model.InventoryItem, error) {
	return r.list(ctx, inventoryByStoreQuery+` ORDER BY p.name`, storeID)
}

// ListLowStock returns rows at or below their reorder level, which
// defaults to model.DefaultReorderLevel.
func (r *inventoryRepository) ListLowStock(ctx context.Context, storeID int64) ([]model.InventoryItem, error) {
	query := inventoryByStoreQuery + ` AND i.quantity <= COALESCE(i.reorder_level, $2) ORDER BY i.quantity, p.name`
	return r.list(ctx, query, storeID, model.DefaultReorderLevel)
}

func (r *inventoryRepository) list(ctx context.Context, query string, args ...any) ([]model.InventoryItem, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query inventory")
		return nil, fmt.Errorf("failed to query inventory: %w", err)
	}
	defer rows.Close()

	items := []model.InventoryItem{}
	for rows.Next() {
		var it model.InventoryItem
		err := rows.Scan(&it.ID, &it.StoreID, &it.PartID, &it.Quantity, &it.ReorderLevel, &it.LastUpdated,
			&it.PartName, &it.PartNumber)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inventory row: %w", err)
		}
		items = append(items, it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating inventory: %w", err)
	}

	return items, nil
}

func (r *inventoryRepository) UpdateQuantity(ctx context.Context, inventoryID int64, quantity int) (*model.InventoryItem, error) {
	query := `
		UPDATE inventory
		SET quantity = $1, last_updated = NOW()
		WHERE inventory_id = $2
		RETURNING inventory_id, store_id, part_id, quantity, reorder_level, last_updated
	`

	var it model.InventoryItem
	err := r.pool.QueryRow(ctx, query, quantity, inventoryID).
		Scan(&it.ID, &it.StoreID, &it.PartID, &it.Quantity, &it.ReorderLevel, &it.LastUpdated)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		r.logger.Error().Err(err).Int64("inventory_id", inventoryID).Msg("failed to update inventory")
		return nil, translateError("failed to update inventory", err)
	}

	r.logger.Info().
		Int64("inventory_id", inventoryID).
		Int("quantity", quantity).
		Msg("inventory updated")

	return &it, nil
}
