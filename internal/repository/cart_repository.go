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

const cartItemColumns = `cart_item_id, customer_id, part_id, quantity, added_at`

type cartRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCartRepository creates a new PostgreSQL-backed cart repository.
func NewCartRepository(pool *pgxpool.Pool, logger zerolog.Logger) CartRepository {
	return &cartRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "cart").Logger(),
	}
}

func (r *cartRepository) ListByCustomer(ctx context.Context, customerID int64) ([]model.CartLine, error) {
	query := `
		SELECT ci.cart_item_id, ci.quantity, ci.added_at,
			p.part_id, p.part_number, p.name, p.price, p.status
		FROM cart_items ci
		JOIN parts p ON ci.part_id = p.part_id
		WHERE ci.customer_id = $1
		ORDER BY ci.added_at, ci.cart_item_id
	`

	rows, err := r.pool.Query(ctx, query, customerID)
	if err != nil {
		r.logger.Error().Err(err).Int64("customer_id", customerID).Msg("failed to query cart")
		return nil, fmt.Errorf("failed to query cart: %w", err)
	}
	defer rows.Close()

	lines := []model.CartLine{}
	for rows.Next() {
		var l model.CartLine
		err := rows.Scan(&l.CartItemID, &l.Quantity, &l.AddedAt,
			&l.PartID, &l.PartNumber, &l.Name, &l.Price, &l.Status)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart line: %w", err)
		}
		lines = append(lines, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cart lines: %w", err)
	}

	return lines, nil
}

// Add upserts the (customer, part) row. xmax is zero only for a freshly
// inserted tuple.
func (r *cartRepository) Add(ctx context.Context, customerID, partID int64, quantity int) (*model.CartItem, bool, error) {
	query := `
		INSERT INTO cart_items (customer_id, part_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (customer_id, part_id) DO UPDATE
			SET quantity = cart_items.quantity + EXCLUDED.quantity
		RETURNING ` + cartItemColumns + `, (xmax = 0) AS inserted
	`

	var item model.CartItem
	var inserted bool
	err := r.pool.QueryRow(ctx, query, customerID, partID, quantity).Scan(
		&item.ID, &item.CustomerID, &item.PartID, &item.Quantity, &item.AddedAt, &inserted)
	if err != nil {
		r.logger.Error().Err(err).
			Int64("customer_id", customerID).
			Int64("part_id", partID).
			Msg("failed to add cart item")
		return nil, false, translateError("failed to add cart item", err)
	}

	return &item, inserted, nil
}

func (r *cartRepository) GetItem(ctx context.Context, cartItemID int64) (*model.CartItem, error) {
	query := `SELECT ` + cartItemColumns + ` FROM cart_items WHERE cart_item_id = $1`

	item, err := scanCartItem(r.pool.QueryRow(ctx, query, cartItemID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query cart item: %w", err)
	}
	return item, nil
}

func (r *cartRepository) UpdateQuantity(ctx context.Context, cartItemID int64, quantity int) (*model.CartItem, error) {
	query := `UPDATE cart_items SET quantity = $1 WHERE cart_item_id = $2 RETURNING ` + cartItemColumns

	item, err := scanCartItem(r.pool.QueryRow(ctx, query, quantity, cartItemID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		r.logger.Error().Err(err).Int64("cart_item_id", cartItemID).Msg("failed to update cart item")
		return nil, translateError("failed to update cart item", err)
	}
	return item, nil
}

func (r *cartRepository) DeleteItem(ctx context.Context, cartItemID int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE cart_item_id = $1`, cartItemID)
	if err != nil {
		return fmt.Errorf("failed to delete cart item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *cartRepository) Clear(ctx context.Context, customerID int64) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE customer_id = $1`, customerID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

func (r *cartRepository) ClearTx(ctx context.Context, tx pgx.Tx, customerID int64) error {
	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE customer_id = $1`, customerID); err != nil {
		return translateError("failed to clear cart", err)
	}
	return nil
}

func scanCartItem(row pgx.Row) (*model.CartItem, error) {
	var item model.CartItem
	if err := row.Scan(&item.ID, &item.CustomerID, &item.PartID, &item.Quantity, &item.AddedAt); err != nil {
		return nil, err
	}
	return &item, nil
}
