package repository

import (
	"context"
	"errors"
	"fmt"

	"partshop/internal/model"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const orderColumns = `order_id, customer_id, payment_method_id, employee_id, total_amount,
	status, idempotency_key, order_date, completed_date`

// orderRepository implements the OrderRepository interface using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *orderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, translateError("failed to begin transaction", err)
	}
	return tx, nil
}

// CreateOrder inserts a new order within the provided transaction.
func (r *orderRepository) CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) (bool, error) {
	query := `
		INSERT INTO orders (customer_id, payment_method_id, employee_id, total_amount, status, idempotency_key)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (idempotency_key) DO NOTHING
		RETURNING order_id, order_date
	`

	err := tx.QueryRow(ctx, query,
		order.CustomerID,
		order.PaymentMethodID,
		order.EmployeeID,
		order.TotalAmount,
		order.Status,
		order.IdempotencyKey,
	).Scan(&order.ID, &order.OrderDate)
	if errors.Is(err, pgx.ErrNoRows) {
		r.logger.Debug().
			Stringer("idempotency_key", order.IdempotencyKey).
			Msg("order with idempotency key already exists")
		return false, nil
	}
	if err != nil {
		r.logger.Error().
			Err(err).
			Int64("customer_id", order.CustomerID).
			Msg("failed to create order")
		return false, translateError("failed to create order", err)
	}

	r.logger.Debug().
		Int64("order_id", order.ID).
		Msg("order created successfully")

	return true, nil
}

// CreateOrderItems inserts multiple order items within the provided transaction.
func (r *orderRepository) CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	query := `
		INSERT INTO order_items (order_id, part_id, quantity, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING order_item_id
	`

	batch := &pgx.Batch{}
	for _, item := range items {
		batch.Queue(query, item.OrderID, item.PartID, item.Quantity, item.UnitPrice, item.Subtotal)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := range items {
		if err := results.QueryRow().Scan(&items[i].ID); err != nil {
			r.logger.Error().
				Err(err).
				Int64("order_id", items[i].OrderID).
				Int64("part_id", items[i].PartID).
				Msg("failed to create order item")
			return translateError("failed to create order item", err)
		}
	}

	r.logger.Debug().
		Int("count", len(items)).
		Msg("order items created successfully")

	return nil
}

// GetByID retrieves an order by its ID along with its items.
func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE order_id = $1`
	return r.getOne(ctx, query, id)
}

// GetByIdempotencyKey retrieves the order placed with key.
func (r *orderRepository) GetByIdempotencyKey(ctx context.Context, key uuid.UUID) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE idempotency_key = $1`
	return r.getOne(ctx, query, key)
}

func (r *orderRepository) getOne(ctx context.Context, query string, arg any) (*model.Order, error) {
	order, err := scanOrder(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Interface("key", arg).Msg("order not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Interface("key", arg).Msg("failed to query order")
		return nil, translateError("failed to query order", err)
	}

	items, err := r.getItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return order, nil
}

func (r *orderRepository) getItems(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	query := `
		SELECT order_item_id, order_id, part_id, quantity, unit_price, subtotal
		FROM order_items
		WHERE order_id = $1
		ORDER BY order_item_id
	`

	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		r.logger.Error().
			Err(err).
			Int64("order_id", orderID).
			Msg("failed to query order items")
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	items := []model.OrderItem{}
	for rows.Next() {
		var item model.OrderItem
		err := rows.Scan(&item.ID, &item.OrderID, &item.PartID, &item.Quantity, &item.UnitPrice, &item.Subtotal)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order item row")
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order item rows")
		return nil, fmt.Errorf("error iterating order items: %w", err)
	}

	return items, nil
}

// List retrieves orders matching filter, newest first.
func (r *orderRepository) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	builder := psql.Select(orderColumns).
		From("orders").
		OrderBy("order_date DESC", "order_id DESC")

	if filter.CustomerID != nil {
		builder = builder.Where(sq.Eq{"customer_id": *filter.CustomerID})
	}
	if filter.Status != nil {
		builder = builder.Where(sq.Eq{"status": *filter.Status})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		builder = builder.Offset(uint64(filter.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build order query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query orders")
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := []model.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order row")
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *order)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order rows")
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, nil
}

// UpdateStatus moves an order from one status to another. Entering
// completed stamps completed_date.
func (r *orderRepository) UpdateStatus(ctx context.Context, id int64, from, to model.OrderStatus) (*model.Order, error) {
	query := `
		UPDATE orders
		SET status = $1,
			completed_date = CASE WHEN $1 = 'completed' THEN NOW() ELSE completed_date END
		WHERE order_id = $2 AND status = $3
		RETURNING ` + orderColumns

	order, err := scanOrder(r.pool.QueryRow(ctx, query, to, id, from))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Warn().
				Int64("order_id", id).
				Str("from", string(from)).
				Msg("order status changed concurrently")
			return nil, model.ErrInvalidStatusTransition
		}
		r.logger.Error().Err(err).Int64("order_id", id).Msg("failed to update order status")
		return nil, translateError("failed to update order status", err)
	}

	items, err := r.getItems(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Items = items

	r.logger.Info().
		Int64("order_id", id).
		Str("status", string(to)).
		Msg("order status updated")

	return order, nil
}

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(
		&o.ID,
		&o.CustomerID,
		&o.PaymentMethodID,
		&o.EmployeeID,
		&o.TotalAmount,
		&o.Status,
		&o.IdempotencyKey,
		&o.OrderDate,
		&o.CompletedDate,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
