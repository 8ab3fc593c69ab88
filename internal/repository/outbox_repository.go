package repository

import (
	"context"
	"fmt"
	"time"

	"partshop/internal/model"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const (
	defaultOutboxMaxRetries = 5
	outboxClaimLease        = 5 * time.Minute
)

type outboxRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOutboxRepository creates a new PostgreSQL-backed outbox repository.
func NewOutboxRepository(pool *pgxpool.Pool, logger zerolog.Logger) OutboxRepository {
	return &outboxRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "outbox").Logger(),
	}
}

// Insert adds a message to the outbox within tx.
func (r *outboxRepository) Insert(ctx context.Context, tx pgx.Tx, msg model.OutboxMessage) error {
	maxRetries := msg.MaxRetries
	if maxRetries == 0 {
		maxRetries = defaultOutboxMaxRetries
	}

	query, args, err := psql.Insert("outbox_messages").
		Columns("routing_key", "payload", "max_retries").
		Values(msg.RoutingKey, string(msg.Payload), maxRetries).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		r.logger.Error().Err(err).Str("routing_key", msg.RoutingKey).Msg("failed to insert outbox message")
		return translateError("failed to insert outbox message", err)
	}

	return nil
}

// GetPending claims up to limit messages that are due and have retries left.
// Claimed rows are skipped by other workers until outboxClaimLease runs out,
// after which an undelivered message is claimed again.
func (r *outboxRepository) GetPending(ctx context.Context, limit int) ([]model.OutboxMessage, error) {
	query := `
		WITH due AS (
			SELECT id
			FROM outbox_messages
			WHERE next_retry_at <= NOW() AND retry_count < max_retries
			ORDER BY next_retry_at ASC, id ASC
			LIMIT $1
			FOR UPDATE SKIP LOCKED
		)
		UPDATE outbox_messages o
		SET next_retry_at = NOW() + make_interval(secs => $2::float8)
		FROM due
		WHERE o.id = due.id
		RETURNING o.id, o.routing_key, o.payload, o.retry_count, o.max_retries,
			o.last_error, o.created_at, o.next_retry_at`

	rows, err := r.pool.Query(ctx, query, limit, outboxClaimLease.Seconds())
	if err != nil {
		return nil, fmt.Errorf("failed to claim outbox messages: %w", err)
	}
	defer rows.Close()

	var messages []model.OutboxMessage
	for rows.Next() {
		var msg model.OutboxMessage
		err := rows.Scan(
			&msg.ID,
			&msg.RoutingKey,
			&msg.Payload,
			&msg.RetryCount,
			&msg.MaxRetries,
			&msg.LastError,
			&msg.CreatedAt,
			&msg.NextRetryAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan outbox message: %w", err)
		}
		messages = append(messages, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating outbox messages: %w", err)
	}

	return messages, nil
}

// Delete removes a message after successful delivery.
func (r *outboxRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := psql.Delete("outbox_messages").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete outbox message: %w", err)
	}

	return nil
}

// UpdateRetry records a failed delivery attempt.
func (r *outboxRepository) UpdateRetry(ctx context.Context, id int64, retryCount int, lastError string, nextRetryAt time.Time) error {
	query, args, err := psql.Update("outbox_messages").
		Set("retry_count", retryCount).
		Set("last_error", lastError).
		Set("next_retry_at", nextRetryAt).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update outbox message: %w", err)
	}

	return nil
}
