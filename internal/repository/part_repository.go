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

const partColumns = `part_id, part_number, name, description, manufacturer, category, price, status, created_at`

// partRepository implements the PartRepository interface using PostgreSQL.
type partRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPartRepository creates a new PostgreSQL-backed part repository.
func NewPartRepository(pool *pgxpool.Pool, logger zerolog.Logger) PartRepository {
	return &partRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "part").Logger(),
	}
}

// List retrieves parts newest first with pagination support.
func (r *partRepository) List(ctx context.Context, limit, offset int) ([]model.Part, error) {
	query := `SELECT ` + partColumns + `
		FROM parts
		ORDER BY created_at DESC, part_id DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to query parts")
		return nil, fmt.Errorf("failed to query parts: %w", err)
	}
	return r.collect(rows)
}

// Search matches query against name, part number and description.
func (r *partRepository) Search(ctx context.Context, query string, limit int) ([]model.Part, error) {
	sql := `SELECT ` + partColumns + `
		FROM parts
		WHERE name ILIKE $1 OR part_number ILIKE $1 OR description ILIKE $1
		ORDER BY name
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, sql, "%"+query+"%", limit)
	if err != nil {
		r.logger.Error().Err(err).Str("query", query).Msg("failed to search parts")
		return nil, fmt.Errorf("failed to search parts: %w", err)
	}
	return r.collect(rows)
}

func (r *partRepository) collect(rows pgx.Rows) ([]model.Part, error) {
	defer rows.Close()

	parts := []model.Part{}
	for rows.Next() {
		p, err := scanPart(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan part row")
			return nil, fmt.Errorf("failed to scan part: %w", err)
		}
		parts = append(parts, *p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating part rows")
		return nil, fmt.Errorf("error iterating parts: %w", err)
	}

	return parts, nil
}

// GetByID retrieves a single part by its ID.
func (r *partRepository) GetByID(ctx context.Context, id int64) (*model.Part, error) {
	query := `SELECT ` + partColumns + ` FROM parts WHERE part_id = $1`

	p, err := scanPart(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int64("part_id", id).Msg("part not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("part_id", id).Msg("failed to query part")
		return nil, fmt.Errorf("failed to query part: %w", err)
	}

	return p, nil
}

// Create inserts a part and fills in its generated columns.
func (r *partRepository) Create(ctx context.Context, part *model.Part) error {
	query := `
		INSERT INTO parts (part_number, name, description, manufacturer, category, price, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING part_id, created_at
	`

	err := r.pool.QueryRow(ctx, query,
		part.PartNumber,
		part.Name,
		part.Description,
		part.Manufacturer,
		part.Category,
		part.Price,
		part.Status,
	).Scan(&part.ID, &part.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("part_number", part.PartNumber).Msg("failed to create part")
		return translateError("failed to create part", err)
	}

	return nil
}

// Update applies changes to a part.
func (r *partRepository) Update(ctx context.Context, id int64, changes map[string]any) (*model.Part, error) {
	query, args, err := buildUpdate("parts", "part_id", id, changes, partColumns)
	if err != nil {
		return nil, err
	}

	p, err := scanPart(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		r.logger.Error().Err(err).Int64("part_id", id).Msg("failed to update part")
		return nil, translateError("failed to update part", err)
	}

	return p, nil
}

// Delete removes a part.
func (r *partRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM parts WHERE part_id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("part_id", id).Msg("failed to delete part")
		return translateError("failed to delete part", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

// UpsertByPartNumber writes parts in one batch keyed by part number.
func (r *partRepository) UpsertByPartNumber(ctx context.Context, parts []model.Part) (int, error) {
	if len(parts) == 0 {
		return 0, nil
	}

	query := `
		INSERT INTO parts (part_number, name, description, manufacturer, category, price, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (part_number) DO UPDATE SET
			name = EXCLUDED.name,
			description = COALESCE(EXCLUDED.description, parts.description),
			manufacturer = EXCLUDED.manufacturer,
			category = EXCLUDED.category,
			price = EXCLUDED.price
	`

	batch := &pgx.Batch{}
	for _, p := range parts {
		status := p.Status
		if status == "" {
			status = model.PartStatusAvailable
		}
		batch.Queue(query, p.PartNumber, p.Name, p.Description, p.Manufacturer, p.Category, p.Price, status)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	written := 0
	for _, p := range parts {
		tag, err := results.Exec()
		if err != nil {
			r.logger.Error().Err(err).Str("part_number", p.PartNumber).Msg("failed to upsert part")
			return written, translateError("failed to upsert part", err)
		}
		written += int(tag.RowsAffected())
	}

	return written, nil
}

func scanPart(row pgx.Row) (*model.Part, error) {
	var p model.Part
	err := row.Scan(
		&p.ID,
		&p.PartNumber,
		&p.Name,
		&p.Description,
		&p.Manufacturer,
		&p.Category,
		&p.Price,
		&p.Status,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
