package repository

import (
	"context"
	"errors"
	"fmt"

	"partshop/internal/model"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL SQLSTATE codes the repositories translate into domain errors.
const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
	pgCheckViolation      = "23514"
	pgNumericOutOfRange   = "22003"
)

// translateError wraps err with the domain error its SQLSTATE maps to.
// Errors without a mapping are wrapped with op only.
func translateError(op string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w: %w", op, model.ErrOrderTimeout, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgForeignKeyViolation:
			return fmt.Errorf("%s: %w (%s)", op, model.ErrUnknownReference, pgErr.ConstraintName)
		case pgUniqueViolation:
			return fmt.Errorf("%s: %w (%s)", op, model.ErrDuplicate, pgErr.ConstraintName)
		case pgCheckViolation:
			return fmt.Errorf("%s: %w", op, model.NewValidationError("value violates constraint "+pgErr.ConstraintName))
		case pgNumericOutOfRange:
			return fmt.Errorf("%s: %w", op, model.NewValidationError("numeric value out of range"))
		}
	}

	return fmt.Errorf("%s: %w", op, err)
}
