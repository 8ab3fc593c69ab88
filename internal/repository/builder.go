package repository

import (
	"fmt"

	"partshop/internal/model"

	sq "github.com/Masterminds/squirrel"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// buildUpdate returns an UPDATE of the given columns on the row identified by
// idColumn = id, returning the listed columns.
func buildUpdate(table, idColumn string, id int64, changes map[string]any, returning string) (string, []any, error) {
	if len(changes) == 0 {
		return "", nil, model.ErrNoFieldsToUpdate
	}

	query, args, err := psql.Update(table).
		SetMap(changes).
		Where(sq.Eq{idColumn: id}).
		Suffix("RETURNING " + returning).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("failed to build update query: %w", err)
	}

	return query, args, nil
}
