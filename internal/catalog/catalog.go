// Package catalog imports supplier part feeds into the parts table.
//
// A feed is a gzipped CSV file with the columns
//
//	part_number,name,manufacturer,category,price[,description]
//
// and an optional header row. Malformed rows are skipped and counted.
package catalog

import (
	"context"

	"partshop/internal/model"
)

// Feed is the parsed content of one catalog file.
type Feed struct {
	Source  string
	Parts   []model.Part
	Skipped int
}

// Loader reads a catalog feed.
type Loader interface {
	// Load reads the gzipped feed at path.
	Load(ctx context.Context, path string) (*Feed, error)
}

// Store persists imported parts.
type Store interface {
	// UpsertByPartNumber inserts or updates parts and returns the rows written.
	UpsertByPartNumber(ctx context.Context, parts []model.Part) (int, error)
}
