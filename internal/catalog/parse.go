package catalog

import (
	"compress/gzip"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"partshop/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const (
	minColumns = 5
	maxColumns = 6

	// cancelCheckEvery is how many rows are read between context checks.
	cancelCheckEvery = 10_000
)

// readFeed decompresses r and parses its CSV rows.
func readFeed(ctx context.Context, r io.Reader, source string, logger zerolog.Logger) (*Feed, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader for %s: %w", source, err)
	}
	defer gz.Close()

	cr := csv.NewReader(gz)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	feed := &Feed{Source: source}
	for line := 1; ; line++ {
		if line%cancelCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				logger.Warn().Str("source", source).Msg("catalog loading cancelled")
				return nil, err
			}
		}

		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			feed.Skipped++
			logger.Debug().Err(err).Str("source", source).Int("line", line).Msg("skipping unparseable row")
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("error reading catalog feed %s: %w", source, err)
		}

		if line == 1 && isHeader(record) {
			continue
		}
		if blank(record) {
			continue
		}

		part, err := parseRow(record)
		if err != nil {
			feed.Skipped++
			logger.Debug().Err(err).Str("source", source).Int("line", line).Msg("skipping malformed row")
			continue
		}
		feed.Parts = append(feed.Parts, part)
	}

	return feed, nil
}

func isHeader(record []string) bool {
	return len(record) > 0 && strings.EqualFold(strings.TrimSpace(record[0]), "part_number")
}

func blank(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}

// parseRow converts one CSV record into a part.
func parseRow(record []string) (model.Part, error) {
	if len(record) < minColumns || len(record) > maxColumns {
		return model.Part{}, fmt.Errorf("expected %d or %d columns, got %d", minColumns, maxColumns, len(record))
	}

	partNumber := strings.TrimSpace(record[0])
	name := strings.TrimSpace(record[1])
	if partNumber == "" || name == "" {
		return model.Part{}, errors.New("part_number and name are required")
	}

	price, err := decimal.NewFromString(strings.TrimSpace(record[4]))
	if err != nil {
		return model.Part{}, fmt.Errorf("invalid price %q: %w", record[4], err)
	}
	if price.IsNegative() {
		return model.Part{}, fmt.Errorf("negative price %s", price)
	}

	part := model.Part{
		PartNumber:   partNumber,
		Name:         name,
		Manufacturer: optional(record[2]),
		Category:     optional(record[3]),
		Price:        price.Round(2),
		Status:       model.PartStatusAvailable,
	}
	if len(record) == maxColumns {
		part.Description = optional(record[5])
	}
	return part, nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
