package catalog

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

// fileLoader implements Loader for gzipped feeds on the local file system.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based catalog loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "catalog-loader").Logger(),
	}
}

// Load reads a gzipped catalog feed from filePath.
func (l *fileLoader) Load(ctx context.Context, filePath string) (*Feed, error) {
	l.logger.Info().Str("file", filePath).Msg("loading catalog feed")

	file, err := os.Open(filePath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to open catalog feed")
		return nil, fmt.Errorf("failed to open catalog feed %s: %w", filePath, err)
	}
	defer file.Close()

	feed, err := readFeed(ctx, file, filePath, l.logger)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to read catalog feed")
		return nil, err
	}

	l.logger.Info().
		Str("file", filePath).
		Int("parts_loaded", len(feed.Parts)).
		Int("rows_skipped", feed.Skipped).
		Msg("catalog feed loaded")

	return feed, nil
}
