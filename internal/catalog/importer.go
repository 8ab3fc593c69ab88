package catalog

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const defaultConcurrency = 3

// Result summarises an import run.
type Result struct {
	Feeds   int
	Parts   int
	Written int
	Skipped int
}

// Importer loads feeds concurrently and upserts their parts.
type Importer struct {
	loader      Loader
	store       Store
	concurrency int
	logger      zerolog.Logger
}

// NewImporter creates an importer reading through loader into store.
func NewImporter(loader Loader, store Store, logger zerolog.Logger) *Importer {
	return &Importer{
		loader:      loader,
		store:       store,
		concurrency: defaultConcurrency,
		logger:      logger.With().Str("component", "catalog-importer").Logger(),
	}
}

// Import loads every feed in paths and upserts the parts. The first failing
// feed cancels the rest and its error is returned.
func (im *Importer) Import(ctx context.Context, paths []string) (Result, error) {
	results := make([]Result, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(im.concurrency)

	for i, path := range paths {
		g.Go(func() error {
			feed, err := im.loader.Load(gctx, path)
			if err != nil {
				return fmt.Errorf("failed to load catalog feed %s: %w", path, err)
			}

			written, err := im.store.UpsertByPartNumber(gctx, feed.Parts)
			if err != nil {
				return fmt.Errorf("failed to import catalog feed %s: %w", path, err)
			}

			results[i] = Result{Feeds: 1, Parts: len(feed.Parts), Written: written, Skipped: feed.Skipped}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		im.logger.Error().Err(err).Msg("catalog import failed")
		return Result{}, err
	}

	var total Result
	for _, r := range results {
		total.Feeds += r.Feeds
		total.Parts += r.Parts
		total.Written += r.Written
		total.Skipped += r.Skipped
	}

	im.logger.Info().
		Int("feeds", total.Feeds).
		Int("parts", total.Parts).
		Int("written", total.Written).
		Int("skipped", total.Skipped).
		Msg("catalog import completed")

	return total, nil
}
