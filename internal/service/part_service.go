package service

import (
	"context"
	"fmt"
	"strings"

	"partshop/internal/model"
	"partshop/internal/repository"

	"github.com/rs/zerolog"
)

const (
	defaultPartLimit = 50
	maxPartLimit     = 100
	searchLimit      = 100
)

// partService implements PartService.
type partService struct {
	partRepo repository.PartRepository
	cache    PartCache
	logger   zerolog.Logger
}

// NewPartService creates a new part service. cache may be nil.
func NewPartService(partRepo repository.PartRepository, cache PartCache, logger zerolog.Logger) PartService {
	return &partService{
		partRepo: partRepo,
		cache:    cache,
		logger:   logger.With().Str("service", "part").Logger(),
	}
}

// List retrieves parts newest first.
func (s *partService) List(ctx context.Context, limit, offset int) ([]model.Part, error) {
	if limit <= 0 {
		limit = defaultPartLimit
	}
	if limit > maxPartLimit {
		limit = maxPartLimit
	}
	if offset < 0 {
		offset = 0
	}

	parts, err := s.partRepo.List(ctx, limit, offset)
	if err != nil {
		s.logger.Error().Ctx(ctx).Err(err).Msg("failed to list parts")
		return nil, fmt.Errorf("failed to list parts: %w", err)
	}
	return parts, nil
}

// Search matches query against part name, number and description.
func (s *partService) Search(ctx context.Context, query string) ([]model.Part, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, model.NewValidationError("search query is required")
	}

	parts, err := s.partRepo.Search(ctx, query, searchLimit)
	if err != nil {
		s.logger.Error().Ctx(ctx).Err(err).Str("query", query).Msg("failed to search parts")
		return nil, fmt.Errorf("failed to search parts: %w", err)
	}
	return parts, nil
}

// GetByID retrieves a part, consulting the cache first.
func (s *partService) GetByID(ctx context.Context, id int64) (*model.Part, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		if err != nil {
			s.logger.Warn().Ctx(ctx).Err(err).Int64("part_id", id).Msg("part cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	part, err := s.partRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get part: %w", err)
	}
	if part == nil {
		return nil, model.ErrNotFound
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, part); err != nil {
			s.logger.Warn().Ctx(ctx).Err(err).Int64("part_id", id).Msg("part cache write failed")
		}
	}
	return part, nil
}

// Create adds a part to the catalogue.
func (s *partService) Create(ctx context.Context, req *model.CreatePartRequest) (*model.Part, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	part := &model.Part{
		PartNumber:   req.PartNumber,
		Name:         req.Name,
		Description:  req.Description,
		Manufacturer: req.Manufacturer,
		Category:     req.Category,
		Price:        req.Price,
		Status:       model.PartStatusAvailable,
	}
	if req.Status != nil && *req.Status != "" {
		part.Status = *req.Status
	}

	if err := s.partRepo.Create(ctx, part); err != nil {
		return nil, fmt.Errorf("failed to create part: %w", err)
	}

	s.logger.Info().Ctx(ctx).Int64("part_id", part.ID).Str("part_number", part.PartNumber).Msg("part created")
	return part, nil
}

// Update applies a partial update and drops the cached copy.
func (s *partService) Update(ctx context.Context, id int64, upd *model.PartUpdate) (*model.Part, error) {
	if upd.Price != nil && upd.Price.IsNegative() {
		return nil, model.ErrInvalidPrice
	}

	part, err := s.partRepo.Update(ctx, id, upd.Changes())
	if err != nil {
		return nil, fmt.Errorf("failed to update part: %w", err)
	}
	s.invalidate(ctx, id)
	return part, nil
}

// Delete removes a part and drops the cached copy.
func (s *partService) Delete(ctx context.Context, id int64) error {
	if err := s.partRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete part: %w", err)
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *partService) invalidate(ctx context.Context, id int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.Warn().Ctx(ctx).Err(err).Int64("part_id", id).Msg("part cache invalidation failed")
	}
}
