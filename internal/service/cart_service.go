package service

import (
	"context"
	"fmt"

	"partshop/internal/model"
	"partshop/internal/repository"

	"github.com/rs/zerolog"
)

// cartService implements CartService.
type cartService struct {
	cartRepo repository.CartRepository
	logger   zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(cartRepo repository.CartRepository, logger zerolog.Logger) CartService {
	return &cartService{
		cartRepo: cartRepo,
		logger:   logger.With().Str("service", "cart").Logger(),
	}
}

func (s *cartService) Get(ctx context.Context, customerID int64) ([]model.CartLine, error) {
	lines, err := s.cartRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	return lines, nil
}

// Add puts a part in the cart, or increases the quantity already there.
func (s *cartService) Add(ctx context.Context, p model.Principal, req *model.AddToCartRequest) (*model.CartItem, bool, error) {
	if !p.IsStaff() {
		req.CustomerID = p.ID
	}
	if req.CustomerID <= 0 || req.PartID <= 0 {
		return nil, false, model.NewValidationError("customerId and partId are required")
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < 0 {
		return nil, false, model.ErrInvalidQuantity
	}

	item, inserted, err := s.cartRepo.Add(ctx, req.CustomerID, req.PartID, req.Quantity)
	if err != nil {
		return nil, false, fmt.Errorf("failed to add to cart: %w", err)
	}

	s.logger.Debug().
		Ctx(ctx).
		Int64("customer_id", req.CustomerID).
		Int64("part_id", req.PartID).
		Bool("inserted", inserted).
		Msg("cart updated")
	return item, inserted, nil
}

func (s *cartService) UpdateQuantity(ctx context.Context, p model.Principal, cartItemID int64, quantity int) (*model.CartItem, error) {
	if quantity <= 0 {
		return nil, model.ErrInvalidQuantity
	}
	if err := s.checkOwner(ctx, p, cartItemID); err != nil {
		return nil, err
	}

	item, err := s.cartRepo.UpdateQuantity(ctx, cartItemID, quantity)
	if err != nil {
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}
	return item, nil
}

func (s *cartService) DeleteItem(ctx context.Context, p model.Principal, cartItemID int64) error {
	if err := s.checkOwner(ctx, p, cartItemID); err != nil {
		return err
	}
	if err := s.cartRepo.DeleteItem(ctx, cartItemID); err != nil {
		return fmt.Errorf("failed to delete cart item: %w", err)
	}
	return nil
}

func (s *cartService) Clear(ctx context.Context, customerID int64) error {
	if err := s.cartRepo.Clear(ctx, customerID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

func (s *cartService) checkOwner(ctx context.Context, p model.Principal, cartItemID int64) error {
	item, err := s.cartRepo.GetItem(ctx, cartItemID)
	if err != nil {
		return fmt.Errorf("failed to get cart item: %w", err)
	}
	if item == nil {
		return model.ErrNotFound
	}
	return authorize(p, item.CustomerID)
}
