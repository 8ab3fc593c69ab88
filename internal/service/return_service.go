package service

import (
	"context"
	"fmt"

	"partshop/internal/model"
	"partshop/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var returnStatuses = map[string]bool{
	model.ReturnStatusPending: true,
	"approved":                true,
	"rejected":                true,
	"processed":               true,
	"completed":               true,
}

type returnService struct {
	returnRepo repository.ReturnRepository
	orderRepo  repository.OrderRepository
	logger     zerolog.Logger
}

// NewReturnService creates a new return service.
func NewReturnService(returnRepo repository.ReturnRepository, orderRepo repository.OrderRepository, logger zerolog.Logger) ReturnService {
	return &returnService{
		returnRepo: returnRepo,
		orderRepo:  orderRepo,
		logger:     logger.With().Str("service", "return").Logger(),
	}
}

// Create files a return against one item of an order the caller owns.
// Without a refund amount the item's unit price times quantity is refunded.
func (s *returnService) Create(ctx context.Context, p model.Principal, req *model.CreateReturnRequest) (*model.Return, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	order, err := s.orderRepo.GetByID(ctx, req.OrderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, model.ErrNotFound
	}
	if err := authorize(p, order.CustomerID); err != nil {
		return nil, err
	}

	var item *model.OrderItem
	for i := range order.Items {
		if order.Items[i].ID == req.OrderItemID {
			item = &order.Items[i]
			break
		}
	}
	if item == nil {
		return nil, model.NewValidationError("order_item_id does not belong to the order")
	}
	if req.Quantity > item.Quantity {
		return nil, model.NewValidationError("return quantity exceeds the ordered quantity")
	}

	refund := req.RefundAmount
	if refund.IsZero() {
		refund = item.UnitPrice.Mul(decimal.NewFromInt(int64(req.Quantity)))
	}

	ret := &model.Return{
		OrderID:      req.OrderID,
		OrderItemID:  req.OrderItemID,
		Reason:       req.Reason,
		Quantity:     req.Quantity,
		RefundAmount: refund,
	}
	if err := s.returnRepo.Create(ctx, ret); err != nil {
		return nil, fmt.Errorf("failed to create return: %w", err)
	}

	s.logger.Info().
		Ctx(ctx).
		Int64("return_id", ret.ID).
		Int64("order_id", ret.OrderID).
		Str("refund_amount", refund.StringFixed(2)).
		Msg("return requested")
	return ret, nil
}

func (s *returnService) ListByCustomer(ctx context.Context, customerID int64) ([]model.Return, error) {
	returns, err := s.returnRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list returns: %w", err)
	}
	return returns, nil
}

func (s *returnService) List(ctx context.Context) ([]model.Return, error) {
	returns, err := s.returnRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list returns: %w", err)
	}
	return returns, nil
}

func (s *returnService) UpdateStatus(ctx context.Context, id int64, status string) (*model.Return, error) {
	if !returnStatuses[status] {
		return nil, model.ErrInvalidStatus
	}

	ret, err := s.returnRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, fmt.Errorf("failed to update return: %w", err)
	}
	return ret, nil
}
