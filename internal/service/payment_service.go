package service

import (
	"context"
	"fmt"

	"partshop/internal/model"
	"partshop/internal/repository"

	"github.com/rs/zerolog"
)

type paymentService struct {
	paymentRepo repository.PaymentRepository
	logger      zerolog.Logger
}

// NewPaymentService creates a new payment method service.
func NewPaymentService(paymentRepo repository.PaymentRepository, logger zerolog.Logger) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		logger:      logger.With().Str("service", "payment").Logger(),
	}
}

func (s *paymentService) ListByCustomer(ctx context.Context, customerID int64) ([]model.PaymentMethod, error) {
	methods, err := s.paymentRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment methods: %w", err)
	}
	return methods, nil
}

// Create stores a payment method. A default method becomes the only default.
func (s *paymentService) Create(ctx context.Context, req *model.CreatePaymentMethodRequest) (*model.PaymentMethod, error) {
	if req.CustomerID <= 0 {
		return nil, model.NewValidationError("customer_id is required")
	}

	method := &model.PaymentMethod{
		CustomerID:       req.CustomerID,
		CardType:         req.CardType,
		MaskedCardNumber: req.MaskedCardNumber,
		CardHolderName:   req.CardHolderName,
		ExpiryDate:       req.ExpiryDate,
	}
	if err := s.paymentRepo.Create(ctx, method); err != nil {
		return nil, fmt.Errorf("failed to create payment method: %w", err)
	}

	if req.IsDefault {
		return s.setDefault(ctx, method.ID)
	}
	return method, nil
}

func (s *paymentService) Update(ctx context.Context, p model.Principal, id int64, upd *model.PaymentMethodUpdate) (*model.PaymentMethod, error) {
	if err := s.checkOwner(ctx, p, id); err != nil {
		return nil, err
	}

	makeDefault := upd.IsDefault != nil && *upd.IsDefault
	if makeDefault {
		// set-default clears the other methods, so it runs separately
		upd.IsDefault = nil
	}

	changes := upd.Changes()
	if len(changes) == 0 && makeDefault {
		return s.setDefault(ctx, id)
	}

	method, err := s.paymentRepo.Update(ctx, id, changes)
	if err != nil {
		return nil, fmt.Errorf("failed to update payment method: %w", err)
	}
	if makeDefault {
		return s.setDefault(ctx, id)
	}
	return method, nil
}

func (s *paymentService) Delete(ctx context.Context, p model.Principal, id int64) error {
	if err := s.checkOwner(ctx, p, id); err != nil {
		return err
	}
	if err := s.paymentRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete payment method: %w", err)
	}
	return nil
}

func (s *paymentService) SetDefault(ctx context.Context, p model.Principal, id int64) (*model.PaymentMethod, error) {
	if err := s.checkOwner(ctx, p, id); err != nil {
		return nil, err
	}
	return s.setDefault(ctx, id)
}

func (s *paymentService) setDefault(ctx context.Context, id int64) (*model.PaymentMethod, error) {
	method, err := s.paymentRepo.SetDefault(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to set default payment method: %w", err)
	}
	s.logger.Debug().Ctx(ctx).Int64("payment_method_id", id).Msg("default payment method set")
	return method, nil
}

func (s *paymentService) checkOwner(ctx context.Context, p model.Principal, id int64) error {
	method, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get payment method: %w", err)
	}
	if method == nil {
		return model.ErrNotFound
	}
	return authorize(p, method.CustomerID)
}
