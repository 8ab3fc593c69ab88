package service

import (
	"context"
	"fmt"

	"partshop/internal/model"
	"partshop/internal/repository"

	"github.com/rs/zerolog"
)

type customerService struct {
	customerRepo repository.CustomerRepository
	logger       zerolog.Logger
}

// NewCustomerService creates a new customer service.
func NewCustomerService(customerRepo repository.CustomerRepository, logger zerolog.Logger) CustomerService {
	return &customerService{
		customerRepo: customerRepo,
		logger:       logger.With().Str("service", "customer").Logger(),
	}
}

func (s *customerService) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	if customer == nil {
		return nil, model.ErrNotFound
	}
	return customer, nil
}

func (s *customerService) Update(ctx context.Context, id int64, upd *model.CustomerUpdate) (*model.Customer, error) {
	customer, err := s.customerRepo.Update(ctx, id, upd.Changes())
	if err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}
	return customer, nil
}

func (s *customerService) AddVehicle(ctx context.Context, customerID int64, req *model.AddVehicleRequest) (*model.Vehicle, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	vehicle := &model.Vehicle{
		CustomerID: customerID,
		Make:       req.Make,
		Model:      req.Model,
		Year:       req.Year,
		VIN:        req.VIN,
	}
	if err := s.customerRepo.AddVehicle(ctx, vehicle); err != nil {
		return nil, fmt.Errorf("failed to add vehicle: %w", err)
	}

	s.logger.Debug().Ctx(ctx).Int64("customer_id", customerID).Int64("vehicle_id", vehicle.ID).Msg("vehicle added")
	return vehicle, nil
}

func (s *customerService) ListVehicles(ctx context.Context, customerID int64) ([]model.Vehicle, error) {
	vehicles, err := s.customerRepo.ListVehicles(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	return vehicles, nil
}
