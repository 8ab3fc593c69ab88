package service

import (
	"context"
	"fmt"
	"strings"

	"partshop/internal/auth"
	"partshop/internal/model"
	"partshop/internal/repository"

	"github.com/rs/zerolog"
)

type employeeService struct {
	employeeRepo repository.EmployeeRepository
	logger       zerolog.Logger
}

// NewEmployeeService creates a new employee service.
func NewEmployeeService(employeeRepo repository.EmployeeRepository, logger zerolog.Logger) EmployeeService {
	return &employeeService{
		employeeRepo: employeeRepo,
		logger:       logger.With().Str("service", "employee").Logger(),
	}
}

func (s *employeeService) List(ctx context.Context) ([]model.Employee, error) {
	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, nil
}

func (s *employeeService) GetByID(ctx context.Context, id int64) (*model.Employee, error) {
	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	if employee == nil {
		return nil, model.ErrNotFound
	}
	return employee, nil
}

func (s *employeeService) Create(ctx context.Context, req *model.CreateEmployeeRequest) (*model.Employee, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}

	employee := &model.Employee{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        normaliseEmail(req.Email),
		PasswordHash: hash,
		Role:         req.Role,
		Salary:       req.Salary,
		StoreID:      req.StoreID,
	}
	if err := s.employeeRepo.Create(ctx, employee); err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}

	s.logger.Info().Ctx(ctx).Int64("employee_id", employee.ID).Msg("employee created")
	return employee, nil
}

// Update applies a partial update, rehashing the password when one is given.
func (s *employeeService) Update(ctx context.Context, id int64, upd *model.EmployeeUpdate) (*model.Employee, error) {
	if upd.Email != nil {
		email := normaliseEmail(*upd.Email)
		upd.Email = &email
	}
	if upd.Password != nil && *upd.Password != "" {
		hash, err := auth.HashPassword(*upd.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to update employee: %w", err)
		}
		upd.PasswordHash = &hash
	}

	employee, err := s.employeeRepo.Update(ctx, id, upd.Changes())
	if err != nil {
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}
	return employee, nil
}

func (s *employeeService) Delete(ctx context.Context, id int64) error {
	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	s.logger.Info().Ctx(ctx).Int64("employee_id", id).Msg("employee deleted")
	return nil
}

type storeService struct {
	storeRepo repository.StoreRepository
	logger    zerolog.Logger
}

// NewStoreService creates a new store service.
func NewStoreService(storeRepo repository.StoreRepository, logger zerolog.Logger) StoreService {
	return &storeService{
		storeRepo: storeRepo,
		logger:    logger.With().Str("service", "store").Logger(),
	}
}

func (s *storeService) List(ctx context.Context) ([]model.Store, error) {
	stores, err := s.storeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list stores: %w", err)
	}
	return stores, nil
}

func (s *storeService) GetByID(ctx context.Context, id int64) (*model.Store, error) {
	store, err := s.storeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get store: %w", err)
	}
	if store == nil {
		return nil, model.ErrNotFound
	}
	return store, nil
}

func (s *storeService) Create(ctx context.Context, req *model.CreateStoreRequest) (*model.Store, error) {
	req.StoreName = strings.TrimSpace(req.StoreName)
	if err := req.Validate(); err != nil {
		return nil, err
	}

	store := &model.Store{
		StoreName: req.StoreName,
		Address:   req.Address,
		Phone:     req.Phone,
		Email:     req.Email,
	}
	if err := s.storeRepo.Create(ctx, store); err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}
	return store, nil
}

func (s *storeService) Update(ctx context.Context, id int64, upd *model.StoreUpdate) (*model.Store, error) {
	store, err := s.storeRepo.Update(ctx, id, upd.Changes())
	if err != nil {
		return nil, fmt.Errorf("failed to update store: %w", err)
	}
	return store, nil
}

type inventoryService struct {
	inventoryRepo repository.InventoryRepository
	logger        zerolog.Logger
}

// NewInventoryService creates a new inventory service.
func NewInventoryService(inventoryRepo repository.InventoryRepository, logger zerolog.Logger) InventoryService {
	return &inventoryService{
		inventoryRepo: inventoryRepo,
		logger:        logger.With().Str("service", "inventory").Logger(),
	}
}

func (s *inventoryService) ListByStore(ctx context.Context, storeID int64) ([]model.InventoryItem, error) {
	items, err := s.inventoryRepo.ListByStore(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	return items, nil
}

// ListLowStock returns items at or below their reorder level.
func (s *inventoryService) ListLowStock(ctx context.Context, storeID int64) ([]model.InventoryItem, error) {
	items, err := s.inventoryRepo.ListLowStock(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list low stock: %w", err)
	}
	return items, nil
}

func (s *inventoryService) UpdateQuantity(ctx context.Context, inventoryID int64, quantity int) (*model.InventoryItem, error) {
	if quantity < 0 {
		return nil, model.NewValidationError("quantity must not be negative")
	}

	item, err := s.inventoryRepo.UpdateQuantity(ctx, inventoryID, quantity)
	if err != nil {
		return nil, fmt.Errorf("failed to update inventory: %w", err)
	}

	s.logger.Info().
		Ctx(ctx).
		Int64("inventory_id", inventoryID).
		Int("quantity", quantity).
		Msg("stock level updated")
	return item, nil
}
