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

// authService implements AuthService.
type authService struct {
	customerRepo repository.CustomerRepository
	employeeRepo repository.EmployeeRepository
	tokens       *auth.TokenManager
	logger       zerolog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(
	customerRepo repository.CustomerRepository,
	employeeRepo repository.EmployeeRepository,
	tokens *auth.TokenManager,
	logger zerolog.Logger,
) AuthService {
	return &authService{
		customerRepo: customerRepo,
		employeeRepo: employeeRepo,
		tokens:       tokens,
		logger:       logger.With().Str("service", "auth").Logger(),
	}
}

// Register creates a customer account and signs the customer in.
func (s *authService) Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error) {
	req.Email = normaliseEmail(req.Email)
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to register: %w", err)
	}

	customer := &model.Customer{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: hash,
		Phone:        req.Phone,
		Address:      req.Address,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		s.logger.Warn().Ctx(ctx).Err(err).Msg("registration failed")
		return nil, fmt.Errorf("failed to register: %w", err)
	}

	s.logger.Info().Ctx(ctx).Int64("customer_id", customer.ID).Msg("customer registered")
	return s.customerResponse(customer)
}

// Login checks credentials against customers, then employees for staff logins.
func (s *authService) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	email := normaliseEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, model.NewValidationError("email and password are required")
	}

	customer, err := s.customerRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to log in: %w", err)
	}
	if customer != nil && customer.IsActive && auth.CheckPassword(customer.PasswordHash, req.Password) {
		return s.customerResponse(customer)
	}

	if model.Role(req.Role) == model.RoleStaff {
		employee, err := s.employeeRepo.GetByEmail(ctx, email)
		if err != nil {
			return nil, fmt.Errorf("failed to log in: %w", err)
		}
		if employee != nil && employee.IsActive && auth.CheckPassword(employee.PasswordHash, req.Password) {
			return s.employeeResponse(employee)
		}
	}

	s.logger.Warn().Ctx(ctx).Str("role", req.Role).Msg("invalid login attempt")
	return nil, model.ErrInvalidCredentials
}

func (s *authService) customerResponse(c *model.Customer) (*model.AuthResponse, error) {
	token, err := s.tokens.Issue(model.Principal{ID: c.ID, Role: model.RoleCustomer})
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &model.AuthResponse{User: model.User{
		CustomerID: &c.ID,
		FirstName:  c.FirstName,
		LastName:   c.LastName,
		Email:      c.Email,
		Role:       model.RoleCustomer,
		Token:      token,
	}}, nil
}

func (s *authService) employeeResponse(e *model.Employee) (*model.AuthResponse, error) {
	token, err := s.tokens.Issue(model.Principal{ID: e.ID, Role: model.RoleStaff})
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &model.AuthResponse{User: model.User{
		EmployeeID: &e.ID,
		FirstName:  e.FirstName,
		LastName:   e.LastName,
		Email:      e.Email,
		Role:       model.RoleStaff,
		Token:      token,
	}}, nil
}

func normaliseEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
