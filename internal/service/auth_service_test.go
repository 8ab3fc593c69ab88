package service

import (
	"context"
	"testing"
	"time"

	"partshop/internal/auth"
	"partshop/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAuthFixture() (*MockCustomerRepository, *MockEmployeeRepository, *auth.TokenManager, AuthService) {
	customers := new(MockCustomerRepository)
	employees := new(MockEmployeeRepository)
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	return customers, employees, tokens, NewAuthService(customers, employees, tokens, zerolog.Nop())
}

func TestAuthService_Register(t *testing.T) {
	customers, _, tokens, svc := newAuthFixture()

	customers.On("Create", mock.Anything, mock.MatchedBy(func(c *model.Customer) bool {
		return c.Email == "ada@example.com" && auth.CheckPassword(c.PasswordHash, "s3cret")
	})).
		Run(func(args mock.Arguments) { args.Get(1).(*model.Customer).ID = 7 }).
		Return(nil)

	resp, err := svc.Register(context.Background(), &model.RegisterRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     " Ada@Example.com ",
		Password:  "s3cret",
	})

	require.NoError(t, err)
	require.NotNil(t, resp.User.CustomerID)
	assert.Equal(t, int64(7), *resp.User.CustomerID)
	assert.Equal(t, model.RoleCustomer, resp.User.Role)

	p, err := tokens.Verify(resp.User.Token)
	require.NoError(t, err)
	assert.Equal(t, model.Principal{ID: 7, Role: model.RoleCustomer}, p)
	customers.AssertExpectations(t)
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	customers, _, _, svc := newAuthFixture()
	customers.On("Create", mock.Anything, mock.Anything).Return(model.ErrDuplicate)

	_, err := svc.Register(context.Background(), &model.RegisterRequest{
		FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Password: "x",
	})

	assert.ErrorIs(t, err, model.ErrDuplicate)
}

func TestAuthService_Login(t *testing.T) {
	hash, err := auth.HashPassword("s3cret")
	require.NoError(t, err)

	customer := &model.Customer{ID: 7, FirstName: "Ada", Email: "ada@example.com", PasswordHash: hash, IsActive: true}
	employee := &model.Employee{ID: 3, FirstName: "Grace", Email: "grace@example.com", PasswordHash: hash, IsActive: true}

	t.Run("customer", func(t *testing.T) {
		customers, _, _, svc := newAuthFixture()
		customers.On("GetByEmail", mock.Anything, "ada@example.com").Return(customer, nil)

		resp, err := svc.Login(context.Background(), &model.LoginRequest{Email: "ada@example.com", Password: "s3cret"})

		require.NoError(t, err)
		assert.Equal(t, model.RoleCustomer, resp.User.Role)
		assert.NotEmpty(t, resp.User.Token)
	})

	t.Run("staff falls through to employees", func(t *testing.T) {
		customers, employees, tokens, svc := newAuthFixture()
		customers.On("GetByEmail", mock.Anything, "grace@example.com").Return(nil, nil)
		employees.On("GetByEmail", mock.Anything, "grace@example.com").Return(employee, nil)

		resp, err := svc.Login(context.Background(), &model.LoginRequest{
			Email: "grace@example.com", Password: "s3cret", Role: "staff",
		})

		require.NoError(t, err)
		require.NotNil(t, resp.User.EmployeeID)
		assert.Equal(t, int64(3), *resp.User.EmployeeID)
		p, err := tokens.Verify(resp.User.Token)
		require.NoError(t, err)
		assert.True(t, p.IsStaff())
	})

	t.Run("employees are not checked without staff role", func(t *testing.T) {
		customers, employees, _, svc := newAuthFixture()
		customers.On("GetByEmail", mock.Anything, "grace@example.com").Return(nil, nil)

		_, err := svc.Login(context.Background(), &model.LoginRequest{Email: "grace@example.com", Password: "s3cret"})

		assert.ErrorIs(t, err, model.ErrInvalidCredentials)
		employees.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
	})

	t.Run("wrong password", func(t *testing.T) {
		customers, _, _, svc := newAuthFixture()
		customers.On("GetByEmail", mock.Anything, "ada@example.com").Return(customer, nil)

		_, err := svc.Login(context.Background(), &model.LoginRequest{Email: "ada@example.com", Password: "nope"})

		assert.ErrorIs(t, err, model.ErrInvalidCredentials)
	})

	t.Run("inactive customer", func(t *testing.T) {
		customers, _, _, svc := newAuthFixture()
		inactive := *customer
		inactive.IsActive = false
		customers.On("GetByEmail", mock.Anything, "ada@example.com").Return(&inactive, nil)

		_, err := svc.Login(context.Background(), &model.LoginRequest{Email: "ada@example.com", Password: "s3cret"})

		assert.ErrorIs(t, err, model.ErrInvalidCredentials)
	})

	t.Run("missing fields", func(t *testing.T) {
		_, _, _, svc := newAuthFixture()

		_, err := svc.Login(context.Background(), &model.LoginRequest{Email: "ada@example.com"})

		assert.Equal(t, model.ErrCodeValidationFailed, model.ErrorCode(err))
	})
}
