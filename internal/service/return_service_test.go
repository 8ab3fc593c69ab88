package service

import (
	"context"
	"testing"

	"partshop/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReturnService_Create(t *testing.T) {
	order := &model.Order{
		ID:         10,
		CustomerID: 7,
		Items: []model.OrderItem{
			{ID: 100, OrderID: 10, PartID: 3, Quantity: 2, UnitPrice: dec("19.99")},
		},
	}
	owner := model.Principal{ID: 7, Role: model.RoleCustomer}

	tests := []struct {
		name       string
		principal  model.Principal
		req        model.CreateReturnRequest
		wantRefund string
		wantErr    error
		wantCode   string
	}{
		{
			name:       "refund defaults to item price",
			principal:  owner,
			req:        model.CreateReturnRequest{OrderID: 10, OrderItemID: 100, Quantity: 2},
			wantRefund: "39.98",
		},
		{
			name:       "explicit refund",
			principal:  owner,
			req:        model.CreateReturnRequest{OrderID: 10, OrderItemID: 100, Quantity: 1, RefundAmount: dec("15")},
			wantRefund: "15.00",
		},
		{
			name:      "other customer",
			principal: model.Principal{ID: 8, Role: model.RoleCustomer},
			req:       model.CreateReturnRequest{OrderID: 10, OrderItemID: 100, Quantity: 1},
			wantErr:   model.ErrForbidden,
		},
		{
			name:      "item from another order",
			principal: owner,
			req:       model.CreateReturnRequest{OrderID: 10, OrderItemID: 999, Quantity: 1},
			wantCode:  model.ErrCodeValidationFailed,
		},
		{
			name:      "too many",
			principal: owner,
			req:       model.CreateReturnRequest{OrderID: 10, OrderItemID: 100, Quantity: 3},
			wantCode:  model.ErrCodeValidationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			returns := new(MockReturnRepository)
			orders := new(MockOrderRepository)
			orders.On("GetByID", mock.Anything, int64(10)).Return(order, nil)
			returns.On("Create", mock.Anything, mock.AnythingOfType("*model.Return")).Return(nil).Maybe()
			svc := NewReturnService(returns, orders, zerolog.Nop())

			req := tt.req
			ret, err := svc.Create(context.Background(), tt.principal, &req)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				returns.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			case tt.wantCode != "":
				assert.Equal(t, tt.wantCode, model.ErrorCode(err))
				returns.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.wantRefund, ret.RefundAmount.StringFixed(2))
			}
		})
	}
}

func TestReturnService_UpdateStatus(t *testing.T) {
	repo := new(MockReturnRepository)
	repo.On("UpdateStatus", mock.Anything, int64(1), "approved").
		Return(&model.Return{ID: 1, Status: "approved"}, nil)
	svc := NewReturnService(repo, new(MockOrderRepository), zerolog.Nop())

	_, err := svc.UpdateStatus(context.Background(), 1, "vanished")
	assert.ErrorIs(t, err, model.ErrInvalidStatus)

	ret, err := svc.UpdateStatus(context.Background(), 1, "approved")
	require.NoError(t, err)
	assert.Equal(t, "approved", ret.Status)
}
