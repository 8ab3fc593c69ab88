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

func TestCartService_Add(t *testing.T) {
	customer := model.Principal{ID: 7, Role: model.RoleCustomer}
	staff := model.Principal{ID: 2, Role: model.RoleStaff}

	tests := []struct {
		name         string
		principal    model.Principal
		req          model.AddToCartRequest
		wantCustomer int64
		wantQty      int
		wantErr      error
	}{
		{
			name:         "default quantity",
			principal:    customer,
			req:          model.AddToCartRequest{CustomerID: 7, PartID: 3},
			wantCustomer: 7,
			wantQty:      1,
		},
		{
			name:         "customer cannot add to another cart",
			principal:    customer,
			req:          model.AddToCartRequest{CustomerID: 99, PartID: 3, Quantity: 2},
			wantCustomer: 7,
			wantQty:      2,
		},
		{
			name:         "staff acts for any customer",
			principal:    staff,
			req:          model.AddToCartRequest{CustomerID: 99, PartID: 3, Quantity: 4},
			wantCustomer: 99,
			wantQty:      4,
		},
		{
			name:      "negative quantity",
			principal: customer,
			req:       model.AddToCartRequest{PartID: 3, Quantity: -1},
			wantErr:   model.ErrInvalidQuantity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockCartRepository)
			svc := NewCartService(repo, zerolog.Nop())
			if tt.wantErr == nil {
				repo.On("Add", mock.Anything, tt.wantCustomer, int64(3), tt.wantQty).
					Return(&model.CartItem{ID: 1, CustomerID: tt.wantCustomer, PartID: 3, Quantity: tt.wantQty}, true, nil)
			}

			req := tt.req
			item, inserted, err := svc.Add(context.Background(), tt.principal, &req)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				repo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.True(t, inserted)
			assert.Equal(t, tt.wantQty, item.Quantity)
			repo.AssertExpectations(t)
		})
	}
}

func TestCartService_ItemOwnership(t *testing.T) {
	owner := model.Principal{ID: 7, Role: model.RoleCustomer}
	stranger := model.Principal{ID: 8, Role: model.RoleCustomer}
	item := &model.CartItem{ID: 5, CustomerID: 7, PartID: 3, Quantity: 1}

	repo := new(MockCartRepository)
	repo.On("GetItem", mock.Anything, int64(5)).Return(item, nil)
	repo.On("GetItem", mock.Anything, int64(6)).Return(nil, nil)
	repo.On("UpdateQuantity", mock.Anything, int64(5), 3).Return(&model.CartItem{ID: 5, Quantity: 3}, nil)
	repo.On("DeleteItem", mock.Anything, int64(5)).Return(nil)
	svc := NewCartService(repo, zerolog.Nop())
	ctx := context.Background()

	_, err := svc.UpdateQuantity(ctx, stranger, 5, 3)
	assert.ErrorIs(t, err, model.ErrForbidden)

	assert.ErrorIs(t, svc.DeleteItem(ctx, stranger, 5), model.ErrForbidden)
	assert.ErrorIs(t, svc.DeleteItem(ctx, owner, 6), model.ErrNotFound)

	_, err = svc.UpdateQuantity(ctx, owner, 5, 0)
	assert.ErrorIs(t, err, model.ErrInvalidQuantity)

	updated, err := svc.UpdateQuantity(ctx, owner, 5, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Quantity)

	require.NoError(t, svc.DeleteItem(ctx, owner, 5))
	repo.AssertNumberOfCalls(t, "UpdateQuantity", 1)
	repo.AssertNumberOfCalls(t, "DeleteItem", 1)
}
