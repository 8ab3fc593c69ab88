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

func TestPaymentService_CreateDefault(t *testing.T) {
	repo := new(MockPaymentRepository)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(pm *model.PaymentMethod) bool {
		return pm.CustomerID == 7 && !pm.IsDefault
	})).
		Run(func(args mock.Arguments) { args.Get(1).(*model.PaymentMethod).ID = 4 }).
		Return(nil)
	repo.On("SetDefault", mock.Anything, int64(4)).
		Return(&model.PaymentMethod{ID: 4, CustomerID: 7, IsDefault: true}, nil)
	svc := NewPaymentService(repo, zerolog.Nop())

	method, err := svc.Create(context.Background(), &model.CreatePaymentMethodRequest{CustomerID: 7, IsDefault: true})

	require.NoError(t, err)
	assert.True(t, method.IsDefault)
	repo.AssertExpectations(t)
}

func TestPaymentService_Ownership(t *testing.T) {
	method := &model.PaymentMethod{ID: 4, CustomerID: 7}
	stranger := model.Principal{ID: 8, Role: model.RoleCustomer}
	owner := model.Principal{ID: 7, Role: model.RoleCustomer}

	repo := new(MockPaymentRepository)
	repo.On("GetByID", mock.Anything, int64(4)).Return(method, nil)
	repo.On("GetByID", mock.Anything, int64(5)).Return(nil, nil)
	repo.On("SetDefault", mock.Anything, int64(4)).Return(&model.PaymentMethod{ID: 4, IsDefault: true}, nil)
	repo.On("Delete", mock.Anything, int64(4)).Return(nil)
	svc := NewPaymentService(repo, zerolog.Nop())
	ctx := context.Background()

	_, err := svc.SetDefault(ctx, stranger, 4)
	assert.ErrorIs(t, err, model.ErrForbidden)
	assert.ErrorIs(t, svc.Delete(ctx, stranger, 4), model.ErrForbidden)
	assert.ErrorIs(t, svc.Delete(ctx, owner, 5), model.ErrNotFound)

	got, err := svc.SetDefault(ctx, owner, 4)
	require.NoError(t, err)
	assert.True(t, got.IsDefault)
	require.NoError(t, svc.Delete(ctx, owner, 4))
}

func TestPaymentService_UpdateRoutesDefaultThroughSetDefault(t *testing.T) {
	owner := model.Principal{ID: 7, Role: model.RoleCustomer}
	holder := "A LOVELACE"
	yes := true

	repo := new(MockPaymentRepository)
	repo.On("GetByID", mock.Anything, int64(4)).Return(&model.PaymentMethod{ID: 4, CustomerID: 7}, nil)
	repo.On("Update", mock.Anything, int64(4), map[string]any{"card_holder_name": holder}).
		Return(&model.PaymentMethod{ID: 4, CustomerID: 7, CardHolderName: &holder}, nil)
	repo.On("SetDefault", mock.Anything, int64(4)).
		Return(&model.PaymentMethod{ID: 4, CustomerID: 7, CardHolderName: &holder, IsDefault: true}, nil)
	svc := NewPaymentService(repo, zerolog.Nop())

	got, err := svc.Update(context.Background(), owner, 4, &model.PaymentMethodUpdate{
		CardHolderName: &holder,
		IsDefault:      &yes,
	})

	require.NoError(t, err)
	assert.True(t, got.IsDefault)
	repo.AssertExpectations(t)
}
