package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"partshop/internal/auth"
	"partshop/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockOrderService is a mock implementation of OrderService.
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) PlaceOrder(ctx context.Context, req *model.PlaceOrderRequest) (*model.Order, bool, error) {
	args := m.Called(ctx, req)
	order, _ := args.Get(0).(*model.Order)
	return order, args.Bool(1), args.Error(2)
}

func (m *MockOrderService) Checkout(ctx context.Context, p model.Principal, req *model.CheckoutRequest) (*model.Order, error) {
	args := m.Called(ctx, p, req)
	order, _ := args.Get(0).(*model.Order)
	return order, args.Error(1)
}

func (m *MockOrderService) GetByID(ctx context.Context, p model.Principal, id int64) (*model.Order, error) {
	args := m.Called(ctx, p, id)
	order, _ := args.Get(0).(*model.Order)
	return order, args.Error(1)
}

func (m *MockOrderService) ListByCustomer(ctx context.Context, customerID int64) ([]model.Order, error) {
	args := m.Called(ctx, customerID)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *MockOrderService) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	args := m.Called(ctx, filter)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, id int64, status string) (*model.Order, error) {
	args := m.Called(ctx, id, status)
	order, _ := args.Get(0).(*model.Order)
	return order, args.Error(1)
}

var (
	customer7 = model.Principal{ID: 7, Role: model.RoleCustomer}
	staff1    = model.Principal{ID: 1, Role: model.RoleStaff}
)

// serve routes req through a chi router so URL params resolve, as the principal p.
func serve(pattern, method string, h http.HandlerFunc, req *http.Request, p *model.Principal) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Method(method, pattern, h)
	if p != nil {
		req = req.WithContext(auth.WithPrincipal(req.Context(), *p))
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) model.ErrorResponse {
	t.Helper()
	var body model.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestOrderHandler_Create(t *testing.T) {
	logger := zerolog.Nop()

	placed := &model.Order{
		ID:          42,
		CustomerID:  7,
		TotalAmount: decimal.RequireFromString("84.98"),
		Status:      model.OrderStatusPending,
	}
	validBody := map[string]any{
		"customer_id": 7,
		"items": []map[string]any{
			{"part_id": 3, "quantity": 2, "unit_price": "19.99"},
			{"part_id": 5, "quantity": 1, "unit_price": 45.00},
		},
	}

	tests := []struct {
		name           string
		principal      model.Principal
		requestBody    any
		idempotencyKey string
		mockReturn     *model.Order
		mockCreated    bool
		mockError      error
		expectedStatus int
		expectedCode   string
		expectService  bool
	}{
		{
			name:           "Success",
			principal:      customer7,
			requestBody:    validBody,
			mockReturn:     placed,
			mockCreated:    true,
			expectedStatus: http.StatusCreated,
			expectService:  true,
		},
		{
			name:           "Repeated idempotency key",
			principal:      customer7,
			requestBody:    validBody,
			idempotencyKey: uuid.NewString(),
			mockReturn:     placed,
			mockCreated:    false,
			expectedStatus: http.StatusOK,
			expectService:  true,
		},
		{
			name:           "Malformed idempotency key",
			principal:      customer7,
			requestBody:    validBody,
			idempotencyKey: "abc",
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeValidationFailed,
		},
		{
			name:           "Empty order",
			principal:      customer7,
			requestBody:    map[string]any{"customer_id": 7, "items": []any{}},
			mockError:      model.ErrEmptyOrder,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeEmptyOrder,
			expectService:  true,
		},
		{
			name:           "Unknown part",
			principal:      customer7,
			requestBody:    validBody,
			mockError:      fmt.Errorf("failed to create order items: %w", model.ErrUnknownReference),
			expectedStatus: http.StatusConflict,
			expectedCode:   model.ErrCodeUnknownReference,
			expectService:  true,
		},
		{
			name:           "Timeout",
			principal:      customer7,
			requestBody:    validBody,
			mockError:      model.ErrOrderTimeout,
			expectedStatus: http.StatusServiceUnavailable,
			expectedCode:   model.ErrCodeOrderTimeout,
			expectService:  true,
		},
		{
			name:           "Other customer",
			principal:      model.Principal{ID: 8, Role: model.RoleCustomer},
			requestBody:    validBody,
			expectedStatus: http.StatusForbidden,
			expectedCode:   model.ErrCodeForbidden,
		},
		{
			name:      "Customer naming an employee",
			principal: customer7,
			requestBody: map[string]any{
				"customer_id": 7,
				"employee_id": 3,
				"items":       []map[string]any{{"part_id": 3, "quantity": 1, "unit_price": "19.99"}},
			},
			expectedStatus: http.StatusForbidden,
			expectedCode:   model.ErrCodeForbidden,
		},
		{
			name:      "Payment method of another customer",
			principal: customer7,
			requestBody: map[string]any{
				"customer_id":       7,
				"payment_method_id": 12,
				"items":             []map[string]any{{"part_id": 3, "quantity": 1, "unit_price": "19.99"}},
			},
			mockError:      fmt.Errorf("failed to create order: %w", model.ErrUnknownReference),
			expectedStatus: http.StatusConflict,
			expectedCode:   model.ErrCodeUnknownReference,
			expectService:  true,
		},
		{
			name:           "Invalid JSON",
			principal:      customer7,
			requestBody:    "invalid json",
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeInvalidJSON,
		},
		{
			name:           "Service internal error",
			principal:      customer7,
			requestBody:    validBody,
			mockError:      errors.New("database connection failed"),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   model.ErrCodeInternalError,
			expectService:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockOrderService)
			handler := NewOrderHandler(mockService, logger)

			var body []byte
			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				var err error
				body, err = json.Marshal(tt.requestBody)
				require.NoError(t, err)
			}

			if tt.expectService {
				mockService.On("PlaceOrder", mock.Anything, mock.AnythingOfType("*model.PlaceOrderRequest")).
					Return(tt.mockReturn, tt.mockCreated, tt.mockError)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			if tt.idempotencyKey != "" {
				req.Header.Set(IdempotencyKeyHeader, tt.idempotencyKey)
			}

			w := serve("/api/orders", http.MethodPost, handler.Create, req, &tt.principal)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, decodeError(t, w).Error)
			}
			if tt.expectService {
				mockService.AssertExpectations(t)
			} else {
				mockService.AssertNotCalled(t, "PlaceOrder", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestOrderHandler_Create_PassesRequest(t *testing.T) {
	mockService := new(MockOrderService)
	handler := NewOrderHandler(mockService, zerolog.Nop())
	key := uuid.New()

	mockService.On("PlaceOrder", mock.Anything, mock.MatchedBy(func(req *model.PlaceOrderRequest) bool {
		return req.CustomerID == 7 &&
			len(req.Items) == 1 &&
			req.Items[0].UnitPrice.Equal(decimal.RequireFromString("19.99")) &&
			req.IdempotencyKey != nil && *req.IdempotencyKey == key &&
			req.EmployeeID != nil && *req.EmployeeID == 1
	})).Return(&model.Order{ID: 42}, true, nil)

	body := `{"customer_id":7,"items":[{"part_id":3,"quantity":2,"unit_price":19.99}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewBufferString(body))
	req.Header.Set(IdempotencyKeyHeader, key.String())

	w := serve("/api/orders", http.MethodPost, handler.Create, req, &staff1)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp model.PlaceOrderResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(42), resp.OrderID)
	mockService.AssertExpectations(t)
}

func TestOrderHandler_Create_StaffNamesEmployee(t *testing.T) {
	mockService := new(MockOrderService)
	handler := NewOrderHandler(mockService, zerolog.Nop())

	mockService.On("PlaceOrder", mock.Anything, mock.MatchedBy(func(req *model.PlaceOrderRequest) bool {
		return req.EmployeeID != nil && *req.EmployeeID == 3
	})).Return(&model.Order{ID: 43}, true, nil)

	body := `{"customer_id":7,"employee_id":3,"items":[{"part_id":3,"quantity":1,"unit_price":"19.99"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewBufferString(body))

	w := serve("/api/orders", http.MethodPost, handler.Create, req, &staff1)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockService.AssertExpectations(t)
}

func TestOrderHandler_GetByID(t *testing.T) {
	logger := zerolog.Nop()
	order := &model.Order{ID: 10, CustomerID: 7, Items: []model.OrderItem{{ID: 1, OrderID: 10, PartID: 3, Quantity: 2}}}

	tests := []struct {
		name           string
		path           string
		mockReturn     *model.Order
		mockError      error
		expectedStatus int
		expectService  bool
	}{
		{name: "Success", path: "/api/orders/10", mockReturn: order, expectedStatus: http.StatusOK, expectService: true},
		{name: "Not found", path: "/api/orders/10", mockError: model.ErrNotFound, expectedStatus: http.StatusNotFound, expectService: true},
		{name: "Forbidden", path: "/api/orders/10", mockError: model.ErrForbidden, expectedStatus: http.StatusForbidden, expectService: true},
		{name: "Invalid id", path: "/api/orders/abc", expectedStatus: http.StatusBadRequest},
		{name: "Zero id", path: "/api/orders/0", expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockOrderService)
			handler := NewOrderHandler(mockService, logger)
			if tt.expectService {
				mockService.On("GetByID", mock.Anything, customer7, int64(10)).Return(tt.mockReturn, tt.mockError)
			}

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			w := serve("/api/orders/{id}", http.MethodGet, handler.GetByID, req, &customer7)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				var got model.Order
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
				assert.Equal(t, int64(10), got.ID)
				assert.Len(t, got.Items, 1)
			}
			if !tt.expectService {
				mockService.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestOrderHandler_ListByCustomer(t *testing.T) {
	mockService := new(MockOrderService)
	handler := NewOrderHandler(mockService, zerolog.Nop())
	mockService.On("ListByCustomer", mock.Anything, int64(7)).Return([]model.Order{}, nil)

	w := serve("/api/orders/customer/{customerId}", http.MethodGet, handler.ListByCustomer,
		httptest.NewRequest(http.MethodGet, "/api/orders/customer/7", nil), &customer7)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = serve("/api/orders/customer/{customerId}", http.MethodGet, handler.ListByCustomer,
		httptest.NewRequest(http.MethodGet, "/api/orders/customer/8", nil), &customer7)
	assert.Equal(t, http.StatusForbidden, w.Code)
	mockService.AssertNumberOfCalls(t, "ListByCustomer", 1)
}

func TestOrderHandler_List(t *testing.T) {
	mockService := new(MockOrderService)
	handler := NewOrderHandler(mockService, zerolog.Nop())
	shipped := model.OrderStatusShipped
	mockService.On("List", mock.Anything, model.OrderFilter{Status: &shipped, Limit: 20, Offset: 40}).
		Return([]model.Order{{ID: 1}}, nil)

	w := serve("/api/orders", http.MethodGet, handler.List,
		httptest.NewRequest(http.MethodGet, "/api/orders?status=shipped&limit=20&offset=40", nil), &staff1)
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve("/api/orders", http.MethodGet, handler.List,
		httptest.NewRequest(http.MethodGet, "/api/orders?status=lost", nil), &staff1)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, model.ErrCodeInvalidStatus, decodeError(t, w).Error)

	mockService.AssertNumberOfCalls(t, "List", 1)
}

func TestOrderHandler_UpdateStatus(t *testing.T) {
	tests := []struct {
		name           string
		mockError      error
		expectedStatus int
	}{
		{name: "Success", expectedStatus: http.StatusOK},
		{name: "Unknown status", mockError: model.ErrInvalidStatus, expectedStatus: http.StatusBadRequest},
		{name: "Terminal order", mockError: model.ErrInvalidStatusTransition, expectedStatus: http.StatusConflict},
		{name: "Missing order", mockError: model.ErrNotFound, expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockOrderService)
			handler := NewOrderHandler(mockService, zerolog.Nop())
			var ret *model.Order
			if tt.mockError == nil {
				ret = &model.Order{ID: 10, Status: model.OrderStatusShipped}
			}
			mockService.On("UpdateStatus", mock.Anything, int64(10), "shipped").Return(ret, tt.mockError)

			req := httptest.NewRequest(http.MethodPut, "/api/orders/10/status", bytes.NewBufferString(`{"status":"shipped"}`))
			w := serve("/api/orders/{id}/status", http.MethodPut, handler.UpdateStatus, req, &staff1)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.mockError == nil {
				var body struct {
					Order model.Order `json:"order"`
				}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, model.OrderStatusShipped, body.Order.Status)
			}
		})
	}
}

func TestOrderHandler_Checkout(t *testing.T) {
	mockService := new(MockOrderService)
	handler := NewOrderHandler(mockService, zerolog.Nop())
	mockService.On("Checkout", mock.Anything, customer7, &model.CheckoutRequest{}).
		Return(&model.Order{ID: 12, CustomerID: 7}, nil).Once()
	mockService.On("Checkout", mock.Anything, customer7, &model.CheckoutRequest{CustomerID: 7}).
		Return(nil, model.ErrEmptyCart).Once()

	w := serve("/api/orders/checkout", http.MethodPost, handler.Checkout,
		httptest.NewRequest(http.MethodPost, "/api/orders/checkout", nil), &customer7)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = serve("/api/orders/checkout", http.MethodPost, handler.Checkout,
		httptest.NewRequest(http.MethodPost, "/api/orders/checkout", bytes.NewBufferString(`{"customer_id":7}`)), &customer7)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, model.ErrCodeEmptyCart, decodeError(t, w).Error)

	mockService.AssertExpectations(t)
}
