package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"partshop/internal/model"
	"partshop/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// IdempotencyKeyHeader lets clients retry order placement safely.
const IdempotencyKeyHeader = "Idempotency-Key"

// orderEnvelope is the status update response body.
type orderEnvelope struct {
	Order *model.Order `json:"order"`
}

// OrderHandler handles order-related HTTP requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// Create handles POST /api/orders requests.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	var req model.PlaceOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	if req.CustomerID != 0 && !p.CanAccessCustomer(req.CustomerID) {
		writeError(w, r, model.ErrForbidden, h.logger)
		return
	}
	if req.EmployeeID != nil && !p.IsStaff() {
		writeError(w, r, model.ErrForbidden, h.logger)
		return
	}
	if p.IsStaff() && req.EmployeeID == nil {
		req.EmployeeID = &p.ID
	}

	if raw := r.Header.Get(IdempotencyKeyHeader); raw != "" {
		key, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, r, model.NewValidationError("Idempotency-Key must be a UUID"), h.logger)
			return
		}
		req.IdempotencyKey = &key
	}

	order, created, err := h.service.PlaceOrder(r.Context(), &req)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	status := http.StatusCreated
	if !created {
		status = http.StatusOK
	}
	writeJSON(w, status, model.PlaceOrderResponse{OrderID: order.ID, Order: order})
}

// Checkout handles POST /api/orders/checkout requests.
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	// The body is optional; an empty one checks out the caller's own cart.
	var req model.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, r, model.NewDomainError(model.ErrCodeInvalidJSON, "invalid request body"), h.logger)
		return
	}

	order, err := h.service.Checkout(r.Context(), p, &req)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, model.PlaceOrderResponse{OrderID: order.ID, Order: order})
}

// GetByID handles GET /api/orders/{id} requests.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	orderID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	order, err := h.service.GetByID(r.Context(), p, orderID)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// ListByCustomer handles GET /api/orders/customer/{customerId} requests.
func (h *OrderHandler) ListByCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := customerScope(r, "customerId")
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	orders, err := h.service.ListByCustomer(r.Context(), customerID)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

// List handles GET /api/orders requests.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter model.OrderFilter
	var err error
	if filter.Limit, err = queryInt(r, "limit"); err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	if filter.Offset, err = queryInt(r, "offset"); err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := model.ParseOrderStatus(raw)
		if err != nil {
			writeError(w, r, err, h.logger)
			return
		}
		filter.Status = &status
	}

	orders, err := h.service.List(r.Context(), filter)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

// UpdateStatus handles PUT /api/orders/{id}/status requests.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	var req model.UpdateOrderStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	order, err := h.service.UpdateStatus(r.Context(), orderID, req.Status)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, orderEnvelope{Order: order})
}
