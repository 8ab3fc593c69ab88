package handler

import (
	"net/http"

	"partshop/internal/model"
	"partshop/internal/service"

	"github.com/rs/zerolog"
)

// PaymentHandler handles stored payment method requests.
type PaymentHandler struct {
	service service.PaymentService
	logger  zerolog.Logger
}

// NewPaymentHandler creates a new payment method handler.
func NewPaymentHandler(service service.PaymentService, logger zerolog.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		logger:  logger.With().Str("handler", "payment").Logger(),
	}
}

// ListByCustomer handles GET /api/payment-methods/customer/{customerId} requests.
func (h *PaymentHandler) ListByCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := customerScope(r, "customerId")
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	methods, err := h.service.ListByCustomer(r.Context(), customerID)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, methods)
}

// Create handles POST /api/payment-methods requests.
func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	var req model.CreatePaymentMethodRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	if req.CustomerID == 0 && !p.IsStaff() {
		req.CustomerID = p.ID
	}
	if !p.CanAccessCustomer(req.CustomerID) {
		writeError(w, r, model.ErrForbidden, h.logger)
		return
	}

	method, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, method)
}

// Update handles PUT /api/payment-methods/{id} requests.
func (h *PaymentHandler) Update(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	var upd model.PaymentMethodUpdate
	if err := decodeJSON(r, &upd); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	method, err := h.service.Update(r.Context(), p, id, &upd)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, method)
}

// Delete handles DELETE /api/payment-methods/{id} requests.
func (h *PaymentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	if err := h.service.Delete(r.Context(), p, id); err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

// SetDefault handles PUT /api/payment-methods/{id}/set-default requests.
func (h *PaymentHandler) SetDefault(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	method, err := h.service.SetDefault(r.Context(), p, id)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, method)
}
