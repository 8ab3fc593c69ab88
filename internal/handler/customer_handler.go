package handler

import (
	"net/http"

	"partshop/internal/model"
	"partshop/internal/service"

	"github.com/rs/zerolog"
)

// CustomerHandler handles customer profile and vehicle requests.
type CustomerHandler struct {
	service service.CustomerService
	logger  zerolog.Logger
}

// NewCustomerHandler creates a new customer handler.
func NewCustomerHandler(service service.CustomerService, logger zerolog.Logger) *CustomerHandler {
	return &CustomerHandler{
		service: service,
		logger:  logger.With().Str("handler", "customer").Logger(),
	}
}

// GetByID handles GET /api/customers/{customerId} requests.
func (h *CustomerHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	customerID, err := customerScope(r, "customerId")
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	customer, err := h.service.GetByID(r.Context(), customerID)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, customer)
}

// Update handles PUT /api/customers/{customerId} requests.
func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	customerID, err := customerScope(r, "customerId")
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	var upd model.CustomerUpdate
	if err := decodeJSON(r, &upd); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	customer, err := h.service.Update(r.Context(), customerID, &upd)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, customer)
}

// AddVehicle handles POST /api/customers/{customerId}/vehicles requests.
func (h *CustomerHandler) AddVehicle(w http.ResponseWriter, r *http.Request) {
	customerID, err := customerScope(r, "customerId")
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	var req model.AddVehicleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	vehicle, err := h.service.AddVehicle(r.Context(), customerID, &req)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, vehicle)
}

// ListVehicles handles GET /api/customers/{customerId}/vehicles requests.
func (h *CustomerHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	customerID, err := customerScope(r, "customerId")
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	vehicles, err := h.service.ListVehicles(r.Context(), customerID)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, vehicles)
}
