package handler

import (
	"net/http"

	"partshop/internal/model"
	"partshop/internal/service"

	"github.com/rs/zerolog"
)

// ReturnHandler handles return requests.
type ReturnHandler struct {
	service service.ReturnService
	logger  zerolog.Logger
}

// NewReturnHandler creates a new return handler.
func NewReturnHandler(service service.ReturnService, logger zerolog.Logger) *ReturnHandler {
	return &ReturnHandler{
		service: service,
		logger:  logger.With().Str("handler", "return").Logger(),
	}
}

// Create handles POST /api/returns requests.
func (h *ReturnHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	var req model.CreateReturnRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	ret, err := h.service.Create(r.Context(), p, &req)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, ret)
}

// ListByCustomer handles GET /api/returns/customer/{customerId} requests.
func (h *ReturnHandler) ListByCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := customerScope(r, "customerId")
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	returns, err := h.service.ListByCustomer(r.Context(), customerID)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, returns)
}

// List handles GET /api/returns requests.
func (h *ReturnHandler) List(w http.ResponseWriter, r *http.Request) {
	returns, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, returns)
}

// UpdateStatus handles PUT /api/returns/{id}/status requests.
func (h *ReturnHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	var req model.UpdateReturnStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	ret, err := h.service.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, ret)
}
