package handler

import (
	"net/http"

	"partshop/internal/model"
	"partshop/internal/service"

	"github.com/rs/zerolog"
)

// CartHandler handles shopping cart requests.
type CartHandler struct {
	service service.CartService
	logger  zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(service service.CartService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger.With().Str("handler", "cart").Logger(),
	}
}

// Get handles GET /api/cart/{customerId} requests.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	customerID, err := customerScope(r, "customerId")
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	lines, err := h.service.Get(r.Context(), customerID)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, lines)
}

// Add handles POST /api/cart requests. A new row answers 201, an increment 200.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	var req model.AddToCartRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	item, inserted, err := h.service.Add(r.Context(), p, &req)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	status := http.StatusOK
	if inserted {
		status = http.StatusCreated
	}
	writeJSON(w, status, item)
}

// UpdateQuantity handles PUT /api/cart/{cartItemId} requests.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	id, err := pathID(r, "cartItemId")
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	var req model.UpdateCartItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	item, err := h.service.UpdateQuantity(r.Context(), p, id, req.Quantity)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// DeleteItem handles DELETE /api/cart/{cartItemId} requests.
func (h *CartHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	id, err := pathID(r, "cartItemId")
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	if err := h.service.DeleteItem(r.Context(), p, id); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

// Clear handles DELETE /api/cart/clear/{customerId} requests.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	customerID, err := customerScope(r, "customerId")
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	if err := h.service.Clear(r.Context(), customerID); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, okResponse{OK: true})
}
