package handler

import (
	"net/http"

	"partshop/internal/model"
	"partshop/internal/service"

	"github.com/rs/zerolog"
)

// PartHandler handles catalogue requests.
type PartHandler struct {
	service service.PartService
	logger  zerolog.Logger
}

// NewPartHandler creates a new part handler.
func NewPartHandler(service service.PartService, logger zerolog.Logger) *PartHandler {
	return &PartHandler{
		service: service,
		logger:  logger.With().Str("handler", "part").Logger(),
	}
}

// List handles GET /api/parts requests.
func (h *PartHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	offset, err := queryInt(r, "offset")
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	parts, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, parts)
}

// Search handles GET /api/parts/search?q= requests.
func (h *PartHandler) Search(w http.ResponseWriter, r *http.Request) {
	parts, err := h.service.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, parts)
}

// GetByID handles GET /api/parts/{id} requests.
func (h *PartHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	part, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, part)
}

// Create handles POST /api/parts requests.
func (h *PartHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreatePartRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	part, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, part)
}

// Update handles PUT /api/parts/{id} requests.
func (h *PartHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	var upd model.PartUpdate
	if err := decodeJSON(r, &upd); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	part, err := h.service.Update(r.Context(), id, &upd)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, part)
}

// Delete handles DELETE /api/parts/{id} requests.
func (h *PartHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, okResponse{OK: true})
}
