package handler

import (
	"net/http"

	"partshop/internal/model"
	"partshop/internal/service"

	"github.com/rs/zerolog"
)

// EmployeeHandler handles staff management requests.
type EmployeeHandler struct {
	service service.EmployeeService
	logger  zerolog.Logger
}

// NewEmployeeHandler creates a new employee handler.
func NewEmployeeHandler(service service.EmployeeService, logger zerolog.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		service: service,
		logger:  logger.With().Str("handler", "employee").Logger(),
	}
}

func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	employees, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, employees)
}

func (h *EmployeeHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	employee, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, employee)
}

func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateEmployeeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	employee, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, employee)
}

func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	var upd model.EmployeeUpdate
	if err := decodeJSON(r, &upd); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	employee, err := h.service.Update(r.Context(), id, &upd)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, employee)
}

func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

// StoreHandler handles store location requests.
type StoreHandler struct {
	service service.StoreService
	logger  zerolog.Logger
}

// NewStoreHandler creates a new store handler.
func NewStoreHandler(service service.StoreService, logger zerolog.Logger) *StoreHandler {
	return &StoreHandler{
		service: service,
		logger:  logger.With().Str("handler", "store").Logger(),
	}
}

func (h *StoreHandler) List(w http.ResponseWriter, r *http.Request) {
	stores, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, stores)
}

func (h *StoreHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	store, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, store)
}

func (h *StoreHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateStoreRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	store, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, store)
}

func (h *StoreHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	var upd model.StoreUpdate
	if err := decodeJSON(r, &upd); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	store, err := h.service.Update(r.Context(), id, &upd)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, store)
}

// InventoryHandler handles stock level requests.
type InventoryHandler struct {
	service service.InventoryService
	logger  zerolog.Logger
}

// NewInventoryHandler creates a new inventory handler.
func NewInventoryHandler(service service.InventoryService, logger zerolog.Logger) *InventoryHandler {
	return &InventoryHandler{
		service: service,
		logger:  logger.With().Str("handler", "inventory").Logger(),
	}
}

// ListByStore handles GET /api/inventory/store/{storeId} requests.
func (h *InventoryHandler) ListByStore(w http.ResponseWriter, r *http.Request) {
	storeID, err := pathID(r, "storeId")
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	items, err := h.service.ListByStore(r.Context(), storeID)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// ListLowStock handles GET /api/inventory/store/{storeId}/low-stock requests.
func (h *InventoryHandler) ListLowStock(w http.ResponseWriter, r *http.Request) {
	storeID, err := pathID(r, "storeId")
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	items, err := h.service.ListLowStock(r.Context(), storeID)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// UpdateQuantity handles PUT /api/inventory/{id} requests.
func (h *InventoryHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	var req model.UpdateInventoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	item, err := h.service.UpdateQuantity(r.Context(), id, req.Quantity)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, item)
}
