package handler

import (
	"net/http"

	"partshop/internal/service"

	"github.com/rs/zerolog"
)

// ReportHandler serves sales reports.
type ReportHandler struct {
	service service.ReportService
	logger  zerolog.Logger
}

// NewReportHandler creates a new report handler.
func NewReportHandler(service service.ReportService, logger zerolog.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		logger:  logger.With().Str("handler", "report").Logger(),
	}
}

// DailySales handles GET /api/reports/daily-sales?date= requests.
func (h *ReportHandler) DailySales(w http.ResponseWriter, r *http.Request) {
	total, err := h.service.DailySales(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, total)
}

// WeeklySales handles GET /api/reports/weekly-sales?startDate= requests.
func (h *ReportHandler) WeeklySales(w http.ResponseWriter, r *http.Request) {
	total, err := h.service.WeeklySales(r.Context(), r.URL.Query().Get("startDate"))
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, total)
}

// MonthlySales handles GET /api/reports/monthly-sales?year=&month= requests.
func (h *ReportHandler) MonthlySales(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	total, err := h.service.MonthlySales(r.Context(), q.Get("year"), q.Get("month"))
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, total)
}

// EmployeeActivity handles GET /api/reports/employee-activity/{employeeId} requests.
func (h *ReportHandler) EmployeeActivity(w http.ResponseWriter, r *http.Request) {
	employeeID, err := pathID(r, "employeeId")
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	q := r.URL.Query()
	activity, err := h.service.EmployeeActivity(r.Context(), employeeID, q.Get("startDate"), q.Get("endDate"))
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, activity)
}
