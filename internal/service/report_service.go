package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"partshop/internal/model"
	"partshop/internal/repository"

	"github.com/rs/zerolog"
)

const dateLayout = "2006-01-02"

type reportService struct {
	reportRepo repository.ReportRepository
	now        func() time.Time
	logger     zerolog.Logger
}

// NewReportService creates a new report service.
func NewReportService(reportRepo repository.ReportRepository, logger zerolog.Logger) ReportService {
	return &reportService{
		reportRepo: reportRepo,
		now:        time.Now,
		logger:     logger.With().Str("service", "report").Logger(),
	}
}

// DailySales totals the orders placed on date, today when empty.
func (s *reportService) DailySales(ctx context.Context, date string) (model.SalesTotal, error) {
	day := s.now().UTC().Truncate(24 * time.Hour)
	if date != "" {
		var err error
		if day, err = parseDate("date", date); err != nil {
			return model.SalesTotal{}, err
		}
	}
	return s.salesBetween(ctx, day, day.AddDate(0, 0, 1))
}

// WeeklySales totals the seven days starting at startDate.
func (s *reportService) WeeklySales(ctx context.Context, startDate string) (model.SalesTotal, error) {
	if startDate == "" {
		return model.SalesTotal{}, model.NewValidationError("startDate is required")
	}
	start, err := parseDate("startDate", startDate)
	if err != nil {
		return model.SalesTotal{}, err
	}
	return s.salesBetween(ctx, start, start.AddDate(0, 0, 7))
}

// MonthlySales totals one calendar month.
func (s *reportService) MonthlySales(ctx context.Context, year, month string) (model.SalesTotal, error) {
	if year == "" || month == "" {
		return model.SalesTotal{}, model.NewValidationError("year and month are required")
	}
	y, err := strconv.Atoi(year)
	if err != nil || y < 1 {
		return model.SalesTotal{}, model.NewValidationError("year must be a number")
	}
	m, err := strconv.Atoi(month)
	if err != nil || m < 1 || m > 12 {
		return model.SalesTotal{}, model.NewValidationError("month must be between 1 and 12")
	}

	start := time.Date(y, time.Month(m), 1, 0, 0, 0, 0, time.UTC)
	return s.salesBetween(ctx, start, start.AddDate(0, 1, 0))
}

// EmployeeActivity summarises the orders an employee handled. Both dates are
// optional; endDate includes the whole day.
func (s *reportService) EmployeeActivity(ctx context.Context, employeeID int64, startDate, endDate string) (model.EmployeeActivity, error) {
	var from, to *time.Time
	if startDate != "" {
		start, err := parseDate("startDate", startDate)
		if err != nil {
			return model.EmployeeActivity{}, err
		}
		from = &start
	}
	if endDate != "" {
		end, err := parseDate("endDate", endDate)
		if err != nil {
			return model.EmployeeActivity{}, err
		}
		end = end.AddDate(0, 0, 1)
		to = &end
	}

	activity, err := s.reportRepo.EmployeeActivity(ctx, employeeID, from, to)
	if err != nil {
		s.logger.Error().Ctx(ctx).Err(err).Int64("employee_id", employeeID).Msg("failed to compute employee activity")
		return model.EmployeeActivity{}, fmt.Errorf("failed to compute employee activity: %w", err)
	}
	return activity, nil
}

func (s *reportService) salesBetween(ctx context.Context, from, to time.Time) (model.SalesTotal, error) {
	total, err := s.reportRepo.SalesBetween(ctx, from, to)
	if err != nil {
		s.logger.Error().
			Ctx(ctx).
			Err(err).
			Time("from", from).
			Time("to", to).
			Msg("failed to compute sales")
		return model.SalesTotal{}, fmt.Errorf("failed to compute sales: %w", err)
	}
	return total, nil
}

func parseDate(field, value string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, model.NewValidationError(field + " must be a date in YYYY-MM-DD format")
	}
	return t, nil
}
