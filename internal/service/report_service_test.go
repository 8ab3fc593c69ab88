package service

import (
	"context"
	"testing"
	"time"

	"partshop/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func utcDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestReportService_SalesRanges(t *testing.T) {
	total := model.SalesTotal{Total: dec("84.98")}

	tests := []struct {
		name     string
		call     func(ReportService) (model.SalesTotal, error)
		from, to time.Time
	}{
		{
			name: "daily",
			call: func(s ReportService) (model.SalesTotal, error) {
				return s.DailySales(context.Background(), "2024-03-10")
			},
			from: utcDate(2024, 3, 10),
			to:   utcDate(2024, 3, 11),
		},
		{
			name: "daily defaults to today",
			call: func(s ReportService) (model.SalesTotal, error) {
				return s.DailySales(context.Background(), "")
			},
			from: utcDate(2024, 5, 1),
			to:   utcDate(2024, 5, 2),
		},
		{
			name: "weekly",
			call: func(s ReportService) (model.SalesTotal, error) {
				return s.WeeklySales(context.Background(), "2024-02-26")
			},
			from: utcDate(2024, 2, 26),
			to:   utcDate(2024, 3, 4),
		},
		{
			name: "monthly",
			call: func(s ReportService) (model.SalesTotal, error) {
				return s.MonthlySales(context.Background(), "2024", "12")
			},
			from: utcDate(2024, 12, 1),
			to:   utcDate(2025, 1, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockReportRepository)
			repo.On("SalesBetween", mock.Anything, tt.from, tt.to).Return(total, nil)
			svc := NewReportService(repo, zerolog.Nop()).(*reportService)
			svc.now = func() time.Time { return time.Date(2024, 5, 1, 17, 30, 0, 0, time.UTC) }

			got, err := tt.call(svc)

			require.NoError(t, err)
			assert.True(t, got.Total.Equal(total.Total))
			repo.AssertExpectations(t)
		})
	}
}

func TestReportService_InvalidInput(t *testing.T) {
	svc := NewReportService(new(MockReportRepository), zerolog.Nop())
	ctx := context.Background()

	_, err := svc.DailySales(ctx, "10/03/2024")
	assert.Equal(t, model.ErrCodeValidationFailed, model.ErrorCode(err))

	_, err = svc.WeeklySales(ctx, "")
	assert.Equal(t, model.ErrCodeValidationFailed, model.ErrorCode(err))

	_, err = svc.MonthlySales(ctx, "2024", "")
	assert.Equal(t, model.ErrCodeValidationFailed, model.ErrorCode(err))

	_, err = svc.MonthlySales(ctx, "2024", "13")
	assert.Equal(t, model.ErrCodeValidationFailed, model.ErrorCode(err))

	_, err = svc.EmployeeActivity(ctx, 1, "yesterday", "")
	assert.Equal(t, model.ErrCodeValidationFailed, model.ErrorCode(err))
}

func TestReportService_EmployeeActivity(t *testing.T) {
	repo := new(MockReportRepository)
	from := utcDate(2024, 1, 1)
	to := utcDate(2024, 2, 1)
	repo.On("EmployeeActivity", mock.Anything, int64(3), &from, &to).
		Return(model.EmployeeActivity{OrdersHandled: 2, TotalSales: dec("100")}, nil)
	repo.On("EmployeeActivity", mock.Anything, int64(3), (*time.Time)(nil), (*time.Time)(nil)).
		Return(model.EmployeeActivity{OrdersHandled: 5, TotalSales: dec("250")}, nil)
	svc := NewReportService(repo, zerolog.Nop())

	ranged, err := svc.EmployeeActivity(context.Background(), 3, "2024-01-01", "2024-01-31")
	require.NoError(t, err)
	assert.Equal(t, int64(2), ranged.OrdersHandled)

	all, err := svc.EmployeeActivity(context.Background(), 3, "", "")
	require.NoError(t, err)
	assert.Equal(t, int64(5), all.OrdersHandled)
}
