package usecase

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/diillson/aws-billing-dashboard-go/internal/domain/entity"
	"github.com/diillson/aws-billing-dashboard-go/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBillingRepository struct {
	costReportFunc  func(ctx context.Context, rng entity.DateRange) (entity.CostReport, error)
	trendReportFunc func(ctx context.Context, ranges []entity.DateRange) ([]entity.TrendPoint, error)
}

func (s *stubBillingRepository) GetCostReport(ctx context.Context, rng entity.DateRange) (entity.CostReport, error) {
	return s.costReportFunc(ctx, rng)
}

func (s *stubBillingRepository) GetTrendReport(ctx context.Context, ranges []entity.DateRange) ([]entity.TrendPoint, error) {
	return s.trendReportFunc(ctx, ranges)
}

func (s *stubBillingRepository) CheckAccess(ctx context.Context) (entity.AccessReport, error) {
	return entity.AccessReport{}, nil
}

func juneClock() time.Time {
	return time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
}

func TestCostReport_InvalidMonthSkipsUpstream(t *testing.T) {
	repo := &stubBillingRepository{
		costReportFunc: func(ctx context.Context, rng entity.DateRange) (entity.CostReport, error) {
			t.Fatal("upstream must not be called")
			return entity.CostReport{}, nil
		},
	}
	uc := NewBillingUseCase(repo, nil, nil, 83).WithClock(juneClock)

	_, err := uc.CostReport(context.Background(), "2024-13")
	require.Error(t, err)

	var be *types.BillingError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, http.StatusBadRequest, be.StatusCode)
	assert.Equal(t, "Invalid month format", be.Code)
}

func TestCostReport_ClampsFutureMonth(t *testing.T) {
	var queried entity.DateRange
	repo := &stubBillingRepository{
		costReportFunc: func(ctx context.Context, rng entity.DateRange) (entity.CostReport, error) {
			queried = rng
			return entity.CostReport{Month: rng.Month()}, nil
		},
	}
	uc := NewBillingUseCase(repo, nil, nil, 83).WithClock(juneClock)

	report, err := uc.CostReport(context.Background(), "2030-01")
	require.NoError(t, err)

	assert.Equal(t, "2025-06", queried.Month().String())
	assert.Equal(t, "2025-06", report.Month.String())
}

func TestCostReport_ClassifiesUpstreamError(t *testing.T) {
	repo := &stubBillingRepository{
		costReportFunc: func(ctx context.Context, rng entity.DateRange) (entity.CostReport, error) {
			return entity.CostReport{}, errors.New("socket timeout")
		},
	}
	uc := NewBillingUseCase(repo, nil, nil, 83).WithClock(juneClock)

	_, err := uc.CostReport(context.Background(), "")
	require.Error(t, err)

	var be *types.BillingError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, http.StatusInternalServerError, be.StatusCode)
	assert.Equal(t, "Failed to retrieve billing data", be.Code)
	assert.Equal(t, "socket timeout", be.Message)
}

func TestTrendReport_WindowEndsWithCurrentMonth(t *testing.T) {
	var queried []entity.DateRange
	repo := &stubBillingRepository{
		trendReportFunc: func(ctx context.Context, ranges []entity.DateRange) ([]entity.TrendPoint, error) {
			queried = ranges
			return []entity.TrendPoint{}, nil
		},
	}
	uc := NewBillingUseCase(repo, nil, nil, 83).WithClock(juneClock)

	_, err := uc.TrendReport(context.Background(), entity.DefaultTrendMonths)
	require.NoError(t, err)

	require.Len(t, queried, 6)
	assert.Equal(t, "2025-01", queried[0].Month().String())
	assert.Equal(t, "2025-06", queried[5].Month().String())
}
