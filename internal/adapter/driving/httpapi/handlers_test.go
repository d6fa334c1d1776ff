package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aws/smithy-go"
	"github.com/diillson/aws-billing-dashboard-go/internal/application/usecase"
	"github.com/diillson/aws-billing-dashboard-go/internal/domain/entity"
	"github.com/diillson/aws-billing-dashboard-go/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *types.Config {
	cfg := types.DefaultConfig()
	cfg.Production = false
	return cfg
}

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

func fixedJune2025() time.Time {
	return time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
}

func newTestServer(t *testing.T, repo *stubBillingRepository) *Server {
	t.Helper()
	uc := usecase.NewBillingUseCase(repo, nil, nil, 83).WithClock(fixedJune2025)
	return NewServer(testConfig(), uc)
}

func TestHandleCosts_OK(t *testing.T) {
	repo := &stubBillingRepository{
		costReportFunc: func(ctx context.Context, rng entity.DateRange) (entity.CostReport, error) {
			return entity.CostReport{
				Month:     rng.Month(),
				TotalCost: entity.ParseAmount("123.456"),
				Services: []entity.ServiceCostEntry{
					{Name: "Amazon EC2", Cost: entity.ParseAmount("100.00")},
					{Name: "Amazon S3", Cost: entity.Unavailable()},
				},
			}, nil
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/costs?month=2025-03", nil)
	newTestServer(t, repo).Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		Month     string `json:"month"`
		TotalCost string `json:"totalCost"`
		Services  []struct {
			Name string  `json:"name"`
			Cost *string `json:"cost"`
		} `json:"services"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, "2025-03", body.Month)
	assert.Equal(t, "123.46", body.TotalCost)
	require.Len(t, body.Services, 2)
	assert.Equal(t, "Amazon EC2", body.Services[0].Name)
	require.NotNil(t, body.Services[0].Cost)
	assert.Equal(t, "100.00", *body.Services[0].Cost)
	assert.Nil(t, body.Services[1].Cost, "unavailable cost must serialize as null")
}

func TestHandleCosts_InvalidMonth(t *testing.T) {
	repo := &stubBillingRepository{
		costReportFunc: func(ctx context.Context, rng entity.DateRange) (entity.CostReport, error) {
			t.Fatal("upstream must not be queried for an invalid month")
			return entity.CostReport{}, nil
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/costs?month=2024-13", nil)
	newTestServer(t, repo).Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Invalid month format", body.Error)
	assert.Equal(t, "Month must be in YYYY-MM format", body.Message)
}

func TestHandleCosts_AccessDenied(t *testing.T) {
	repo := &stubBillingRepository{
		costReportFunc: func(ctx context.Context, rng entity.DateRange) (entity.CostReport, error) {
			return entity.CostReport{}, &smithy.GenericAPIError{
				Code:    "AccessDeniedException",
				Message: "not authorized",
			}
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/costs", nil)
	newTestServer(t, repo).Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)

	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Access denied", body.Error)
}

func TestHandleCosts_AuthenticationFailed(t *testing.T) {
	repo := &stubBillingRepository{
		costReportFunc: func(ctx context.Context, rng entity.DateRange) (entity.CostReport, error) {
			return entity.CostReport{}, &smithy.GenericAPIError{
				Code:    "UnrecognizedClientException",
				Message: "invalid token",
			}
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/costs", nil)
	newTestServer(t, repo).Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Authentication failed", body.Error)
}

func TestHandleTrend_DefaultWindow(t *testing.T) {
	repo := &stubBillingRepository{
		trendReportFunc: func(ctx context.Context, ranges []entity.DateRange) ([]entity.TrendPoint, error) {
			points := make([]entity.TrendPoint, len(ranges))
			for i, rng := range ranges {
				month := rng.Month()
				points[i] = entity.TrendPoint{
					Month:          month,
					FormattedMonth: month.Label(),
					TotalCost:      entity.AmountFromFloat(float64(i + 1)),
				}
			}
			return points, nil
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/costs/trend", nil)
	newTestServer(t, repo).Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body []struct {
		Month          string `json:"month"`
		FormattedMonth string `json:"formattedMonth"`
		TotalCost      string `json:"totalCost"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	require.Len(t, body, entity.DefaultTrendMonths)
	assert.Equal(t, "2025-01", body[0].Month)
	assert.Equal(t, "Jan 2025", body[0].FormattedMonth)
	assert.Equal(t, "2025-06", body[5].Month)
	assert.Equal(t, "1.00", body[0].TotalCost)
}

func TestHandleTrend_ClampsMonthsParameter(t *testing.T) {
	var seen int
	repo := &stubBillingRepository{
		trendReportFunc: func(ctx context.Context, ranges []entity.DateRange) ([]entity.TrendPoint, error) {
			seen = len(ranges)
			return []entity.TrendPoint{}, nil
		},
	}
	srv := newTestServer(t, repo)

	cases := map[string]int{
		"20":    12,
		"1":     2,
		"3":     3,
		"bogus": 6,
		"":      6,
	}
	for raw, want := range cases {
		url := "/api/costs/trend"
		if raw != "" {
			url += "?months=" + raw
		}
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))

		require.Equal(t, http.StatusOK, rec.Code, "months=%q", raw)
		assert.Equal(t, want, seen, "months=%q", raw)
	}
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(t, &stubBillingRepository{})

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestCORSHeaders(t *testing.T) {
	srv := newTestServer(t, &stubBillingRepository{})

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/health", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t, &stubBillingRepository{})

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}
