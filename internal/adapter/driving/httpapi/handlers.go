package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/diillson/aws-billing-dashboard-go/internal/domain/entity"
	"github.com/diillson/aws-billing-dashboard-go/internal/shared/types"
)

// errorResponse is the error body of the legacy contract: a short
// machine-readable code and a human-readable message.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// handleCosts serves GET /api/costs?month=YYYY-MM.
func (s *Server) handleCosts(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")

	report, err := s.useCase.CostReport(r.Context(), month)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, report)
}

// handleTrend serves GET /api/costs/trend?months=N. An absent or non-numeric
// months parameter falls back to the default window; out-of-range values are
// clamped rather than rejected.
func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	months := entity.DefaultTrendMonths
	if raw := r.URL.Query().Get("months"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			months = parsed
		}
	}

	points, err := s.useCase.TrendReport(r.Context(), months)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, points)
}

// handleHealth serves GET /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	var be *types.BillingError
	if !errors.As(err, &be) {
		be = types.ClassifyAWSError(err)
	}
	if be.Kind != types.KindInvalidInput {
		s.metrics.upstreamErrors.WithLabelValues(string(be.Kind)).Inc()
	}
	s.writeJSON(w, be.StatusCode, errorResponse{Error: be.Code, Message: be.Message})
}
