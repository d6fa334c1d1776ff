package repository

import (
	"context"

	"github.com/diillson/aws-billing-dashboard-go/internal/domain/entity"
)

// BillingRepository defines the interface for the upstream billing API.
type BillingRepository interface {
	// GetCostReport returns the total cost and per-service breakdown for a
	// single month range. Either underlying query failing fails the whole
	// call; there is no partial report.
	GetCostReport(ctx context.Context, r entity.DateRange) (entity.CostReport, error)

	// GetTrendReport returns one total-cost point per range, in the same
	// order as the input ranges.
	GetTrendReport(ctx context.Context, ranges []entity.DateRange) ([]entity.TrendPoint, error)

	// CheckAccess verifies the configured credentials: resolves the caller
	// identity and probes Cost Explorer with a minimal query.
	CheckAccess(ctx context.Context) (entity.AccessReport, error)
}
