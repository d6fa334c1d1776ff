package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/diillson/aws-billing-dashboard-go/internal/domain/entity"
	"github.com/diillson/aws-billing-dashboard-go/internal/domain/repository"
	"github.com/diillson/aws-billing-dashboard-go/internal/shared/logging"
	"github.com/diillson/aws-billing-dashboard-go/internal/shared/types"
	"go.uber.org/zap"
)

// BillingUseCase orchestrates period resolution, upstream queries and error
// classification. It is the single entry point used by both the HTTP API and
// the CLI report command.
type BillingUseCase struct {
	billingRepo repository.BillingRepository
	exportRepo  repository.ExportRepository
	console     types.ConsoleInterface
	converter   entity.Converter
	clock       func() time.Time
}

// NewBillingUseCase creates a new billing use case. The currency rate is
// injected here so nothing downstream hard-codes it.
func NewBillingUseCase(
	billingRepo repository.BillingRepository,
	exportRepo repository.ExportRepository,
	console types.ConsoleInterface,
	currencyRate float64,
) *BillingUseCase {
	return &BillingUseCase{
		billingRepo: billingRepo,
		exportRepo:  exportRepo,
		console:     console,
		converter:   entity.NewConverter(currencyRate),
		clock:       func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the wall clock (for testing).
func (uc *BillingUseCase) WithClock(clock func() time.Time) *BillingUseCase {
	uc.clock = clock
	return uc
}

// Converter exposes the configured currency converter for presentation
// layers.
func (uc *BillingUseCase) Converter() entity.Converter {
	return uc.converter
}

// CostReport resolves the requested month and fetches the normalized report.
// Errors are always returned classified as *types.BillingError.
func (uc *BillingUseCase) CostReport(ctx context.Context, month string) (entity.CostReport, error) {
	rng, err := entity.ResolvePeriod(month, uc.clock())
	if err != nil {
		return entity.CostReport{}, types.NewInvalidMonthError(err)
	}

	report, err := uc.billingRepo.GetCostReport(ctx, rng)
	if err != nil {
		classified := types.ClassifyAWSError(err)
		logging.Logger.Error("cost report failed",
			zap.String("month", rng.Month().String()),
			zap.String("kind", string(classified.Kind)),
			zap.Error(err))
		return entity.CostReport{}, classified
	}
	return report, nil
}

// TrendReport fetches the trailing-month trend. The count is clamped by the
// window generator; callers pass entity.DefaultTrendMonths when the parameter
// was absent or non-numeric.
func (uc *BillingUseCase) TrendReport(ctx context.Context, months int) ([]entity.TrendPoint, error) {
	ranges := entity.TrendWindow(months, uc.clock())

	points, err := uc.billingRepo.GetTrendReport(ctx, ranges)
	if err != nil {
		classified := types.ClassifyAWSError(err)
		logging.Logger.Error("trend report failed",
			zap.Int("months", len(ranges)),
			zap.String("kind", string(classified.Kind)),
			zap.Error(err))
		return nil, classified
	}
	return points, nil
}

// RunReport drives the terminal report command: fetches the month or trend
// report, prints it, and writes any requested export files.
func (uc *BillingUseCase) RunReport(ctx context.Context, args *types.CLIArgs) error {
	if args.CurrencyRate > 0 {
		uc.converter = entity.NewConverter(args.CurrencyRate)
	}

	if args.Trend {
		return uc.runTrendReport(ctx, args)
	}
	return uc.runCostReport(ctx, args)
}

func (uc *BillingUseCase) runCostReport(ctx context.Context, args *types.CLIArgs) error {
	report, err := uc.CostReport(ctx, args.Month)
	if err != nil {
		return err
	}

	uc.console.LogInfo("Cost report for %s", report.Month.Label())
	rows := [][]string{{
		"Total", report.TotalCost.String(), uc.converter.Convert(report.TotalCost).String(),
	}}
	for _, svc := range report.Services {
		rows = append(rows, []string{svc.Name, svc.Cost.String(), uc.converter.Convert(svc.Cost).String()})
	}
	uc.console.PrintTable([]string{"Service", "Cost (USD)", "Cost (INR)"}, rows)

	for _, reportType := range args.ReportType {
		var path string
		var expErr error
		switch reportType {
		case "csv":
			path, expErr = uc.exportRepo.ExportCostReportToCSV(report, uc.converter, args.ReportName, args.Dir)
		case "json":
			path, expErr = uc.exportRepo.ExportCostReportToJSON(report, args.ReportName, args.Dir)
		case "pdf":
			path, expErr = uc.exportRepo.ExportCostReportToPDF(report, uc.converter, args.ReportName, args.Dir)
		default:
			uc.console.LogWarning("Unknown report type: %s", reportType)
			continue
		}
		if expErr != nil {
			return fmt.Errorf("failed to export %s report: %w", reportType, expErr)
		}
		uc.console.LogSuccess("Report saved to %s", path)
	}
	return nil
}

func (uc *BillingUseCase) runTrendReport(ctx context.Context, args *types.CLIArgs) error {
	months := args.TrendMonths
	if months == 0 {
		months = entity.DefaultTrendMonths
	}

	points, err := uc.TrendReport(ctx, months)
	if err != nil {
		return err
	}

	uc.console.LogInfo("Cost trend for the past %d months", len(points))
	rows := make([][]string, 0, len(points))
	for _, p := range points {
		rows = append(rows, []string{p.FormattedMonth, p.TotalCost.String(), uc.converter.Convert(p.TotalCost).String()})
	}
	uc.console.PrintTable([]string{"Month", "Total (USD)", "Total (INR)"}, rows)

	for _, reportType := range args.ReportType {
		var path string
		var expErr error
		switch reportType {
		case "csv":
			path, expErr = uc.exportRepo.ExportTrendReportToCSV(points, uc.converter, args.ReportName, args.Dir)
		case "json":
			path, expErr = uc.exportRepo.ExportTrendReportToJSON(points, args.ReportName, args.Dir)
		case "pdf":
			path, expErr = uc.exportRepo.ExportTrendReportToPDF(points, uc.converter, args.ReportName, args.Dir)
		default:
			uc.console.LogWarning("Unknown report type: %s", reportType)
			continue
		}
		if expErr != nil {
			return fmt.Errorf("failed to export %s report: %w", reportType, expErr)
		}
		uc.console.LogSuccess("Report saved to %s", path)
	}
	return nil
}

// RunCheck verifies credentials and Cost Explorer access, printing the
// outcome of each probe.
func (uc *BillingUseCase) RunCheck(ctx context.Context) error {
	report, err := uc.billingRepo.CheckAccess(ctx)
	if err != nil {
		uc.console.LogError("Could not resolve caller identity: %v", err)
		return types.ClassifyAWSError(err)
	}

	uc.console.LogSuccess("Authenticated as: %s", report.CallerARN)
	uc.console.LogInfo("Account ID: %s", report.AccountID)
	if report.CostAccess {
		uc.console.LogSuccess("Cost Explorer access: available")
	} else {
		uc.console.LogError("Cost Explorer access: not available")
		uc.console.LogError("  %s", report.CostMessage)
	}
	return nil
}
