package aws

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	ceTypes "github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/diillson/aws-billing-dashboard-go/internal/domain/entity"
	"github.com/diillson/aws-billing-dashboard-go/internal/domain/repository"
	"github.com/diillson/aws-billing-dashboard-go/internal/shared/logging"
	"go.uber.org/zap"
)

const dateFormat = "2006-01-02"

// nowUTC is injectable for testing.
var nowUTC = func() time.Time { return time.Now().UTC() }

// CostExplorerAPI is the subset of the Cost Explorer client we use.
type CostExplorerAPI interface {
	GetCostAndUsage(ctx context.Context, params *costexplorer.GetCostAndUsageInput, optFns ...func(*costexplorer.Options)) (*costexplorer.GetCostAndUsageOutput, error)
}

// STSAPI is the subset of the STS client used by the credential check.
type STSAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// BillingRepositoryImpl implements the BillingRepository against the AWS Cost
// Explorer API. The client configuration is built once at construction and
// never mutated afterwards.
type BillingRepositoryImpl struct {
	ce  CostExplorerAPI
	sts STSAPI
}

// NewBillingRepository loads the default AWS configuration and builds the
// repository. Cost Explorer is a global API served from us-east-1, so the
// client region is pinned there regardless of the configured region.
func NewBillingRepository(ctx context.Context, region string) (repository.BillingRepository, error) {
	if region == "" {
		region = "us-east-1"
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	ceCfg := cfg.Copy()
	ceCfg.Region = "us-east-1"

	return &BillingRepositoryImpl{
		ce:  costexplorer.NewFromConfig(ceCfg),
		sts: sts.NewFromConfig(cfg),
	}, nil
}

// NewBillingRepositoryWithAPI builds a repository with custom API
// implementations (for testing).
func NewBillingRepositoryWithAPI(ce CostExplorerAPI, stsAPI STSAPI) *BillingRepositoryImpl {
	return &BillingRepositoryImpl{ce: ce, sts: stsAPI}
}

// GetCostReport issues the total-cost and per-service queries for the range
// concurrently and combines them into one report. Either query failing fails
// the whole operation.
func (r *BillingRepositoryImpl) GetCostReport(ctx context.Context, rng entity.DateRange) (entity.CostReport, error) {
	var (
		total    entity.Amount
		services []entity.ServiceCostEntry
		wg       sync.WaitGroup
		errChan  = make(chan error, 2)
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		cost, err := r.getTotalCost(ctx, rng)
		if err != nil {
			errChan <- fmt.Errorf("failed to get total cost: %w", err)
			return
		}
		total = cost
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		byService, err := r.getCostByService(ctx, rng)
		if err != nil {
			errChan <- fmt.Errorf("failed to get cost by service: %w", err)
			return
		}
		services = byService
	}()

	wg.Wait()
	close(errChan)

	if len(errChan) > 0 {
		return entity.CostReport{}, <-errChan
	}

	return entity.CostReport{
		Month:     rng.Month(),
		TotalCost: total,
		Services:  services,
	}, nil
}

// GetTrendReport queries each range concurrently and gathers the points by
// input index, so the result order never depends on completion order. Any
// single query failing aborts the whole report.
func (r *BillingRepositoryImpl) GetTrendReport(ctx context.Context, ranges []entity.DateRange) ([]entity.TrendPoint, error) {
	points := make([]entity.TrendPoint, len(ranges))
	errs := make([]error, len(ranges))

	var wg sync.WaitGroup
	for i, rng := range ranges {
		wg.Add(1)
		go func(i int, rng entity.DateRange) {
			defer wg.Done()
			cost, err := r.getTotalCost(ctx, rng)
			if err != nil {
				errs[i] = fmt.Errorf("failed to get cost for %s: %w", rng.Month(), err)
				return
			}
			month := rng.Month()
			points[i] = entity.TrendPoint{
				Month:          month,
				FormattedMonth: month.Label(),
				TotalCost:      cost,
			}
		}(i, rng)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return points, nil
}

// CheckAccess resolves the caller identity and probes Cost Explorer with a
// one-month query, reporting whether the billing API is reachable with the
// configured credentials.
func (r *BillingRepositoryImpl) CheckAccess(ctx context.Context) (entity.AccessReport, error) {
	identity, err := r.sts.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return entity.AccessReport{}, fmt.Errorf("error getting caller identity: %w", err)
	}

	report := entity.AccessReport{
		AccountID: aws.ToString(identity.Account),
		CallerARN: aws.ToString(identity.Arn),
	}

	probe := entity.MonthOf(nowUTC()).AddMonths(-1).Range()
	if _, err := r.getTotalCost(ctx, probe); err != nil {
		report.CostAccess = false
		report.CostMessage = err.Error()
		return report, nil
	}
	report.CostAccess = true
	return report, nil
}

func (r *BillingRepositoryImpl) getTotalCost(ctx context.Context, rng entity.DateRange) (entity.Amount, error) {
	input := &costexplorer.GetCostAndUsageInput{
		TimePeriod: &ceTypes.DateInterval{
			Start: aws.String(rng.Start.Format(dateFormat)),
			End:   aws.String(rng.End.Format(dateFormat)),
		},
		Granularity: ceTypes.GranularityMonthly,
		Metrics:     []string{"UnblendedCost"},
	}

	result, err := r.ce.GetCostAndUsage(ctx, input)
	if err != nil {
		return entity.Unavailable(), err
	}

	if len(result.ResultsByTime) == 0 || result.ResultsByTime[0].Total == nil {
		logging.Logger.Warn("cost explorer returned no results for period",
			zap.String("start", rng.Start.Format(dateFormat)),
			zap.String("end", rng.End.Format(dateFormat)))
		return entity.AmountFromFloat(0), nil
	}

	val, ok := result.ResultsByTime[0].Total["UnblendedCost"]
	if !ok || val.Amount == nil {
		return entity.AmountFromFloat(0), nil
	}
	return entity.ParseAmount(aws.ToString(val.Amount)), nil
}

func (r *BillingRepositoryImpl) getCostByService(ctx context.Context, rng entity.DateRange) ([]entity.ServiceCostEntry, error) {
	input := &costexplorer.GetCostAndUsageInput{
		TimePeriod: &ceTypes.DateInterval{
			Start: aws.String(rng.Start.Format(dateFormat)),
			End:   aws.String(rng.End.Format(dateFormat)),
		},
		Granularity: ceTypes.GranularityMonthly,
		Metrics:     []string{"UnblendedCost"},
		GroupBy: []ceTypes.GroupDefinition{
			{Type: ceTypes.GroupDefinitionTypeDimension, Key: aws.String("SERVICE")},
		},
	}

	result, err := r.ce.GetCostAndUsage(ctx, input)
	if err != nil {
		return nil, err
	}

	var entries []entity.ServiceCostEntry
	if len(result.ResultsByTime) > 0 {
		for _, group := range result.ResultsByTime[0].Groups {
			if len(group.Keys) == 0 {
				continue
			}
			metric, ok := group.Metrics["UnblendedCost"]
			if !ok || metric.Amount == nil {
				continue
			}
			// Upstream grouping order is preserved; no re-sort.
			entries = append(entries, entity.ServiceCostEntry{
				Name: group.Keys[0],
				Cost: entity.ParseAmount(aws.ToString(metric.Amount)),
			})
		}
	}
	return entries, nil
}
