package finance

import (
	"context"

	"github.com/erp/finance-engine/internal/domain/finance"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// VarianceService runs cost variance analysis over completed production
// orders.
type VarianceService struct {
	costs    finance.ProductionCostSource
	analyzer *finance.VarianceAnalyzer
	logger   *zap.Logger
}

// NewVarianceService creates a new VarianceService
func NewVarianceService(costs finance.ProductionCostSource, policy finance.CostingPolicy, logger *zap.Logger) *VarianceService {
	return &VarianceService{
		costs:    costs,
		analyzer: finance.NewVarianceAnalyzer(policy),
		logger:   logger,
	}
}

// AnalyzeOrder analyzes a single production cost record.
func (s *VarianceService) AnalyzeOrder(rec finance.ProductionCostRecord) (*finance.CostVarianceReport, error) {
	return s.analyzer.Analyze(rec)
}

// VarianceSummary aggregates the variance reports of a window.
type VarianceSummary struct {
	Reports            []finance.CostVarianceReport `json:"reports"`
	TotalStandardCost  decimal.Decimal              `json:"total_standard_cost"`
	TotalActualCost    decimal.Decimal              `json:"total_actual_cost"`
	TotalVariance      decimal.Decimal              `json:"total_variance"`
	VariancePercentage decimal.Decimal              `json:"variance_percentage"` // 0 when standard total is 0
}

// AnalyzeWindow analyzes every production order completed in the window.
// A malformed record fails the whole summary rather than producing a
// partial one.
func (s *VarianceService) AnalyzeWindow(ctx context.Context, window finance.DateRange) (*VarianceSummary, error) {
	if err := window.Validate(); err != nil {
		return nil, err
	}

	records, err := s.costs.CompletedOrders(ctx, window)
	if err != nil {
		return nil, err
	}

	summary := &VarianceSummary{Reports: make([]finance.CostVarianceReport, 0, len(records))}
	for _, rec := range records {
		report, err := s.analyzer.Analyze(rec)
		if err != nil {
			return nil, err
		}
		summary.Reports = append(summary.Reports, *report)
		summary.TotalStandardCost = summary.TotalStandardCost.Add(rec.StandardCost.Total())
		summary.TotalActualCost = summary.TotalActualCost.Add(rec.ActualCost.Total())
	}

	summary.TotalVariance = summary.TotalActualCost.Sub(summary.TotalStandardCost)
	if !summary.TotalStandardCost.IsZero() {
		summary.VariancePercentage = summary.TotalVariance.
			Div(summary.TotalStandardCost).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}

	s.logger.Debug("variance window analyzed",
		zap.Int("orders", len(records)),
		zap.String("total_variance", summary.TotalVariance.String()))

	return summary, nil
}
