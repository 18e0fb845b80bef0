package report

import (
	"context"

	"github.com/erp/finance-engine/internal/domain/finance"
	"github.com/erp/finance-engine/internal/domain/report"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProfitLossService composes profit and loss statements from the revenue
// and production cost sources. Statements are recomputed on every request;
// a failure in any source aborts the whole statement, since a partial P&L
// presented as complete is worse than a failed request.
type ProfitLossService struct {
	sales      finance.SalesRevenueSource
	services   finance.ServiceRevenueSource
	production finance.ProductionCostSource
	opexPolicy finance.OperatingExpensePolicy
	logger     *zap.Logger
}

// NewProfitLossService creates a new ProfitLossService
func NewProfitLossService(
	sales finance.SalesRevenueSource,
	services finance.ServiceRevenueSource,
	production finance.ProductionCostSource,
	opexPolicy finance.OperatingExpensePolicy,
	logger *zap.Logger,
) *ProfitLossService {
	return &ProfitLossService{
		sales:      sales,
		services:   services,
		production: production,
		opexPolicy: opexPolicy,
		logger:     logger,
	}
}

// ProfitLossRequest scopes one statement.
type ProfitLossRequest struct {
	Window        finance.DateRange
	Filter        finance.ReceivablesFilter
	OtherIncome   decimal.Decimal
	OtherExpenses decimal.Decimal
}

// GenerateProfitLoss builds the statement for the window.
func (s *ProfitLossService) GenerateProfitLoss(ctx context.Context, req ProfitLossRequest) (*report.ProfitLossStatement, error) {
	if err := req.Window.Validate(); err != nil {
		return nil, err
	}

	salesEntries, err := s.sales.ConfirmedOrders(ctx, req.Window, req.Filter)
	if err != nil {
		return nil, err
	}
	serviceEntries, err := s.services.CompletedServices(ctx, req.Window, req.Filter)
	if err != nil {
		return nil, err
	}
	costRecords, err := s.production.CompletedOrders(ctx, req.Window)
	if err != nil {
		return nil, err
	}

	stmt := &report.ProfitLossStatement{
		PeriodStart:   req.Window.Start,
		PeriodEnd:     req.Window.End,
		OtherIncome:   req.OtherIncome,
		OtherExpenses: req.OtherExpenses,
	}

	for _, entry := range salesEntries {
		stmt.SalesRevenue = stmt.SalesRevenue.Add(entry.Amount)
	}
	for _, entry := range serviceEntries {
		stmt.ServiceRevenue = stmt.ServiceRevenue.Add(entry.Amount)
	}
	stmt.TotalRevenue = stmt.SalesRevenue.Add(stmt.ServiceRevenue)

	for _, rec := range costRecords {
		stmt.MaterialCost = stmt.MaterialCost.Add(rec.ActualCost.Material)
		stmt.LaborCost = stmt.LaborCost.Add(rec.ActualCost.Labor)
		stmt.ManufacturingOverhead = stmt.ManufacturingOverhead.Add(rec.ActualCost.Overhead)
		stmt.ScrapCost = stmt.ScrapCost.Add(rec.ActualCost.Scrap)
	}
	stmt.TotalCOGS = stmt.MaterialCost.Add(stmt.LaborCost).Add(stmt.ManufacturingOverhead).Add(stmt.ScrapCost)

	stmt.GrossProfit = stmt.TotalRevenue.Sub(stmt.TotalCOGS)

	stmt.OperatingExpenses = s.estimateOperatingExpenses(stmt.SalesRevenue, stmt.TotalRevenue)
	for _, line := range stmt.OperatingExpenses {
		stmt.TotalOperatingExpenses = stmt.TotalOperatingExpenses.Add(line.Amount)
	}

	stmt.OperatingProfit = stmt.GrossProfit.Sub(stmt.TotalOperatingExpenses)
	stmt.NetProfit = stmt.OperatingProfit.Add(stmt.OtherIncome).Sub(stmt.OtherExpenses)
	if !stmt.TotalRevenue.IsZero() {
		stmt.ProfitMargin = stmt.NetProfit.Div(stmt.TotalRevenue).Mul(decimal.NewFromInt(100)).Round(2)
	}

	s.logger.Debug("profit and loss statement generated",
		zap.Time("period_start", stmt.PeriodStart),
		zap.Time("period_end", stmt.PeriodEnd),
		zap.String("total_revenue", stmt.TotalRevenue.String()),
		zap.String("net_profit", stmt.NetProfit.String()))

	return stmt, nil
}

// estimateOperatingExpenses applies the named policy ratios. Each line
// records the ratio and basis that produced it so the estimate is auditable.
func (s *ProfitLossService) estimateOperatingExpenses(salesRevenue, totalRevenue decimal.Decimal) []report.OperatingExpenseLine {
	hundred := decimal.NewFromInt(100)
	return []report.OperatingExpenseLine{
		{
			Name:        "MARKETING",
			Basis:       "SALES_REVENUE",
			RatePercent: s.opexPolicy.MarketingPercentOfSales,
			Amount:      salesRevenue.Mul(s.opexPolicy.MarketingPercentOfSales).Div(hundred).Round(2),
		},
		{
			Name:        "ADMINISTRATION",
			Basis:       "TOTAL_REVENUE",
			RatePercent: s.opexPolicy.AdminPercentOfRevenue,
			Amount:      totalRevenue.Mul(s.opexPolicy.AdminPercentOfRevenue).Div(hundred).Round(2),
		},
		{
			Name:        "SELLING_DISTRIBUTION",
			Basis:       "SALES_REVENUE",
			RatePercent: s.opexPolicy.SellingPercentOfSales,
			Amount:      salesRevenue.Mul(s.opexPolicy.SellingPercentOfSales).Div(hundred).Round(2),
		},
		{
			Name:        "FINANCE_COST",
			Basis:       "TOTAL_REVENUE",
			RatePercent: s.opexPolicy.FinancePercentOfRevenue,
			Amount:      totalRevenue.Mul(s.opexPolicy.FinancePercentOfRevenue).Div(hundred).Round(2),
		},
	}
}
