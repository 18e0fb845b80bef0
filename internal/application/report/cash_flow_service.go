package report

import (
	"context"
	"time"

	"github.com/erp/finance-engine/internal/domain/finance"
	"github.com/erp/finance-engine/internal/domain/report"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CashFlowService projects cash inflows and outflows over a horizon from
// known open items plus a trailing sales average.
type CashFlowService struct {
	receivables finance.ReceivablesSource
	payables    finance.PayablesSource
	sales       finance.SalesRevenueSource
	policy      finance.ForecastPolicy
	logger      *zap.Logger
	now         func() time.Time
}

// CashFlowServiceOption is a functional option for configuring
// CashFlowService
type CashFlowServiceOption func(*CashFlowService)

// WithCashFlowClock overrides the time source, used by tests
func WithCashFlowClock(now func() time.Time) CashFlowServiceOption {
	return func(s *CashFlowService) {
		s.now = now
	}
}

// NewCashFlowService creates a new CashFlowService
func NewCashFlowService(
	receivables finance.ReceivablesSource,
	payables finance.PayablesSource,
	sales finance.SalesRevenueSource,
	policy finance.ForecastPolicy,
	logger *zap.Logger,
	opts ...CashFlowServiceOption,
) *CashFlowService {
	s := &CashFlowService{
		receivables: receivables,
		payables:    payables,
		sales:       sales,
		policy:      policy,
		logger:      logger,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CashFlowForecastRequest scopes one forecast. Window defaults to
// now..now+horizon; OpeningBalance is an external input, never computed
// here; Accuracy overrides the policy default confidence.
type CashFlowForecastRequest struct {
	Window         *finance.DateRange
	OpeningBalance decimal.Decimal
	Accuracy       *decimal.Decimal
}

// ForecastCashFlow builds the projection for the window.
func (s *CashFlowService) ForecastCashFlow(ctx context.Context, req CashFlowForecastRequest) (*report.CashFlowForecast, error) {
	now := s.now()

	window := finance.DateRange{Start: now, End: now.AddDate(0, 0, s.policy.HorizonDays)}
	if req.Window != nil {
		window = *req.Window
	}
	if err := window.Validate(); err != nil {
		return nil, err
	}

	openInvoices, err := s.receivables.OpenInvoices(ctx, finance.ReceivablesFilter{})
	if err != nil {
		return nil, err
	}
	openOrders, err := s.payables.OpenPurchaseOrders(ctx, finance.PayablesFilter{})
	if err != nil {
		return nil, err
	}

	lookback := finance.DateRange{Start: now.AddDate(0, 0, -s.policy.LookbackDays), End: now}
	recentSales, err := s.sales.ConfirmedOrders(ctx, lookback, finance.ReceivablesFilter{})
	if err != nil {
		return nil, err
	}

	receivablesDue := sumBalancesDueIn(openInvoices, window)
	payablesDue := sumBalancesDueIn(openOrders, window)

	recentTotal := decimal.Zero
	for _, entry := range recentSales {
		recentTotal = recentTotal.Add(entry.Amount)
	}
	avgDailySales := decimal.Zero
	if s.policy.LookbackDays > 0 {
		avgDailySales = recentTotal.Div(decimal.NewFromInt(int64(s.policy.LookbackDays))).Round(2)
	}
	projectedSales := avgDailySales.Mul(decimal.NewFromInt(int64(window.Days())))

	accuracy := s.policy.DefaultAccuracyPercent
	if req.Accuracy != nil {
		accuracy = *req.Accuracy
	}

	forecast := &report.CashFlowForecast{
		PeriodStart:      window.Start,
		PeriodEnd:        window.End,
		OpeningBalance:   req.OpeningBalance,
		ReceivablesDue:   receivablesDue,
		ProjectedSales:   projectedSales,
		TotalInflows:     receivablesDue.Add(projectedSales),
		PayablesDue:      payablesDue,
		TotalOutflows:    payablesDue,
		AvgDailySales:    avgDailySales,
		ForecastAccuracy: accuracy,
	}
	forecast.NetCashFlow = forecast.TotalInflows.Sub(forecast.TotalOutflows)
	forecast.ClosingBalance = forecast.OpeningBalance.Add(forecast.NetCashFlow)

	s.logger.Debug("cash flow forecast computed",
		zap.Time("period_start", window.Start),
		zap.Time("period_end", window.End),
		zap.String("net_cash_flow", forecast.NetCashFlow.String()))

	return forecast, nil
}

// sumBalancesDueIn totals the open balances falling due inside the window.
// Items without a due date never enter a forecast.
func sumBalancesDueIn(items []finance.MonetaryItem, window finance.DateRange) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		if item.DueDate == nil {
			continue
		}
		if item.DueDate.Before(window.Start) || item.DueDate.After(window.End) {
			continue
		}
		total = total.Add(item.BalanceAmount)
	}
	return total
}
