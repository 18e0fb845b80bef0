package report

import (
	"context"
	"time"

	"github.com/erp/finance-engine/internal/domain/finance"
	"github.com/erp/finance-engine/internal/domain/report"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DashboardService composes the top-level financial KPI view. The P&L and
// the two aging views come from independent sources, so they are fetched
// concurrently; the first failure aborts the whole composition rather than
// returning partial financials.
type DashboardService struct {
	profitLoss  *ProfitLossService
	receivables finance.ReceivablesSource
	payables    finance.PayablesSource
	logger      *zap.Logger
	now         func() time.Time
}

// DashboardServiceOption is a functional option for configuring
// DashboardService
type DashboardServiceOption func(*DashboardService)

// WithDashboardClock overrides the time source, used by tests
func WithDashboardClock(now func() time.Time) DashboardServiceOption {
	return func(s *DashboardService) {
		s.now = now
	}
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	profitLoss *ProfitLossService,
	receivables finance.ReceivablesSource,
	payables finance.PayablesSource,
	logger *zap.Logger,
	opts ...DashboardServiceOption,
) *DashboardService {
	s := &DashboardService{
		profitLoss:  profitLoss,
		receivables: receivables,
		payables:    payables,
		logger:      logger,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DashboardRequest scopes the KPI window.
type DashboardRequest struct {
	Window finance.DateRange
}

// ComposeDashboard builds the KPI view for the window.
func (s *DashboardService) ComposeDashboard(ctx context.Context, req DashboardRequest) (*report.FinancialDashboard, error) {
	if err := req.Window.Validate(); err != nil {
		return nil, err
	}

	now := s.now()

	var (
		stmt             *report.ProfitLossStatement
		receivableItems  []finance.MonetaryItem
		payableItems     []finance.MonetaryItem
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stmt, err = s.profitLoss.GenerateProfitLoss(gctx, ProfitLossRequest{Window: req.Window})
		return err
	})
	g.Go(func() error {
		var err error
		receivableItems, err = s.receivables.OpenInvoices(gctx, finance.ReceivablesFilter{})
		return err
	})
	g.Go(func() error {
		var err error
		payableItems, err = s.payables.OpenPurchaseOrders(gctx, finance.PayablesFilter{})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	receivableLedgers := finance.AggregateLedgers(receivableItems, now)
	payableLedgers := finance.AggregateLedgers(payableItems, now)

	dashboard := &report.FinancialDashboard{
		AsOf:         now,
		PeriodStart:  req.Window.Start,
		PeriodEnd:    req.Window.End,
		TotalRevenue: stmt.TotalRevenue,
		NetProfit:    stmt.NetProfit,
		ProfitMargin: stmt.ProfitMargin,
		ProfitLoss:   stmt,
	}

	for _, ledger := range receivableLedgers {
		dashboard.TotalReceivables = dashboard.TotalReceivables.Add(ledger.TotalOutstanding)
		dashboard.OverdueReceivables = dashboard.OverdueReceivables.Add(ledger.OverdueAmount)
		dashboard.ReceivableAging.Current = dashboard.ReceivableAging.Current.Add(ledger.BucketTotals.Current)
		dashboard.ReceivableAging.Days31 = dashboard.ReceivableAging.Days31.Add(ledger.BucketTotals.Days31)
		dashboard.ReceivableAging.Days61 = dashboard.ReceivableAging.Days61.Add(ledger.BucketTotals.Days61)
		dashboard.ReceivableAging.Days90 = dashboard.ReceivableAging.Days90.Add(ledger.BucketTotals.Days90)
	}
	for _, ledger := range payableLedgers {
		dashboard.TotalPayables = dashboard.TotalPayables.Add(ledger.TotalOutstanding)
		dashboard.OverduePayables = dashboard.OverduePayables.Add(ledger.OverdueAmount)
	}

	if !dashboard.TotalPayables.IsZero() {
		dashboard.ReceivableToPayableRatio = dashboard.TotalReceivables.Div(dashboard.TotalPayables).Round(2)
	}
	if !dashboard.TotalReceivables.IsZero() {
		dashboard.OverduePercentage = dashboard.OverdueReceivables.
			Div(dashboard.TotalReceivables).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}

	s.logger.Info("financial dashboard composed",
		zap.String("total_revenue", dashboard.TotalRevenue.String()),
		zap.String("total_receivables", dashboard.TotalReceivables.String()),
		zap.String("total_payables", dashboard.TotalPayables.String()))

	return dashboard, nil
}
