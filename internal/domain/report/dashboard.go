package report

import (
	"time"

	"github.com/erp/finance-engine/internal/domain/finance"
	"github.com/shopspring/decimal"
)

// FinancialDashboard is the top-level KPI view combining the P&L, the
// receivable/payable aging views and fixed ratios. Always composed from
// fresh data, never cached.
type FinancialDashboard struct {
	AsOf        time.Time `json:"as_of"`
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`

	// Profitability
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	NetProfit    decimal.Decimal `json:"net_profit"`
	ProfitMargin decimal.Decimal `json:"profit_margin"`

	// Working capital
	TotalReceivables   decimal.Decimal     `json:"total_receivables"`
	OverdueReceivables decimal.Decimal     `json:"overdue_receivables"`
	ReceivableAging    finance.AgingTotals `json:"receivable_aging"`
	TotalPayables      decimal.Decimal     `json:"total_payables"`
	OverduePayables    decimal.Decimal     `json:"overdue_payables"`

	// Fixed ratios; 0 when the denominator is 0
	ReceivableToPayableRatio decimal.Decimal `json:"receivable_to_payable_ratio"`
	OverduePercentage        decimal.Decimal `json:"overdue_percentage"` // overdue / total receivables * 100

	ProfitLoss *ProfitLossStatement `json:"profit_loss"`
}
