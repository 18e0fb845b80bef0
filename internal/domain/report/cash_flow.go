package report

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashFlowForecast projects inflows and outflows over a horizon from known
// receivables/payables plus a trailing sales average.
type CashFlowForecast struct {
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`

	OpeningBalance decimal.Decimal `json:"opening_balance"` // external input, never computed here

	// Inflows
	ReceivablesDue decimal.Decimal `json:"receivables_due"`
	ProjectedSales decimal.Decimal `json:"projected_sales"` // AvgDailySales * forecast days
	TotalInflows   decimal.Decimal `json:"total_inflows"`

	// Outflows
	PayablesDue   decimal.Decimal `json:"payables_due"`
	TotalOutflows decimal.Decimal `json:"total_outflows"`

	NetCashFlow    decimal.Decimal `json:"net_cash_flow"`   // TotalInflows - TotalOutflows
	ClosingBalance decimal.Decimal `json:"closing_balance"` // OpeningBalance + NetCashFlow

	AvgDailySales decimal.Decimal `json:"avg_daily_sales"` // trailing-lookback estimate

	// ForecastAccuracy is a caller-supplied confidence percentage. It is a
	// known simplification: the figure is an estimate, not derived from
	// historical forecast variance.
	ForecastAccuracy decimal.Decimal `json:"forecast_accuracy"`
}
