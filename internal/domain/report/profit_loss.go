package report

import (
	"time"

	"github.com/shopspring/decimal"
)

// OperatingExpenseLine is one estimated operating expense, named after the
// policy ratio that produced it.
type OperatingExpenseLine struct {
	Name        string          `json:"name"`         // e.g. "MARKETING"
	Basis       string          `json:"basis"`        // e.g. "SALES_REVENUE"
	RatePercent decimal.Decimal `json:"rate_percent"` // ratio applied to the basis
	Amount      decimal.Decimal `json:"amount"`
}

// ProfitLossStatement is the read model for a profit and loss statement.
// It is immutable once composed and recomputed on every request.
type ProfitLossStatement struct {
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`

	// Revenue
	SalesRevenue   decimal.Decimal `json:"sales_revenue"`
	ServiceRevenue decimal.Decimal `json:"service_revenue"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`

	// Cost of goods sold, from actual production costs
	MaterialCost          decimal.Decimal `json:"material_cost"`
	LaborCost             decimal.Decimal `json:"labor_cost"`
	ManufacturingOverhead decimal.Decimal `json:"manufacturing_overhead"`
	ScrapCost             decimal.Decimal `json:"scrap_cost"`
	TotalCOGS             decimal.Decimal `json:"total_cogs"`

	GrossProfit decimal.Decimal `json:"gross_profit"` // TotalRevenue - TotalCOGS

	// Operating expenses as named, overridable ratios
	OperatingExpenses      []OperatingExpenseLine `json:"operating_expenses"`
	TotalOperatingExpenses decimal.Decimal        `json:"total_operating_expenses"`

	OperatingProfit decimal.Decimal `json:"operating_profit"` // GrossProfit - TotalOperatingExpenses
	OtherIncome     decimal.Decimal `json:"other_income"`
	OtherExpenses   decimal.Decimal `json:"other_expenses"`
	NetProfit       decimal.Decimal `json:"net_profit"`    // OperatingProfit + OtherIncome - OtherExpenses
	ProfitMargin    decimal.Decimal `json:"profit_margin"` // NetProfit / TotalRevenue * 100, 0 when revenue is 0
}
