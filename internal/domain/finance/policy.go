package finance

import "github.com/shopspring/decimal"

// The engine deliberately carries no hard-wired business rates. Every rate,
// weight and threshold that gates a financial outcome lives in one of the
// policy structs below, with its default documented on the field. Deployments
// override them through configuration; tests construct them directly.

// TaxPolicy holds the statutory rates used by the tax calculator.
type TaxPolicy struct {
	// GSTRatePercent is the default GST rate applied when a request does not
	// carry an explicit rate. Default: 18.
	GSTRatePercent decimal.Decimal
	// TDSRatePercent is the default TDS withholding rate. Default: 2.
	TDSRatePercent decimal.Decimal
	// ProfessionalTaxAmount is the fixed professional tax deduction per
	// request, in currency units. Default: 200.
	ProfessionalTaxAmount decimal.Decimal
}

// DefaultTaxPolicy returns the statutory defaults.
func DefaultTaxPolicy() TaxPolicy {
	return TaxPolicy{
		GSTRatePercent:        decimal.NewFromInt(18),
		TDSRatePercent:        decimal.NewFromInt(2),
		ProfessionalTaxAmount: decimal.NewFromInt(200),
	}
}

// CreditPolicy holds the weights and thresholds of the credit scoring
// heuristic. These directly gate credit-hold decisions, so they are policy
// owned by business stakeholders rather than engineering constants.
type CreditPolicy struct {
	// HistoryLimit is the maximum number of most recent payment-history
	// entries considered. Default: 12.
	HistoryLimit int
	// LatePenaltyWeight multiplies the average days late before it is
	// subtracted from the on-time percentage. Default: 2.
	LatePenaltyWeight decimal.Decimal
	// OverdueThresholdDays separates LATE from OVERDUE payments. Default: 30.
	OverdueThresholdDays int
	// LowRiskMinScore is the minimum score for LOW risk (with no overdue
	// balance). Default: 80.
	LowRiskMinScore decimal.Decimal
	// MediumRiskMinScore is the minimum score for MEDIUM risk. Default: 60.
	MediumRiskMinScore decimal.Decimal
	// MediumRiskOverdueLimitPercent caps the overdue balance, as a percentage
	// of the credit limit, still acceptable for MEDIUM risk. Default: 20.
	MediumRiskOverdueLimitPercent decimal.Decimal
}

// DefaultCreditPolicy returns the documented scoring defaults.
func DefaultCreditPolicy() CreditPolicy {
	return CreditPolicy{
		HistoryLimit:                  12,
		LatePenaltyWeight:             decimal.NewFromInt(2),
		OverdueThresholdDays:          30,
		LowRiskMinScore:               decimal.NewFromInt(80),
		MediumRiskMinScore:            decimal.NewFromInt(60),
		MediumRiskOverdueLimitPercent: decimal.NewFromInt(20),
	}
}

// CostingPolicy holds the rates used to build standard and actual production
// costs for variance analysis.
type CostingPolicy struct {
	// LaborRatePerUnit is the standard labor cost per produced unit.
	// Default: 50.
	LaborRatePerUnit decimal.Decimal
	// StandardOverheadPercent is applied to (material + labor) when deriving
	// the standard cost. Default: 15.
	StandardOverheadPercent decimal.Decimal
	// ActualOverheadPercent is applied to (material + labor) when deriving
	// the actual cost. May differ from the standard rate. Default: 15.
	ActualOverheadPercent decimal.Decimal
}

// DefaultCostingPolicy returns the documented costing defaults.
func DefaultCostingPolicy() CostingPolicy {
	return CostingPolicy{
		LaborRatePerUnit:        decimal.NewFromInt(50),
		StandardOverheadPercent: decimal.NewFromInt(15),
		ActualOverheadPercent:   decimal.NewFromInt(15),
	}
}

// TieBreakRule names how the statement matcher resolves multiple equally
// valid candidates for one statement line.
type TieBreakRule string

const (
	// TieBreakScanOrder takes the first candidate in original payment order.
	// This is the only implemented rule; whether ties should instead prefer
	// the closest amount or closest date is an open product decision.
	TieBreakScanOrder TieBreakRule = "SCAN_ORDER"
)

// ReconcilePolicy holds the matching tolerances of the bank reconciliation
// matcher.
type ReconcilePolicy struct {
	// AmountEpsilon is the maximum absolute amount difference for two
	// transactions to be considered the same. Default: 0.01.
	AmountEpsilon decimal.Decimal
	// DateToleranceDays is the maximum distance between transaction dates
	// when no reference number links the pair. Default: 2.
	DateToleranceDays int
	// LookbackDays and LookaheadDays bound the candidate window of system
	// payments around the statement date. Defaults: 7 and 1.
	LookbackDays  int
	LookaheadDays int
	// TieBreak resolves multiple equally valid candidates. Default:
	// TieBreakScanOrder (first-fit).
	TieBreak TieBreakRule
}

// DefaultReconcilePolicy returns the documented matching defaults.
func DefaultReconcilePolicy() ReconcilePolicy {
	return ReconcilePolicy{
		AmountEpsilon:     decimal.NewFromFloat(0.01),
		DateToleranceDays: 2,
		LookbackDays:      7,
		LookaheadDays:     1,
		TieBreak:          TieBreakScanOrder,
	}
}

// CollectionPolicy holds the day-range escalation table of the collection
// recommender.
type CollectionPolicy struct {
	// MaxActions bounds the returned worklist for presentation. Truncation
	// never affects the aggregate overdue totals. Default: 20.
	MaxActions int
	// ReminderMaxDays is the upper bound (inclusive) for REMINDER/LOW.
	// Default: 15.
	ReminderMaxDays int
	// FollowUpMaxDays is the upper bound for FOLLOW_UP/MEDIUM. Default: 30.
	FollowUpMaxDays int
	// EscalateMaxDays is the upper bound for FOLLOW_UP/HIGH. Default: 60.
	EscalateMaxDays int
	// LegalNoticeMaxDays is the upper bound for LEGAL_NOTICE/HIGH; anything
	// beyond it becomes CREDIT_HOLD/URGENT. Default: 90.
	LegalNoticeMaxDays int
}

// DefaultCollectionPolicy returns the documented escalation defaults.
func DefaultCollectionPolicy() CollectionPolicy {
	return CollectionPolicy{
		MaxActions:         20,
		ReminderMaxDays:    15,
		FollowUpMaxDays:    30,
		EscalateMaxDays:    60,
		LegalNoticeMaxDays: 90,
	}
}

// OperatingExpensePolicy estimates operating expenses as named ratios of
// revenue. The ratios are explicit and overridable, never silent constants.
type OperatingExpensePolicy struct {
	// MarketingPercentOfSales estimates marketing spend from sales revenue.
	// Default: 2.
	MarketingPercentOfSales decimal.Decimal
	// AdminPercentOfRevenue estimates administrative overhead from total
	// revenue. Default: 5.
	AdminPercentOfRevenue decimal.Decimal
	// SellingPercentOfSales estimates selling and distribution cost from
	// sales revenue. Default: 3.
	SellingPercentOfSales decimal.Decimal
	// FinancePercentOfRevenue estimates finance cost from total revenue.
	// Default: 1.
	FinancePercentOfRevenue decimal.Decimal
}

// DefaultOperatingExpensePolicy returns the documented expense ratios.
func DefaultOperatingExpensePolicy() OperatingExpensePolicy {
	return OperatingExpensePolicy{
		MarketingPercentOfSales: decimal.NewFromInt(2),
		AdminPercentOfRevenue:   decimal.NewFromInt(5),
		SellingPercentOfSales:   decimal.NewFromInt(3),
		FinancePercentOfRevenue: decimal.NewFromInt(1),
	}
}

// ForecastPolicy holds the cash flow forecaster parameters.
type ForecastPolicy struct {
	// HorizonDays is the default forecast window length. Default: 30.
	HorizonDays int
	// LookbackDays is the trailing window used to estimate average daily
	// sales. Default: 30.
	LookbackDays int
	// DefaultAccuracyPercent is the confidence figure reported when the
	// caller supplies none. It is an estimate, not derived from variance.
	// Default: 70.
	DefaultAccuracyPercent decimal.Decimal
}

// DefaultForecastPolicy returns the documented forecast defaults.
func DefaultForecastPolicy() ForecastPolicy {
	return ForecastPolicy{
		HorizonDays:            30,
		LookbackDays:           30,
		DefaultAccuracyPercent: decimal.NewFromInt(70),
	}
}
