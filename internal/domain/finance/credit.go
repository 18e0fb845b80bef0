package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus classifies a historical payment against its due date.
type PaymentStatus string

const (
	PaymentStatusOnTime  PaymentStatus = "ON_TIME"
	PaymentStatusLate    PaymentStatus = "LATE"
	PaymentStatusOverdue PaymentStatus = "OVERDUE"
)

// IsValid checks if the status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusOnTime, PaymentStatusLate, PaymentStatusOverdue:
		return true
	}
	return false
}

// RiskLevel is the credit risk tier derived from the score.
type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "LOW"
	RiskLevelMedium RiskLevel = "MEDIUM"
	RiskLevelHigh   RiskLevel = "HIGH"
)

// PaymentHistoryEntry is one historical invoice payment for a counterparty.
// PaidDate is nil while the invoice is unpaid.
type PaymentHistoryEntry struct {
	InvoiceID uuid.UUID       `json:"invoice_id"`
	DueDate   time.Time       `json:"due_date"`
	PaidDate  *time.Time      `json:"paid_date,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
}

// ClassifiedPayment is a history entry with its derived lateness.
type ClassifiedPayment struct {
	PaymentHistoryEntry
	DaysLate int           `json:"days_late"`
	Status   PaymentStatus `json:"status"`
}

// CreditScoreRequest carries everything the scorer needs. Now is injected by
// the caller so scoring stays deterministic and testable.
type CreditScoreRequest struct {
	CounterpartyID uuid.UUID
	History        []PaymentHistoryEntry
	CreditLimit    decimal.Decimal
	CreditUsed     decimal.Decimal
	OverdueAmount  decimal.Decimal
	Now            time.Time
}

// CreditProfile is the derived credit standing of a counterparty. It is
// recomputed on every call and never persisted.
type CreditProfile struct {
	CounterpartyID   uuid.UUID           `json:"counterparty_id"`
	CreditLimit      decimal.Decimal     `json:"credit_limit"`
	CreditUsed       decimal.Decimal     `json:"credit_used"`
	AvailableCredit  decimal.Decimal     `json:"available_credit"`
	OverdueAmount    decimal.Decimal     `json:"overdue_amount"`
	OnTimePercentage decimal.Decimal     `json:"on_time_percentage"`
	AvgDaysLate      decimal.Decimal     `json:"avg_days_late"`
	CreditScore      decimal.Decimal     `json:"credit_score"` // 0-100
	RiskLevel        RiskLevel           `json:"risk_level"`
	Utilization      decimal.Decimal     `json:"utilization"` // CreditUsed / CreditLimit * 100
	Payments         []ClassifiedPayment `json:"payments"`
}

// CreditScorer derives credit scores from payment history.
type CreditScorer struct {
	policy CreditPolicy
}

// NewCreditScorer creates a CreditScorer with the given policy.
func NewCreditScorer(policy CreditPolicy) *CreditScorer {
	return &CreditScorer{policy: policy}
}

// Score computes the credit profile for a counterparty.
//
// Paid entries are classified by days late (ON_TIME at zero, OVERDUE past
// the policy threshold, LATE between). Unpaid entries past their due date
// count as OVERDUE with lateness accruing up to Now; unpaid entries not yet
// due are ignored. With no classified history the counterparty scores a
// clean 100.
//
// score = clamp(onTimePercentage - avgDaysLate * LatePenaltyWeight, 0, 100)
func (s *CreditScorer) Score(req CreditScoreRequest) *CreditProfile {
	history := req.History
	if s.policy.HistoryLimit > 0 && len(history) > s.policy.HistoryLimit {
		history = history[:s.policy.HistoryLimit]
	}

	classified := make([]ClassifiedPayment, 0, len(history))
	totalDaysLate := 0
	onTimeCount := 0

	for _, entry := range history {
		var daysLate int
		switch {
		case entry.PaidDate != nil:
			daysLate = wholeDaysBetween(entry.DueDate, *entry.PaidDate)
		case entry.DueDate.Before(req.Now):
			daysLate = wholeDaysBetween(entry.DueDate, req.Now)
		default:
			continue // unpaid but not yet due
		}

		status := PaymentStatusOnTime
		if daysLate > 0 {
			status = PaymentStatusLate
			if entry.PaidDate == nil || daysLate > s.policy.OverdueThresholdDays {
				status = PaymentStatusOverdue
			}
		} else {
			onTimeCount++
		}
		totalDaysLate += daysLate

		classified = append(classified, ClassifiedPayment{
			PaymentHistoryEntry: entry,
			DaysLate:            daysLate,
			Status:              status,
		})
	}

	onTimePct := decimal.NewFromInt(100)
	avgDaysLate := decimal.Zero
	if len(classified) > 0 {
		total := decimal.NewFromInt(int64(len(classified)))
		onTimePct = decimal.NewFromInt(int64(onTimeCount)).Div(total).Mul(decimal.NewFromInt(100)).Round(2)
		avgDaysLate = decimal.NewFromInt(int64(totalDaysLate)).Div(total).Round(2)
	}

	score := onTimePct.Sub(avgDaysLate.Mul(s.policy.LatePenaltyWeight))
	score = clampScore(score)

	availableCredit := req.CreditLimit.Sub(req.CreditUsed)
	if availableCredit.IsNegative() {
		availableCredit = decimal.Zero
	}

	utilization := decimal.Zero
	if !req.CreditLimit.IsZero() {
		utilization = req.CreditUsed.Div(req.CreditLimit).Mul(decimal.NewFromInt(100)).Round(2)
	}

	return &CreditProfile{
		CounterpartyID:   req.CounterpartyID,
		CreditLimit:      req.CreditLimit,
		CreditUsed:       req.CreditUsed,
		AvailableCredit:  availableCredit,
		OverdueAmount:    req.OverdueAmount,
		OnTimePercentage: onTimePct,
		AvgDaysLate:      avgDaysLate,
		CreditScore:      score,
		RiskLevel:        s.riskLevel(score, req.OverdueAmount, req.CreditLimit),
		Utilization:      utilization,
		Payments:         classified,
	}
}

// riskLevel applies the policy tiers: LOW requires a high score and a clean
// overdue balance; MEDIUM tolerates overdue up to a fraction of the limit.
func (s *CreditScorer) riskLevel(score, overdueAmount, creditLimit decimal.Decimal) RiskLevel {
	if score.GreaterThanOrEqual(s.policy.LowRiskMinScore) && overdueAmount.IsZero() {
		return RiskLevelLow
	}
	overdueLimit := creditLimit.Mul(s.policy.MediumRiskOverdueLimitPercent).Div(decimal.NewFromInt(100))
	if score.GreaterThanOrEqual(s.policy.MediumRiskMinScore) && overdueAmount.LessThan(overdueLimit) {
		return RiskLevelMedium
	}
	return RiskLevelHigh
}

func clampScore(score decimal.Decimal) decimal.Decimal {
	if score.IsNegative() {
		return decimal.Zero
	}
	if score.GreaterThan(decimal.NewFromInt(100)) {
		return decimal.NewFromInt(100)
	}
	return score
}

// wholeDaysBetween returns the whole days from a due date to a later moment,
// floored at zero.
func wholeDaysBetween(due, at time.Time) int {
	if !at.After(due) {
		return 0
	}
	return int(at.Sub(due).Hours() / 24)
}
