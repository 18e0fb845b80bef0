package finance

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CollectionAction is the recommended step for an overdue invoice.
type CollectionAction string

const (
	CollectionActionReminder    CollectionAction = "REMINDER"
	CollectionActionFollowUp    CollectionAction = "FOLLOW_UP"
	CollectionActionLegalNotice CollectionAction = "LEGAL_NOTICE"
	CollectionActionCreditHold  CollectionAction = "CREDIT_HOLD"
)

// CollectionPriority orders recommended actions.
type CollectionPriority string

const (
	CollectionPriorityLow    CollectionPriority = "LOW"
	CollectionPriorityMedium CollectionPriority = "MEDIUM"
	CollectionPriorityHigh   CollectionPriority = "HIGH"
	CollectionPriorityUrgent CollectionPriority = "URGENT"
)

// rank gives priorities a sortable weight.
func (p CollectionPriority) rank() int {
	switch p {
	case CollectionPriorityUrgent:
		return 4
	case CollectionPriorityHigh:
		return 3
	case CollectionPriorityMedium:
		return 2
	case CollectionPriorityLow:
		return 1
	}
	return 0
}

// CollectionRecommendation is one proposed action for one overdue item.
type CollectionRecommendation struct {
	CounterpartyID   uuid.UUID          `json:"counterparty_id"`
	CounterpartyName string             `json:"counterparty_name"`
	InvoiceID        uuid.UUID          `json:"invoice_id"`
	DocumentNumber   string             `json:"document_number"`
	BalanceAmount    decimal.Decimal    `json:"balance_amount"`
	DaysOverdue      int                `json:"days_overdue"`
	Action           CollectionAction   `json:"action"`
	Priority         CollectionPriority `json:"priority"`
}

// CollectionWorklist is the prioritized output of one recommendation run.
// Recommendations are truncated for presentation; TotalActions and the
// overdue totals always cover the full untruncated set.
type CollectionWorklist struct {
	Recommendations []CollectionRecommendation `json:"recommendations"`
	TotalActions    int                        `json:"total_actions"`
	TotalOverdue    decimal.Decimal            `json:"total_overdue"`
	OverdueTotals   AgingTotals                `json:"overdue_totals"`
}

// CollectionRecommender maps aging output to prioritized collection actions.
type CollectionRecommender struct {
	policy CollectionPolicy
}

// NewCollectionRecommender creates a CollectionRecommender with the given
// policy.
func NewCollectionRecommender(policy CollectionPolicy) *CollectionRecommender {
	return &CollectionRecommender{policy: policy}
}

// Recommend walks every overdue item in the ledgers, assigns an action and
// priority from the escalation table, sorts by priority then days overdue,
// and truncates to the policy bound.
func (r *CollectionRecommender) Recommend(ledgers []CounterpartyLedger) *CollectionWorklist {
	recommendations := make([]CollectionRecommendation, 0)
	totalOverdue := decimal.Zero
	var overdueTotals AgingTotals

	for _, ledger := range ledgers {
		for _, item := range ledger.Items {
			if item.DaysOverdue <= 0 {
				continue
			}
			action, priority := r.escalate(item.DaysOverdue)
			recommendations = append(recommendations, CollectionRecommendation{
				CounterpartyID:   ledger.CounterpartyID,
				CounterpartyName: ledger.CounterpartyName,
				InvoiceID:        item.ID,
				DocumentNumber:   item.DocumentNumber,
				BalanceAmount:    item.BalanceAmount,
				DaysOverdue:      item.DaysOverdue,
				Action:           action,
				Priority:         priority,
			})
			totalOverdue = totalOverdue.Add(item.BalanceAmount)
			overdueTotals.Add(item.Bucket, item.BalanceAmount)
		}
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		if recommendations[i].Priority.rank() != recommendations[j].Priority.rank() {
			return recommendations[i].Priority.rank() > recommendations[j].Priority.rank()
		}
		return recommendations[i].DaysOverdue > recommendations[j].DaysOverdue
	})

	total := len(recommendations)
	if r.policy.MaxActions > 0 && total > r.policy.MaxActions {
		recommendations = recommendations[:r.policy.MaxActions]
	}

	return &CollectionWorklist{
		Recommendations: recommendations,
		TotalActions:    total,
		TotalOverdue:    totalOverdue,
		OverdueTotals:   overdueTotals,
	}
}

// escalate maps days overdue to the action/priority pair.
func (r *CollectionRecommender) escalate(daysOverdue int) (CollectionAction, CollectionPriority) {
	switch {
	case daysOverdue <= r.policy.ReminderMaxDays:
		return CollectionActionReminder, CollectionPriorityLow
	case daysOverdue <= r.policy.FollowUpMaxDays:
		return CollectionActionFollowUp, CollectionPriorityMedium
	case daysOverdue <= r.policy.EscalateMaxDays:
		return CollectionActionFollowUp, CollectionPriorityHigh
	case daysOverdue <= r.policy.LegalNoticeMaxDays:
		return CollectionActionLegalNotice, CollectionPriorityHigh
	default:
		return CollectionActionCreditHold, CollectionPriorityUrgent
	}
}
