package finance

import (
	"time"

	"github.com/erp/finance-engine/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MonetaryItemKind identifies the source document behind an open item.
type MonetaryItemKind string

const (
	MonetaryItemKindInvoice       MonetaryItemKind = "INVOICE"        // receivable side
	MonetaryItemKindPurchaseOrder MonetaryItemKind = "PURCHASE_ORDER" // payable side
)

// IsValid checks if the kind is a valid MonetaryItemKind
func (k MonetaryItemKind) IsValid() bool {
	return k == MonetaryItemKindInvoice || k == MonetaryItemKindPurchaseOrder
}

// MonetaryItem is the open-item abstraction shared by receivables and
// payables: an invoice or purchase order with an outstanding balance.
// Invariant: BalanceAmount = TotalAmount - PaidAmount, never negative.
type MonetaryItem struct {
	ID               uuid.UUID        `json:"id"`
	DocumentNumber   string           `json:"document_number"`
	Kind             MonetaryItemKind `json:"kind"`
	CounterpartyID   uuid.UUID        `json:"counterparty_id"`
	CounterpartyName string           `json:"counterparty_name"`
	IssueDate        time.Time        `json:"issue_date"`
	DueDate          *time.Time       `json:"due_date,omitempty"`
	TotalAmount      decimal.Decimal  `json:"total_amount"`
	PaidAmount       decimal.Decimal  `json:"paid_amount"`
	BalanceAmount    decimal.Decimal  `json:"balance_amount"`
}

// Validate checks the open-item invariants.
func (m MonetaryItem) Validate() error {
	if m.CounterpartyID == uuid.Nil {
		return shared.NewDomainError("INVALID_COUNTERPARTY", "Counterparty ID cannot be empty")
	}
	if m.BalanceAmount.IsNegative() {
		return shared.NewDomainError("INVALID_BALANCE", "Balance amount cannot be negative")
	}
	if !m.BalanceAmount.Equal(m.TotalAmount.Sub(m.PaidAmount)) {
		return shared.NewDomainError("INVALID_BALANCE", "Balance amount must equal total minus paid")
	}
	return nil
}

// AgedItem is a monetary item with its computed aging.
type AgedItem struct {
	MonetaryItem
	DaysOverdue int         `json:"days_overdue"`
	Bucket      AgingBucket `json:"bucket"`
}

// AgingTotals carries per-bucket outstanding sums.
type AgingTotals struct {
	Current  decimal.Decimal `json:"current"`
	Days31   decimal.Decimal `json:"days_31_60"`
	Days61   decimal.Decimal `json:"days_61_90"`
	Days90   decimal.Decimal `json:"days_90_plus"`
}

// Add routes an amount into the bucket's total.
func (t *AgingTotals) Add(bucket AgingBucket, amount decimal.Decimal) {
	switch bucket {
	case AgingBucket31To60:
		t.Days31 = t.Days31.Add(amount)
	case AgingBucket61To90:
		t.Days61 = t.Days61.Add(amount)
	case AgingBucket90Plus:
		t.Days90 = t.Days90.Add(amount)
	default:
		t.Current = t.Current.Add(amount)
	}
}

// CounterpartyLedger is the per-counterparty aging view over open items.
// It is recomputed on demand and never persisted.
type CounterpartyLedger struct {
	CounterpartyID   uuid.UUID       `json:"counterparty_id"`
	CounterpartyName string          `json:"counterparty_name"`
	TotalOutstanding decimal.Decimal `json:"total_outstanding"`
	OverdueAmount    decimal.Decimal `json:"overdue_amount"`
	CurrentAmount    decimal.Decimal `json:"current_amount"`
	BucketTotals     AgingTotals     `json:"bucket_totals"`
	Items            []AgedItem      `json:"items"`
}
