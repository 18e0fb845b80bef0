package finance

import (
	"strings"
	"time"

	"github.com/erp/finance-engine/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StatementDirection is the side of a bank statement line.
type StatementDirection string

const (
	StatementDirectionDebit  StatementDirection = "DEBIT"
	StatementDirectionCredit StatementDirection = "CREDIT"
)

// BankStatementLine is one externally supplied statement transaction. Lines
// are immutable for the duration of a reconciliation run.
type BankStatementLine struct {
	Date            time.Time          `json:"date"`
	Description     string             `json:"description"`
	Amount          decimal.Decimal    `json:"amount"`
	Direction       StatementDirection `json:"direction"`
	ReferenceNumber string             `json:"reference_number,omitempty"`
}

// BankStatement is the external input to one reconciliation run.
type BankStatement struct {
	BankAccountID    string              `json:"bank_account_id"`
	StatementDate    time.Time           `json:"statement_date"`
	StatementBalance decimal.Decimal     `json:"statement_balance"`
	Lines            []BankStatementLine `json:"lines"`
}

// Validate rejects a malformed statement before any matching begins.
func (s BankStatement) Validate() error {
	if strings.TrimSpace(s.BankAccountID) == "" {
		return shared.NewDomainError("INVALID_RECONCILIATION_REQUEST", "Bank account ID cannot be empty")
	}
	if s.StatementBalance.IsNegative() {
		return shared.NewDomainError("INVALID_RECONCILIATION_REQUEST", "Statement balance cannot be negative")
	}
	return nil
}

// SystemPaymentRecord is an internally recorded payment, read from
// persistence and immutable during reconciliation.
type SystemPaymentRecord struct {
	ID              uuid.UUID       `json:"id"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentDate     time.Time       `json:"payment_date"`
	ReferenceNumber string          `json:"reference_number,omitempty"`
	Status          string          `json:"status"`
}

// UnreconciledType tells which side an unmatched item came from.
type UnreconciledType string

const (
	UnreconciledBankOnly   UnreconciledType = "BANK_ONLY"   // statement line with no system payment
	UnreconciledSystemOnly UnreconciledType = "SYSTEM_ONLY" // system payment with no statement line
)

// UnreconciledItem is a transaction left unmatched after a run.
type UnreconciledItem struct {
	Type            UnreconciledType `json:"type"`
	Date            time.Time        `json:"date"`
	Description     string           `json:"description,omitempty"`
	Amount          decimal.Decimal  `json:"amount"`
	ReferenceNumber string           `json:"reference_number,omitempty"`
	PaymentID       *uuid.UUID       `json:"payment_id,omitempty"`
}

// ReconciliationStatus summarizes a run.
type ReconciliationStatus string

const (
	ReconciliationStatusMatched   ReconciliationStatus = "MATCHED"   // every item on both sides matched
	ReconciliationStatusPartial   ReconciliationStatus = "PARTIAL"   // some matches, some unreconciled
	ReconciliationStatusUnmatched ReconciliationStatus = "UNMATCHED" // no matches at all
)

// MatchedPair links a statement line to the system payment it reconciled.
type MatchedPair struct {
	Line    BankStatementLine   `json:"line"`
	Payment SystemPaymentRecord `json:"payment"`
}

// ReconciliationResult is the outcome of one run. Running the matcher twice
// on the same inputs yields the same result.
type ReconciliationResult struct {
	BankAccountID     string               `json:"bank_account_id"`
	StatementDate     time.Time            `json:"statement_date"`
	StatementBalance  decimal.Decimal      `json:"statement_balance"`
	ReconciledBalance decimal.Decimal      `json:"reconciled_balance"`
	Variance          decimal.Decimal      `json:"variance"` // StatementBalance - ReconciledBalance
	Status            ReconciliationStatus `json:"status"`
	Matches           []MatchedPair        `json:"matches"`
	UnreconciledItems []UnreconciledItem   `json:"unreconciled_items"`
}

// StatementMatcher matches bank statement lines against system payments.
//
// Matching is greedy first-fit, one-to-one, in statement-line order: for
// each line the first unconsumed payment within the amount epsilon that
// shares a reference substring or lies within the date tolerance is taken,
// and scanning stops for that line. First-fit rather than optimal bipartite
// matching is a deliberate simplicity/performance trade-off; changing it
// would change reconciliation outcomes.
type StatementMatcher struct {
	policy ReconcilePolicy
}

// NewStatementMatcher creates a StatementMatcher with the given policy.
func NewStatementMatcher(policy ReconcilePolicy) *StatementMatcher {
	return &StatementMatcher{policy: policy}
}

// Reconcile runs one matching pass. Validation happens before any matching:
// an empty bank account ID or negative statement balance rejects the whole
// request.
func (m *StatementMatcher) Reconcile(stmt BankStatement, payments []SystemPaymentRecord) (*ReconciliationResult, error) {
	if err := stmt.Validate(); err != nil {
		return nil, err
	}

	consumed := make([]bool, len(payments))
	matches := make([]MatchedPair, 0)
	unreconciled := make([]UnreconciledItem, 0)
	reconciled := decimal.Zero

	for _, line := range stmt.Lines {
		matched := false
		for i, payment := range payments {
			if consumed[i] {
				continue
			}
			if !m.candidateMatches(line, payment) {
				continue
			}
			consumed[i] = true
			matches = append(matches, MatchedPair{Line: line, Payment: payment})
			reconciled = reconciled.Add(line.Amount)
			matched = true
			break
		}
		if !matched {
			unreconciled = append(unreconciled, UnreconciledItem{
				Type:            UnreconciledBankOnly,
				Date:            line.Date,
				Description:     line.Description,
				Amount:          line.Amount,
				ReferenceNumber: line.ReferenceNumber,
			})
		}
	}

	for i, payment := range payments {
		if consumed[i] {
			continue
		}
		id := payment.ID
		unreconciled = append(unreconciled, UnreconciledItem{
			Type:            UnreconciledSystemOnly,
			Date:            payment.PaymentDate,
			Amount:          payment.Amount,
			ReferenceNumber: payment.ReferenceNumber,
			PaymentID:       &id,
		})
	}

	status := ReconciliationStatusPartial
	switch {
	case len(unreconciled) == 0:
		status = ReconciliationStatusMatched
	case len(matches) == 0:
		status = ReconciliationStatusUnmatched
	}

	return &ReconciliationResult{
		BankAccountID:     stmt.BankAccountID,
		StatementDate:     stmt.StatementDate,
		StatementBalance:  stmt.StatementBalance,
		ReconciledBalance: reconciled,
		Variance:          stmt.StatementBalance.Sub(reconciled),
		Status:            status,
		Matches:           matches,
		UnreconciledItems: unreconciled,
	}, nil
}

// candidateMatches checks the pairing rule: amounts within epsilon AND
// (reference substring match OR dates within tolerance).
func (m *StatementMatcher) candidateMatches(line BankStatementLine, payment SystemPaymentRecord) bool {
	if line.Amount.Sub(payment.Amount).Abs().GreaterThanOrEqual(m.policy.AmountEpsilon) {
		return false
	}
	if referencesMatch(line.ReferenceNumber, payment.ReferenceNumber) {
		return true
	}
	return datesWithin(line.Date, payment.PaymentDate, m.policy.DateToleranceDays)
}

// referencesMatch reports whether one non-empty reference contains the other.
func referencesMatch(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

func datesWithin(a, b time.Time, days int) bool {
	diff := a.Sub(b)
	if diff < 0 {
		diff = -diff
	}
	return diff <= time.Duration(days)*24*time.Hour
}
