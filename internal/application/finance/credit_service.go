package finance

import (
	"context"
	"time"

	"github.com/erp/finance-engine/internal/domain/finance"
	"github.com/erp/finance-engine/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreditService evaluates customer credit standing. Credit used and the
// overdue balance are derived from the open-invoice snapshot at call time;
// the score comes from recent payment history.
type CreditService struct {
	history     finance.PaymentHistorySource
	receivables finance.ReceivablesSource
	scorer      *finance.CreditScorer
	policy      finance.CreditPolicy
	logger      *zap.Logger
	now         func() time.Time
}

// CreditServiceOption is a functional option for configuring CreditService
type CreditServiceOption func(*CreditService)

// WithCreditPolicy overrides the scoring policy
func WithCreditPolicy(policy finance.CreditPolicy) CreditServiceOption {
	return func(s *CreditService) {
		s.policy = policy
		s.scorer = finance.NewCreditScorer(policy)
	}
}

// WithCreditClock overrides the time source, used by tests
func WithCreditClock(now func() time.Time) CreditServiceOption {
	return func(s *CreditService) {
		s.now = now
	}
}

// NewCreditService creates a new CreditService
func NewCreditService(
	history finance.PaymentHistorySource,
	receivables finance.ReceivablesSource,
	logger *zap.Logger,
	opts ...CreditServiceOption,
) *CreditService {
	policy := finance.DefaultCreditPolicy()
	s := &CreditService{
		history:     history,
		receivables: receivables,
		scorer:      finance.NewCreditScorer(policy),
		policy:      policy,
		logger:      logger,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreditEvaluationRequest identifies the customer and their configured
// credit limit.
type CreditEvaluationRequest struct {
	CounterpartyID uuid.UUID
	CreditLimit    decimal.Decimal
}

// EvaluateCredit derives the credit profile for a customer.
func (s *CreditService) EvaluateCredit(ctx context.Context, req CreditEvaluationRequest) (*finance.CreditProfile, error) {
	if req.CounterpartyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COUNTERPARTY", "Counterparty ID cannot be empty")
	}

	now := s.now()

	items, err := s.receivables.OpenInvoices(ctx, finance.ReceivablesFilter{CounterpartyID: &req.CounterpartyID})
	if err != nil {
		return nil, err
	}

	creditUsed := decimal.Zero
	overdueAmount := decimal.Zero
	for _, item := range items {
		creditUsed = creditUsed.Add(item.BalanceAmount)
		if finance.DaysOverdue(now, item.DueDate) > 0 {
			overdueAmount = overdueAmount.Add(item.BalanceAmount)
		}
	}

	history, err := s.history.RecentPayments(ctx, req.CounterpartyID, s.policy.HistoryLimit)
	if err != nil {
		return nil, err
	}

	profile := s.scorer.Score(finance.CreditScoreRequest{
		CounterpartyID: req.CounterpartyID,
		History:        history,
		CreditLimit:    req.CreditLimit,
		CreditUsed:     creditUsed,
		OverdueAmount:  overdueAmount,
		Now:            now,
	})

	s.logger.Info("credit profile evaluated",
		zap.String("counterparty_id", req.CounterpartyID.String()),
		zap.String("score", profile.CreditScore.String()),
		zap.String("risk_level", string(profile.RiskLevel)))

	return profile, nil
}
