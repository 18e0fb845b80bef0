package finance

import (
	"context"

	"github.com/erp/finance-engine/internal/domain/finance"
	"go.uber.org/zap"
)

// BankReconciliationService matches externally supplied bank statements
// against internally recorded payments.
type BankReconciliationService struct {
	payments finance.SystemPaymentSource
	matcher  *finance.StatementMatcher
	policy   finance.ReconcilePolicy
	logger   *zap.Logger
}

// NewBankReconciliationService creates a new BankReconciliationService
func NewBankReconciliationService(
	payments finance.SystemPaymentSource,
	policy finance.ReconcilePolicy,
	logger *zap.Logger,
) *BankReconciliationService {
	return &BankReconciliationService{
		payments: payments,
		matcher:  finance.NewStatementMatcher(policy),
		policy:   policy,
		logger:   logger,
	}
}

// Reconcile fetches candidate system payments around the statement date and
// runs one matching pass. The candidate window comes from the reconcile
// policy (lookback/lookahead days).
func (s *BankReconciliationService) Reconcile(ctx context.Context, stmt finance.BankStatement) (*finance.ReconciliationResult, error) {
	if err := stmt.Validate(); err != nil {
		return nil, err
	}

	candidates, err := s.payments.PaymentsNear(ctx, stmt.StatementDate, s.policy.LookbackDays, s.policy.LookaheadDays)
	if err != nil {
		return nil, err
	}

	result, err := s.matcher.Reconcile(stmt, candidates)
	if err != nil {
		return nil, err
	}

	s.logger.Info("bank statement reconciled",
		zap.String("bank_account_id", stmt.BankAccountID),
		zap.String("status", string(result.Status)),
		zap.Int("matches", len(result.Matches)),
		zap.Int("unreconciled", len(result.UnreconciledItems)),
		zap.String("variance", result.Variance.String()))

	return result, nil
}
