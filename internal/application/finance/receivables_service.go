package finance

import (
	"context"
	"time"

	"github.com/erp/finance-engine/internal/domain/finance"
	"github.com/erp/finance-engine/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReceivablesService exposes the aging and collection operations over open
// receivables and payables. All derived views are recomputed from a fresh
// source snapshot on every call.
type ReceivablesService struct {
	receivables finance.ReceivablesSource
	payables    finance.PayablesSource
	recommender *finance.CollectionRecommender
	logger      *zap.Logger
	now         func() time.Time
}

// ReceivablesServiceOption is a functional option for configuring
// ReceivablesService
type ReceivablesServiceOption func(*ReceivablesService)

// WithCollectionPolicy overrides the collection escalation policy
func WithCollectionPolicy(policy finance.CollectionPolicy) ReceivablesServiceOption {
	return func(s *ReceivablesService) {
		s.recommender = finance.NewCollectionRecommender(policy)
	}
}

// WithReceivablesClock overrides the time source, used by tests
func WithReceivablesClock(now func() time.Time) ReceivablesServiceOption {
	return func(s *ReceivablesService) {
		s.now = now
	}
}

// NewReceivablesService creates a new ReceivablesService
func NewReceivablesService(
	receivables finance.ReceivablesSource,
	payables finance.PayablesSource,
	logger *zap.Logger,
	opts ...ReceivablesServiceOption,
) *ReceivablesService {
	s := &ReceivablesService{
		receivables: receivables,
		payables:    payables,
		recommender: finance.NewCollectionRecommender(finance.DefaultCollectionPolicy()),
		logger:      logger,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ReceivablesAging returns the per-customer aging view over open invoices.
func (s *ReceivablesService) ReceivablesAging(ctx context.Context, filter finance.ReceivablesFilter) ([]finance.CounterpartyLedger, error) {
	items, err := s.receivables.OpenInvoices(ctx, filter)
	if err != nil {
		return nil, err
	}

	ledgers := finance.AggregateLedgers(items, s.now())
	s.logger.Debug("aggregated receivables aging",
		zap.Int("open_items", len(items)),
		zap.Int("counterparties", len(ledgers)))
	return ledgers, nil
}

// PayablesAging returns the per-supplier aging view over open purchase
// orders.
func (s *ReceivablesService) PayablesAging(ctx context.Context, filter finance.PayablesFilter) ([]finance.CounterpartyLedger, error) {
	items, err := s.payables.OpenPurchaseOrders(ctx, filter)
	if err != nil {
		return nil, err
	}

	ledgers := finance.AggregateLedgers(items, s.now())
	s.logger.Debug("aggregated payables aging",
		zap.Int("open_items", len(items)),
		zap.Int("counterparties", len(ledgers)))
	return ledgers, nil
}

// CustomerLedger returns the aging view for a single customer, or
// shared.ErrNotFound when the customer has no open invoices.
func (s *ReceivablesService) CustomerLedger(ctx context.Context, customerID uuid.UUID) (*finance.CounterpartyLedger, error) {
	items, err := s.receivables.OpenInvoices(ctx, finance.ReceivablesFilter{CounterpartyID: &customerID})
	if err != nil {
		return nil, err
	}
	ledger := finance.LedgerFor(items, customerID, s.now())
	if ledger == nil {
		return nil, shared.ErrNotFound
	}
	return ledger, nil
}

// CollectionWorklist aggregates open receivables and derives the
// prioritized collection actions.
func (s *ReceivablesService) CollectionWorklist(ctx context.Context, filter finance.ReceivablesFilter) (*finance.CollectionWorklist, error) {
	ledgers, err := s.ReceivablesAging(ctx, filter)
	if err != nil {
		return nil, err
	}

	worklist := s.recommender.Recommend(ledgers)
	s.logger.Info("collection worklist computed",
		zap.Int("total_actions", worklist.TotalActions),
		zap.String("total_overdue", worklist.TotalOverdue.String()))
	return worklist, nil
}
