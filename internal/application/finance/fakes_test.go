package finance

import (
	"context"
	"time"

	"github.com/erp/finance-engine/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// In-memory sources backing the service tests. Each fake applies the same
// filtering contract the persistence layer implements.

type fakeReceivables struct {
	items []finance.MonetaryItem
	err   error
	calls int
}

func (f *fakeReceivables) OpenInvoices(_ context.Context, filter finance.ReceivablesFilter) ([]finance.MonetaryItem, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if filter.CounterpartyID == nil {
		return f.items, nil
	}
	out := make([]finance.MonetaryItem, 0)
	for _, item := range f.items {
		if item.CounterpartyID == *filter.CounterpartyID {
			out = append(out, item)
		}
	}
	return out, nil
}

type fakePayables struct {
	items []finance.MonetaryItem
	err   error
}

func (f *fakePayables) OpenPurchaseOrders(_ context.Context, filter finance.PayablesFilter) ([]finance.MonetaryItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	if filter.SupplierID == nil {
		return f.items, nil
	}
	out := make([]finance.MonetaryItem, 0)
	for _, item := range f.items {
		if item.CounterpartyID == *filter.SupplierID {
			out = append(out, item)
		}
	}
	return out, nil
}

type fakePaymentHistory struct {
	entries   []finance.PaymentHistoryEntry
	err       error
	lastLimit int
}

func (f *fakePaymentHistory) RecentPayments(_ context.Context, _ uuid.UUID, limit int) ([]finance.PaymentHistoryEntry, error) {
	f.lastLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	if limit > 0 && len(f.entries) > limit {
		return f.entries[:limit], nil
	}
	return f.entries, nil
}

type fakeProductionCosts struct {
	records []finance.ProductionCostRecord
	err     error
}

func (f *fakeProductionCosts) CompletedOrders(_ context.Context, _ finance.DateRange) ([]finance.ProductionCostRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

type fakeSystemPayments struct {
	payments []finance.SystemPaymentRecord
	err      error
	calls    int
}

func (f *fakeSystemPayments) PaymentsNear(_ context.Context, _ time.Time, _, _ int) ([]finance.SystemPaymentRecord, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.payments, nil
}

func invoiceItem(counterpartyID uuid.UUID, name string, balance float64, daysOverdue int, now time.Time) finance.MonetaryItem {
	total := decimal.NewFromFloat(balance)
	due := now.AddDate(0, 0, -daysOverdue)
	return finance.MonetaryItem{
		ID:               uuid.New(),
		DocumentNumber:   "INV-" + name,
		Kind:             finance.MonetaryItemKindInvoice,
		CounterpartyID:   counterpartyID,
		CounterpartyName: name,
		IssueDate:        now.AddDate(0, -1, 0),
		DueDate:          &due,
		TotalAmount:      total,
		PaidAmount:       decimal.Zero,
		BalanceAmount:    total,
	}
}
