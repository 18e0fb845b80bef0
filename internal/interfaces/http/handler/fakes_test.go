package handler

import (
	"context"
	"time"

	"github.com/erp/finance-engine/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// fakeSources backs every handler with canned data. A non-nil err fails
// every call.
type fakeSources struct {
	invoices []finance.MonetaryItem
	orders   []finance.MonetaryItem
	history  []finance.PaymentHistoryEntry
	costs    []finance.ProductionCostRecord
	sales    []finance.RevenueEntry
	services []finance.RevenueEntry
	payments []finance.SystemPaymentRecord
	err      error
}

func (f *fakeSources) OpenInvoices(_ context.Context, filter finance.ReceivablesFilter) ([]finance.MonetaryItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	if filter.CounterpartyID == nil {
		return f.invoices, nil
	}
	var out []finance.MonetaryItem
	for _, item := range f.invoices {
		if item.CounterpartyID == *filter.CounterpartyID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeSources) OpenPurchaseOrders(_ context.Context, _ finance.PayablesFilter) ([]finance.MonetaryItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.orders, nil
}

func (f *fakeSources) RecentPayments(_ context.Context, _ uuid.UUID, _ int) ([]finance.PaymentHistoryEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.history, nil
}

func (f *fakeSources) CompletedOrders(_ context.Context, _ finance.DateRange) ([]finance.ProductionCostRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.costs, nil
}

func (f *fakeSources) ConfirmedOrders(_ context.Context, _ finance.DateRange, _ finance.ReceivablesFilter) ([]finance.RevenueEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.sales, nil
}

func (f *fakeSources) CompletedServices(_ context.Context, _ finance.DateRange, _ finance.ReceivablesFilter) ([]finance.RevenueEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.services, nil
}

func (f *fakeSources) PaymentsNear(_ context.Context, _ time.Time, _, _ int) ([]finance.SystemPaymentRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.payments, nil
}

// openInvoice builds an open invoice due daysOverdue days before now.
func openInvoice(customerID uuid.UUID, name string, balance int64, daysOverdue int, now time.Time) finance.MonetaryItem {
	due := now.AddDate(0, 0, -daysOverdue)
	amount := decimal.NewFromInt(balance)
	return finance.MonetaryItem{
		ID:               uuid.New(),
		DocumentNumber:   "INV-" + name,
		Kind:             finance.MonetaryItemKindInvoice,
		CounterpartyID:   customerID,
		CounterpartyName: name,
		IssueDate:        due.AddDate(0, -1, 0),
		DueDate:          &due,
		TotalAmount:      amount,
		PaidAmount:       decimal.Zero,
		BalanceAmount:    amount,
	}
}
