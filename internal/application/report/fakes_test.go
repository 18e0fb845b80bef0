package report

import (
	"context"
	"time"

	"github.com/erp/finance-engine/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// In-memory sources backing the report service tests.

type fakeSales struct {
	entries []finance.RevenueEntry
	err     error
}

func (f *fakeSales) ConfirmedOrders(_ context.Context, _ finance.DateRange, _ finance.ReceivablesFilter) ([]finance.RevenueEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.entries, nil
}

type fakeServices struct {
	entries []finance.RevenueEntry
	err     error
}

func (f *fakeServices) CompletedServices(_ context.Context, _ finance.DateRange, _ finance.ReceivablesFilter) ([]finance.RevenueEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.entries, nil
}

type fakeProduction struct {
	records []finance.ProductionCostRecord
	err     error
}

func (f *fakeProduction) CompletedOrders(_ context.Context, _ finance.DateRange) ([]finance.ProductionCostRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

type fakeReceivables struct {
	items []finance.MonetaryItem
	err   error
}

func (f *fakeReceivables) OpenInvoices(_ context.Context, _ finance.ReceivablesFilter) ([]finance.MonetaryItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

type fakePayables struct {
	items []finance.MonetaryItem
	err   error
}

func (f *fakePayables) OpenPurchaseOrders(_ context.Context, _ finance.PayablesFilter) ([]finance.MonetaryItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

func revenue(amount float64, date time.Time) finance.RevenueEntry {
	return finance.RevenueEntry{Amount: decimal.NewFromFloat(amount), Date: date}
}

func openItem(name string, balance float64, daysOverdue int, now time.Time) finance.MonetaryItem {
	total := decimal.NewFromFloat(balance)
	due := now.AddDate(0, 0, -daysOverdue)
	return finance.MonetaryItem{
		ID:               uuid.New(),
		DocumentNumber:   "DOC-" + name,
		Kind:             finance.MonetaryItemKindInvoice,
		CounterpartyID:   uuid.New(),
		CounterpartyName: name,
		IssueDate:        now.AddDate(0, -1, 0),
		DueDate:          &due,
		TotalAmount:      total,
		PaidAmount:       decimal.Zero,
		BalanceAmount:    total,
	}
}
