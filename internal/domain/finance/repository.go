package finance

import (
	"context"
	"time"

	"github.com/erp/finance-engine/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// The engine consumes these collaborator interfaces; the persistence layer
// implements them. Reads are the engine's only suspension points, so every
// method takes a context. Implementations must return a consistent snapshot
// per call; the engine never retries.

// DateRange is a closed reporting window.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Validate rejects malformed windows before any aggregation begins.
func (r DateRange) Validate() error {
	if r.Start.IsZero() || r.End.IsZero() {
		return shared.NewDomainError("INVALID_DATE_RANGE", "Start and end dates are required")
	}
	if r.End.Before(r.Start) {
		return shared.NewDomainError("INVALID_DATE_RANGE", "End date cannot be before start date")
	}
	return nil
}

// Days returns the window length in whole days, counting both endpoints'
// day difference (minimum 1 for a non-empty window).
func (r DateRange) Days() int {
	days := int(r.End.Sub(r.Start).Hours() / 24)
	if days < 1 {
		return 1
	}
	return days
}

// ReceivablesFilter scopes receivable queries. Optional fields replace the
// loosely typed filters of earlier revisions; validation happens at the
// boundary, not inside the engine.
type ReceivablesFilter struct {
	CounterpartyID *uuid.UUID `json:"counterparty_id,omitempty"`
}

// PayablesFilter scopes payable queries.
type PayablesFilter struct {
	SupplierID *uuid.UUID `json:"supplier_id,omitempty"`
}

// RevenueEntry is a dated revenue amount from a confirmed order or a
// completed service.
type RevenueEntry struct {
	Amount decimal.Decimal `json:"amount"`
	Date   time.Time       `json:"date"`
}

// ReceivablesSource supplies open customer invoices.
type ReceivablesSource interface {
	OpenInvoices(ctx context.Context, filter ReceivablesFilter) ([]MonetaryItem, error)
}

// PayablesSource supplies open purchase orders.
type PayablesSource interface {
	OpenPurchaseOrders(ctx context.Context, filter PayablesFilter) ([]MonetaryItem, error)
}

// SalesRevenueSource supplies confirmed sales order revenue in a window.
type SalesRevenueSource interface {
	ConfirmedOrders(ctx context.Context, window DateRange, filter ReceivablesFilter) ([]RevenueEntry, error)
}

// ServiceRevenueSource supplies completed service revenue in a window.
type ServiceRevenueSource interface {
	CompletedServices(ctx context.Context, window DateRange, filter ReceivablesFilter) ([]RevenueEntry, error)
}

// ProductionCostSource supplies cost records of production orders completed
// in a window.
type ProductionCostSource interface {
	CompletedOrders(ctx context.Context, window DateRange) ([]ProductionCostRecord, error)
}

// PaymentHistorySource supplies the most recent payment history for a
// counterparty, newest first.
type PaymentHistorySource interface {
	RecentPayments(ctx context.Context, counterpartyID uuid.UUID, limit int) ([]PaymentHistoryEntry, error)
}

// SystemPaymentSource supplies system payments in a window around a
// statement date, in original recording order.
type SystemPaymentSource interface {
	PaymentsNear(ctx context.Context, date time.Time, lookbackDays, lookaheadDays int) ([]SystemPaymentRecord, error)
}
