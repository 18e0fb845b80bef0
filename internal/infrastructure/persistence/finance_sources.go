package persistence

import (
	"context"
	"time"

	"github.com/erp/finance-engine/internal/domain/finance"
	"github.com/erp/finance-engine/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormFinanceSources implements every read source the engine consumes with
// GORM queries over the upstream modules' tables. Each call returns one
// consistent snapshot; the engine never retries.
type GormFinanceSources struct {
	db *gorm.DB
}

// NewGormFinanceSources creates a new GormFinanceSources
func NewGormFinanceSources(db *gorm.DB) *GormFinanceSources {
	return &GormFinanceSources{db: db}
}

var openStatuses = []string{models.DocumentStatusPending, models.DocumentStatusPartial}

// OpenInvoices returns customer invoices with an outstanding balance,
// oldest due first.
func (r *GormFinanceSources) OpenInvoices(ctx context.Context, filter finance.ReceivablesFilter) ([]finance.MonetaryItem, error) {
	query := r.db.WithContext(ctx).Model(&models.InvoiceModel{}).
		Where("status IN ?", openStatuses)
	if filter.CounterpartyID != nil {
		query = query.Where("customer_id = ?", *filter.CounterpartyID)
	}

	var rows []models.InvoiceModel
	if err := query.Order("due_date ASC NULLS LAST").Find(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]finance.MonetaryItem, len(rows))
	for i, row := range rows {
		items[i] = row.ToMonetaryItem()
	}
	return items, nil
}

// OpenPurchaseOrders returns supplier purchase orders with an outstanding
// balance, oldest due first.
func (r *GormFinanceSources) OpenPurchaseOrders(ctx context.Context, filter finance.PayablesFilter) ([]finance.MonetaryItem, error) {
	query := r.db.WithContext(ctx).Model(&models.PurchaseOrderModel{}).
		Where("status IN ?", openStatuses)
	if filter.SupplierID != nil {
		query = query.Where("supplier_id = ?", *filter.SupplierID)
	}

	var rows []models.PurchaseOrderModel
	if err := query.Order("due_date ASC NULLS LAST").Find(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]finance.MonetaryItem, len(rows))
	for i, row := range rows {
		items[i] = row.ToMonetaryItem()
	}
	return items, nil
}

// ConfirmedOrders returns sales revenue from orders confirmed in the window.
func (r *GormFinanceSources) ConfirmedOrders(ctx context.Context, window finance.DateRange, filter finance.ReceivablesFilter) ([]finance.RevenueEntry, error) {
	query := r.db.WithContext(ctx).Model(&models.SalesOrderModel{}).
		Where("status = ?", "CONFIRMED").
		Where("confirmed_at >= ? AND confirmed_at <= ?", window.Start, window.End)
	if filter.CounterpartyID != nil {
		query = query.Where("customer_id = ?", *filter.CounterpartyID)
	}

	var rows []models.SalesOrderModel
	if err := query.Order("confirmed_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	entries := make([]finance.RevenueEntry, len(rows))
	for i, row := range rows {
		entries[i] = row.ToRevenueEntry()
	}
	return entries, nil
}

// CompletedServices returns service revenue from services completed in the
// window.
func (r *GormFinanceSources) CompletedServices(ctx context.Context, window finance.DateRange, filter finance.ReceivablesFilter) ([]finance.RevenueEntry, error) {
	query := r.db.WithContext(ctx).Model(&models.ServiceRecordModel{}).
		Where("status = ?", "COMPLETED").
		Where("completed_at >= ? AND completed_at <= ?", window.Start, window.End)
	if filter.CounterpartyID != nil {
		query = query.Where("customer_id = ?", *filter.CounterpartyID)
	}

	var rows []models.ServiceRecordModel
	if err := query.Order("completed_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	entries := make([]finance.RevenueEntry, len(rows))
	for i, row := range rows {
		entries[i] = row.ToRevenueEntry()
	}
	return entries, nil
}

// CompletedOrders returns the cost records of production orders completed in
// the window.
func (r *GormFinanceSources) CompletedOrders(ctx context.Context, window finance.DateRange) ([]finance.ProductionCostRecord, error) {
	var rows []models.ProductionOrderModel
	if err := r.db.WithContext(ctx).Model(&models.ProductionOrderModel{}).
		Where("status = ?", "COMPLETED").
		Where("completed_at >= ? AND completed_at <= ?", window.Start, window.End).
		Order("completed_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	records := make([]finance.ProductionCostRecord, len(rows))
	for i, row := range rows {
		records[i] = row.ToCostRecord()
	}
	return records, nil
}

// RecentPayments returns the counterparty's most recent invoice payment
// history, newest due date first. Unpaid invoices are included; the scorer
// decides how to treat them.
func (r *GormFinanceSources) RecentPayments(ctx context.Context, counterpartyID uuid.UUID, limit int) ([]finance.PaymentHistoryEntry, error) {
	query := r.db.WithContext(ctx).Model(&models.InvoiceModel{}).
		Where("customer_id = ? AND due_date IS NOT NULL", counterpartyID).
		Order("due_date DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var rows []models.InvoiceModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	entries := make([]finance.PaymentHistoryEntry, len(rows))
	for i, row := range rows {
		entries[i] = row.ToPaymentHistoryEntry()
	}
	return entries, nil
}

// PaymentsNear returns completed system payments recorded within the
// lookback/lookahead window around the statement date, in recording order.
func (r *GormFinanceSources) PaymentsNear(ctx context.Context, date time.Time, lookbackDays, lookaheadDays int) ([]finance.SystemPaymentRecord, error) {
	from := date.AddDate(0, 0, -lookbackDays)
	to := date.AddDate(0, 0, lookaheadDays)

	var rows []models.PaymentModel
	if err := r.db.WithContext(ctx).Model(&models.PaymentModel{}).
		Where("status = ?", "COMPLETED").
		Where("payment_date >= ? AND payment_date <= ?", from, to).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	records := make([]finance.SystemPaymentRecord, len(rows))
	for i, row := range rows {
		records[i] = row.ToPaymentRecord()
	}
	return records, nil
}

// Interface guards: one repository serves every engine source.
var (
	_ finance.ReceivablesSource    = (*GormFinanceSources)(nil)
	_ finance.PayablesSource       = (*GormFinanceSources)(nil)
	_ finance.SalesRevenueSource   = (*GormFinanceSources)(nil)
	_ finance.ServiceRevenueSource = (*GormFinanceSources)(nil)
	_ finance.ProductionCostSource = (*GormFinanceSources)(nil)
	_ finance.PaymentHistorySource = (*GormFinanceSources)(nil)
	_ finance.SystemPaymentSource  = (*GormFinanceSources)(nil)
)
