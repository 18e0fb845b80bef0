// Package models contains the GORM row models backing the engine's read-only
// sources. The upstream transactional modules own these tables; the engine
// never writes them.
package models

import (
	"time"

	"github.com/erp/finance-engine/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Open document statuses shared by invoices and purchase orders.
const (
	DocumentStatusPending = "PENDING"
	DocumentStatusPartial = "PARTIAL"
	DocumentStatusPaid    = "PAID"
)

// InvoiceModel is a customer invoice row.
type InvoiceModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key"`
	InvoiceNumber string          `gorm:"size:50;uniqueIndex;not null"`
	CustomerID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	CustomerName  string          `gorm:"size:200;not null"`
	IssueDate     time.Time       `gorm:"not null"`
	DueDate       *time.Time      `gorm:"index"`
	PaidAt        *time.Time
	TotalAmount   decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	PaidAmount    decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	Status        string          `gorm:"size:20;not null;index"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`
}

// TableName specifies the table name
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToMonetaryItem converts the row to the open-item read model.
func (m *InvoiceModel) ToMonetaryItem() finance.MonetaryItem {
	return finance.MonetaryItem{
		ID:               m.ID,
		DocumentNumber:   m.InvoiceNumber,
		Kind:             finance.MonetaryItemKindInvoice,
		CounterpartyID:   m.CustomerID,
		CounterpartyName: m.CustomerName,
		IssueDate:        m.IssueDate,
		DueDate:          m.DueDate,
		TotalAmount:      m.TotalAmount,
		PaidAmount:       m.PaidAmount,
		BalanceAmount:    m.TotalAmount.Sub(m.PaidAmount),
	}
}

// ToPaymentHistoryEntry converts the row to a payment history entry.
// Unpaid invoices carry a nil paid date.
func (m *InvoiceModel) ToPaymentHistoryEntry() finance.PaymentHistoryEntry {
	entry := finance.PaymentHistoryEntry{
		InvoiceID: m.ID,
		PaidDate:  m.PaidAt,
		Amount:    m.TotalAmount,
	}
	if m.DueDate != nil {
		entry.DueDate = *m.DueDate
	}
	return entry
}

// PurchaseOrderModel is a supplier purchase order row.
type PurchaseOrderModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderNumber  string          `gorm:"size:50;uniqueIndex;not null"`
	SupplierID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	SupplierName string          `gorm:"size:200;not null"`
	OrderDate    time.Time       `gorm:"not null"`
	DueDate      *time.Time      `gorm:"index"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	PaidAmount   decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	Status       string          `gorm:"size:20;not null;index"`
	CreatedAt    time.Time       `gorm:"not null"`
	UpdatedAt    time.Time       `gorm:"not null"`
}

// TableName specifies the table name
func (PurchaseOrderModel) TableName() string {
	return "purchase_orders"
}

// ToMonetaryItem converts the row to the open-item read model.
func (m *PurchaseOrderModel) ToMonetaryItem() finance.MonetaryItem {
	return finance.MonetaryItem{
		ID:               m.ID,
		DocumentNumber:   m.OrderNumber,
		Kind:             finance.MonetaryItemKindPurchaseOrder,
		CounterpartyID:   m.SupplierID,
		CounterpartyName: m.SupplierName,
		IssueDate:        m.OrderDate,
		DueDate:          m.DueDate,
		TotalAmount:      m.TotalAmount,
		PaidAmount:       m.PaidAmount,
		BalanceAmount:    m.TotalAmount.Sub(m.PaidAmount),
	}
}

// SalesOrderModel is a confirmed sales order row, the source of sales
// revenue.
type SalesOrderModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderNumber string          `gorm:"size:50;uniqueIndex;not null"`
	CustomerID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	ConfirmedAt *time.Time      `gorm:"index"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Status      string          `gorm:"size:20;not null;index"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName specifies the table name
func (SalesOrderModel) TableName() string {
	return "sales_orders"
}

// ToRevenueEntry converts the row to a dated revenue amount.
func (m *SalesOrderModel) ToRevenueEntry() finance.RevenueEntry {
	entry := finance.RevenueEntry{Amount: m.TotalAmount}
	if m.ConfirmedAt != nil {
		entry.Date = *m.ConfirmedAt
	}
	return entry
}

// ServiceRecordModel is a completed service row, the source of service
// revenue.
type ServiceRecordModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key"`
	ServiceNumber string          `gorm:"size:50;uniqueIndex;not null"`
	CustomerID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	CompletedAt   *time.Time      `gorm:"index"`
	Amount        decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Status        string          `gorm:"size:20;not null;index"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`
}

// TableName specifies the table name
func (ServiceRecordModel) TableName() string {
	return "service_records"
}

// ToRevenueEntry converts the row to a dated revenue amount.
func (m *ServiceRecordModel) ToRevenueEntry() finance.RevenueEntry {
	entry := finance.RevenueEntry{Amount: m.Amount}
	if m.CompletedAt != nil {
		entry.Date = *m.CompletedAt
	}
	return entry
}

// ProductionOrderModel is a completed production order row with its standard
// and actual cost columns, maintained by the manufacturing module.
type ProductionOrderModel struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderNumber      string          `gorm:"size:50;uniqueIndex;not null"`
	Quantity         decimal.Decimal `gorm:"type:decimal(15,4);not null"`
	CompletedAt      *time.Time      `gorm:"index"`
	Status           string          `gorm:"size:20;not null;index"`
	StandardMaterial decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	StandardLabor    decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	StandardOverhead decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	ActualMaterial   decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	ActualLabor      decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	ActualOverhead   decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	ScrapCost        decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	CreatedAt        time.Time       `gorm:"not null"`
	UpdatedAt        time.Time       `gorm:"not null"`
}

// TableName specifies the table name
func (ProductionOrderModel) TableName() string {
	return "production_orders"
}

// ToCostRecord converts the row to the cost comparison read model. Scrap is
// an actual-only category.
func (m *ProductionOrderModel) ToCostRecord() finance.ProductionCostRecord {
	return finance.ProductionCostRecord{
		ProductionOrderID: m.ID,
		OrderNumber:       m.OrderNumber,
		Quantity:          m.Quantity,
		StandardCost: finance.CostBreakdown{
			Material: m.StandardMaterial,
			Labor:    m.StandardLabor,
			Overhead: m.StandardOverhead,
			Scrap:    decimal.Zero,
		},
		ActualCost: finance.CostBreakdown{
			Material: m.ActualMaterial,
			Labor:    m.ActualLabor,
			Overhead: m.ActualOverhead,
			Scrap:    m.ScrapCost,
		},
	}
}

// PaymentModel is a recorded payment row, the system side of bank
// reconciliation.
type PaymentModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key"`
	Amount          decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	PaymentDate     time.Time       `gorm:"not null;index"`
	ReferenceNumber string          `gorm:"size:100;index"`
	Status          string          `gorm:"size:20;not null;index"`
	CreatedAt       time.Time       `gorm:"not null"`
	UpdatedAt       time.Time       `gorm:"not null"`
}

// TableName specifies the table name
func (PaymentModel) TableName() string {
	return "payments"
}

// ToPaymentRecord converts the row to the reconciliation read model.
func (m *PaymentModel) ToPaymentRecord() finance.SystemPaymentRecord {
	return finance.SystemPaymentRecord{
		ID:              m.ID,
		Amount:          m.Amount,
		PaymentDate:     m.PaymentDate,
		ReferenceNumber: m.ReferenceNumber,
		Status:          m.Status,
	}
}
