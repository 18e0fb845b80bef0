package handler

import (
	financeapp "github.com/erp/finance-engine/internal/application/finance"
	"github.com/erp/finance-engine/internal/domain/finance"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// FinanceHandler exposes the tax, aging, credit, variance and
// reconciliation operations.
type FinanceHandler struct {
	BaseHandler
	taxCalculator  *finance.TaxCalculator
	receivables    *financeapp.ReceivablesService
	credit         *financeapp.CreditService
	variance       *financeapp.VarianceService
	reconciliation *financeapp.BankReconciliationService
}

// NewFinanceHandler creates a new FinanceHandler
func NewFinanceHandler(
	taxCalculator *finance.TaxCalculator,
	receivables *financeapp.ReceivablesService,
	credit *financeapp.CreditService,
	variance *financeapp.VarianceService,
	reconciliation *financeapp.BankReconciliationService,
) *FinanceHandler {
	return &FinanceHandler{
		taxCalculator:  taxCalculator,
		receivables:    receivables,
		credit:         credit,
		variance:       variance,
		reconciliation: reconciliation,
	}
}

// RegisterRoutes registers finance routes
func (h *FinanceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/finance")
	{
		group.POST("/tax/calculate", h.CalculateTax)
		group.GET("/receivables/aging", h.ReceivablesAging)
		group.GET("/payables/aging", h.PayablesAging)
		group.GET("/customers/:id/ledger", h.CustomerLedger)
		group.GET("/customers/:id/credit", h.EvaluateCredit)
		group.GET("/collections/worklist", h.CollectionWorklist)
		group.GET("/cost-variance", h.CostVariance)
		group.POST("/reconciliations", h.Reconcile)
	}
}

// AgingReportResponse wraps the per-counterparty aging ledgers.
type AgingReportResponse struct {
	Ledgers []finance.CounterpartyLedger `json:"ledgers"`
	Count   int                          `json:"count"`
}

// CalculateTax computes a tax breakdown for a single amount
// POST /api/v1/finance/tax/calculate
func (h *FinanceHandler) CalculateTax(c *gin.Context) {
	var req finance.TaxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.taxCalculator.Calculate(req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ReceivablesAging returns the aged receivables ledger per customer
// GET /api/v1/finance/receivables/aging
func (h *FinanceHandler) ReceivablesAging(c *gin.Context) {
	customerID, err := parseOptionalUUID(c, "customer_id")
	if err != nil {
		h.HandleError(c, err)
		return
	}

	ledgers, err := h.receivables.ReceivablesAging(c.Request.Context(), finance.ReceivablesFilter{CounterpartyID: customerID})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, AgingReportResponse{Ledgers: ledgers, Count: len(ledgers)})
}

// PayablesAging returns the aged payables ledger per supplier
// GET /api/v1/finance/payables/aging
func (h *FinanceHandler) PayablesAging(c *gin.Context) {
	supplierID, err := parseOptionalUUID(c, "supplier_id")
	if err != nil {
		h.HandleError(c, err)
		return
	}

	ledgers, err := h.receivables.PayablesAging(c.Request.Context(), finance.PayablesFilter{SupplierID: supplierID})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, AgingReportResponse{Ledgers: ledgers, Count: len(ledgers)})
}

// CustomerLedger returns one customer's aged open items
// GET /api/v1/finance/customers/:id/ledger
func (h *FinanceHandler) CustomerLedger(c *gin.Context) {
	customerID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}

	ledger, err := h.receivables.CustomerLedger(c.Request.Context(), customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ledger)
}

// EvaluateCredit derives a customer's credit profile from payment history
// GET /api/v1/finance/customers/:id/credit
func (h *FinanceHandler) EvaluateCredit(c *gin.Context) {
	customerID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}

	creditLimit, err := parseDecimalQuery(c, "credit_limit", decimal.Zero)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	profile, err := h.credit.EvaluateCredit(c.Request.Context(), financeapp.CreditEvaluationRequest{
		CounterpartyID: customerID,
		CreditLimit:    creditLimit,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, profile)
}

// CollectionWorklist returns prioritized collection actions over overdue
// receivables
// GET /api/v1/finance/collections/worklist
func (h *FinanceHandler) CollectionWorklist(c *gin.Context) {
	customerID, err := parseOptionalUUID(c, "customer_id")
	if err != nil {
		h.HandleError(c, err)
		return
	}

	worklist, err := h.receivables.CollectionWorklist(c.Request.Context(), finance.ReceivablesFilter{CounterpartyID: customerID})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, worklist)
}

// CostVariance analyzes production cost variance over a completion window
// GET /api/v1/finance/cost-variance
func (h *FinanceHandler) CostVariance(c *gin.Context) {
	window, err := parseWindow(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	summary, err := h.variance.AnalyzeWindow(c.Request.Context(), window)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}

// Reconcile matches a bank statement against recorded payments
// POST /api/v1/finance/reconciliations
func (h *FinanceHandler) Reconcile(c *gin.Context) {
	var stmt finance.BankStatement
	if err := c.ShouldBindJSON(&stmt); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.reconciliation.Reconcile(c.Request.Context(), stmt)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
