package handler

import (
	reportapp "github.com/erp/finance-engine/internal/application/report"
	"github.com/erp/finance-engine/internal/domain/finance"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ReportHandler exposes the profit and loss, cash flow and dashboard
// operations.
type ReportHandler struct {
	BaseHandler
	profitLoss *reportapp.ProfitLossService
	cashFlow   *reportapp.CashFlowService
	dashboard  *reportapp.DashboardService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(
	profitLoss *reportapp.ProfitLossService,
	cashFlow *reportapp.CashFlowService,
	dashboard *reportapp.DashboardService,
) *ReportHandler {
	return &ReportHandler{
		profitLoss: profitLoss,
		cashFlow:   cashFlow,
		dashboard:  dashboard,
	}
}

// RegisterRoutes registers report routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/reports")
	{
		group.GET("/profit-loss", h.ProfitLoss)
		group.GET("/cash-flow", h.CashFlow)
		group.GET("/dashboard", h.Dashboard)
	}
}

// ProfitLoss builds a profit and loss statement for a period
// GET /api/v1/reports/profit-loss
func (h *ReportHandler) ProfitLoss(c *gin.Context) {
	window, err := parseWindow(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	otherIncome, err := parseDecimalQuery(c, "other_income", decimal.Zero)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	otherExpenses, err := parseDecimalQuery(c, "other_expenses", decimal.Zero)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	customerID, err := parseOptionalUUID(c, "customer_id")
	if err != nil {
		h.HandleError(c, err)
		return
	}

	statement, err := h.profitLoss.GenerateProfitLoss(c.Request.Context(), reportapp.ProfitLossRequest{
		Window:        window,
		Filter:        finance.ReceivablesFilter{CounterpartyID: customerID},
		OtherIncome:   otherIncome,
		OtherExpenses: otherExpenses,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, statement)
}

// CashFlow projects inflows and outflows over a forecast window
// GET /api/v1/reports/cash-flow
func (h *ReportHandler) CashFlow(c *gin.Context) {
	openingBalance, err := parseDecimalQuery(c, "opening_balance", decimal.Zero)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	req := reportapp.CashFlowForecastRequest{OpeningBalance: openingBalance}

	// The window is optional; the forecast policy supplies the horizon
	// when absent.
	if c.Query("start") != "" || c.Query("end") != "" {
		window, err := parseWindow(c)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		req.Window = &window
	}

	forecast, err := h.cashFlow.ForecastCashFlow(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, forecast)
}

// Dashboard composes the financial KPI view for a period
// GET /api/v1/reports/dashboard
func (h *ReportHandler) Dashboard(c *gin.Context) {
	window, err := parseWindow(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	dashboard, err := h.dashboard.ComposeDashboard(c.Request.Context(), reportapp.DashboardRequest{Window: window})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dashboard)
}
