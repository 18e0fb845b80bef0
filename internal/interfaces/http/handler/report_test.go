package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	reportapp "github.com/erp/finance-engine/internal/application/report"
	"github.com/erp/finance-engine/internal/domain/finance"
	"github.com/erp/finance-engine/internal/domain/report"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newReportRouter(src *fakeSources) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	clock := func() time.Time { return testNow }

	profitLoss := reportapp.NewProfitLossService(src, src, src, finance.DefaultOperatingExpensePolicy(), logger)
	cashFlow := reportapp.NewCashFlowService(src, src, src, finance.DefaultForecastPolicy(), logger,
		reportapp.WithCashFlowClock(clock))
	dashboard := reportapp.NewDashboardService(profitLoss, src, src, logger,
		reportapp.WithDashboardClock(clock))

	h := NewReportHandler(profitLoss, cashFlow, dashboard)

	engine := gin.New()
	h.RegisterRoutes(engine.Group("/api/v1"))
	return engine
}

func TestReportHandler_ProfitLoss(t *testing.T) {
	inWindow := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)
	src := &fakeSources{
		sales:    []finance.RevenueEntry{{Amount: decimal.NewFromInt(10000), Date: inWindow}},
		services: []finance.RevenueEntry{{Amount: decimal.NewFromInt(2000), Date: inWindow}},
	}
	engine := newReportRouter(src)

	t.Run("builds the statement for the window", func(t *testing.T) {
		rec, env := perform(engine, http.MethodGet,
			"/api/v1/reports/profit-loss?start=2026-06-01&end=2026-06-30", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var statement report.ProfitLossStatement
		require.NoError(t, json.Unmarshal(env.Data, &statement))
		assert.True(t, decimal.NewFromInt(12000).Equal(statement.TotalRevenue))
		assert.True(t, statement.TotalCOGS.IsZero())
		assert.True(t, decimal.NewFromInt(12000).Equal(statement.GrossProfit))
	})

	t.Run("other income and expenses adjust the net", func(t *testing.T) {
		rec, env := perform(engine, http.MethodGet,
			"/api/v1/reports/profit-loss?start=2026-06-01&end=2026-06-30&other_income=200&other_expenses=50", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var statement report.ProfitLossStatement
		require.NoError(t, json.Unmarshal(env.Data, &statement))
		assert.True(t, decimal.NewFromInt(200).Equal(statement.OtherIncome))
		assert.True(t, decimal.NewFromInt(50).Equal(statement.OtherExpenses))
	})

	t.Run("inverted window is rejected", func(t *testing.T) {
		rec, env := perform(engine, http.MethodGet,
			"/api/v1/reports/profit-loss?start=2026-06-30&end=2026-06-01", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, "INVALID_DATE_RANGE", env.Error.Code)
	})

	t.Run("non-decimal adjustment is rejected", func(t *testing.T) {
		rec, env := perform(engine, http.MethodGet,
			"/api/v1/reports/profit-loss?start=2026-06-01&end=2026-06-30&other_income=abc", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, "INVALID_INPUT", env.Error.Code)
	})
}

func TestReportHandler_CashFlow(t *testing.T) {
	customerID := uuid.New()
	src := &fakeSources{
		invoices: []finance.MonetaryItem{openInvoice(customerID, "Acme", 8000, -9, testNow)},
		sales:    []finance.RevenueEntry{{Amount: decimal.NewFromInt(9000), Date: testNow.AddDate(0, 0, -10)}},
	}
	engine := newReportRouter(src)

	t.Run("defaults the window to the policy horizon", func(t *testing.T) {
		rec, env := perform(engine, http.MethodGet,
			"/api/v1/reports/cash-flow?opening_balance=1000", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var forecast report.CashFlowForecast
		require.NoError(t, json.Unmarshal(env.Data, &forecast))
		assert.True(t, decimal.NewFromInt(1000).Equal(forecast.OpeningBalance))
		assert.True(t, decimal.NewFromInt(8000).Equal(forecast.ReceivablesDue))
		assert.True(t, forecast.TotalInflows.GreaterThan(decimal.Zero))
	})

	t.Run("explicit window is honored", func(t *testing.T) {
		rec, env := perform(engine, http.MethodGet,
			"/api/v1/reports/cash-flow?start=2026-06-15&end=2026-06-20", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var forecast report.CashFlowForecast
		require.NoError(t, json.Unmarshal(env.Data, &forecast))
		assert.Equal(t, time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC), forecast.PeriodStart)
	})

	t.Run("half-specified window is rejected", func(t *testing.T) {
		rec, env := perform(engine, http.MethodGet, "/api/v1/reports/cash-flow?start=2026-06-15", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, "INVALID_DATE_RANGE", env.Error.Code)
	})
}

func TestReportHandler_Dashboard(t *testing.T) {
	inWindow := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)
	src := &fakeSources{
		sales:    []finance.RevenueEntry{{Amount: decimal.NewFromInt(10000), Date: inWindow}},
		invoices: []finance.MonetaryItem{openInvoice(uuid.New(), "Acme", 4000, 45, testNow)},
		orders:   []finance.MonetaryItem{openInvoice(uuid.New(), "Steel Co", 5000, -10, testNow)},
	}
	engine := newReportRouter(src)

	t.Run("composes receivable and payable KPIs", func(t *testing.T) {
		rec, env := perform(engine, http.MethodGet,
			"/api/v1/reports/dashboard?start=2026-06-01&end=2026-06-30", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var dash report.FinancialDashboard
		require.NoError(t, json.Unmarshal(env.Data, &dash))
		assert.True(t, decimal.NewFromInt(10000).Equal(dash.TotalRevenue))
		assert.True(t, decimal.NewFromInt(4000).Equal(dash.TotalReceivables))
		assert.True(t, decimal.NewFromInt(4000).Equal(dash.OverdueReceivables))
		assert.True(t, decimal.NewFromInt(5000).Equal(dash.TotalPayables))
		assert.True(t, decimal.NewFromFloat(0.8).Equal(dash.ReceivableToPayableRatio))
		assert.True(t, decimal.NewFromInt(100).Equal(dash.OverduePercentage))
	})

	t.Run("missing window is rejected", func(t *testing.T) {
		rec, env := perform(engine, http.MethodGet, "/api/v1/reports/dashboard", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, "INVALID_DATE_RANGE", env.Error.Code)
	})
}
