package finance

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVarianceAnalyzerAnalyze(t *testing.T) {
	analyzer := NewVarianceAnalyzer(DefaultCostingPolicy())

	t.Run("computes total, unit and percentage variance", func(t *testing.T) {
		report, err := analyzer.Analyze(ProductionCostRecord{
			ProductionOrderID: uuid.New(),
			OrderNumber:       "PO-1001",
			Quantity:          decimal.NewFromInt(10),
			StandardCost: CostBreakdown{
				Material: decimal.NewFromInt(600),
				Labor:    decimal.NewFromInt(250),
				Overhead: decimal.NewFromInt(150),
			},
			ActualCost: CostBreakdown{
				Material: decimal.NewFromInt(640),
				Labor:    decimal.NewFromInt(260),
				Overhead: decimal.NewFromInt(150),
				Scrap:    decimal.NewFromInt(50),
			},
		})
		require.NoError(t, err)

		assert.True(t, decimal.NewFromInt(100).Equal(report.TotalVariance))
		assert.True(t, decimal.NewFromInt(10).Equal(report.UnitVariance))
		assert.True(t, decimal.NewFromInt(10).Equal(report.VariancePercentage))
		assert.True(t, decimal.NewFromInt(40).Equal(report.MaterialVariance))
		assert.True(t, decimal.NewFromInt(10).Equal(report.LaborVariance))
		assert.True(t, decimal.NewFromInt(50).Equal(report.ScrapVariance))
	})

	t.Run("favorable variance is negative", func(t *testing.T) {
		report, err := analyzer.Analyze(ProductionCostRecord{
			ProductionOrderID: uuid.New(),
			Quantity:          decimal.NewFromInt(5),
			StandardCost:      CostBreakdown{Material: decimal.NewFromInt(1000)},
			ActualCost:        CostBreakdown{Material: decimal.NewFromInt(900)},
		})
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(-100).Equal(report.TotalVariance))
		assert.True(t, decimal.NewFromInt(-20).Equal(report.UnitVariance))
	})

	t.Run("zero standard cost yields zero percentage", func(t *testing.T) {
		report, err := analyzer.Analyze(ProductionCostRecord{
			ProductionOrderID: uuid.New(),
			Quantity:          decimal.NewFromInt(1),
			ActualCost:        CostBreakdown{Material: decimal.NewFromInt(100)},
		})
		require.NoError(t, err)
		assert.True(t, report.VariancePercentage.IsZero())
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		_, err := analyzer.Analyze(ProductionCostRecord{
			ProductionOrderID: uuid.New(),
			Quantity:          decimal.Zero,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "positive")
	})
}

func TestVarianceAnalyzerCostBuilders(t *testing.T) {
	analyzer := NewVarianceAnalyzer(CostingPolicy{
		LaborRatePerUnit:        decimal.NewFromInt(50),
		StandardOverheadPercent: decimal.NewFromInt(15),
		ActualOverheadPercent:   decimal.NewFromInt(20),
	})

	t.Run("standard cost from BOM plus labor plus overhead", func(t *testing.T) {
		bom := []BOMLine{
			{ComponentID: uuid.New(), QuantityPerUnit: decimal.NewFromInt(2), UnitStandardCost: decimal.NewFromInt(30)},
			{ComponentID: uuid.New(), QuantityPerUnit: decimal.NewFromInt(1), UnitStandardCost: decimal.NewFromInt(40)},
		}
		cost := analyzer.StandardCost(bom, decimal.NewFromInt(10))

		// material (2*30 + 1*40) * 10 = 1000, labor 50*10 = 500, overhead 15% of 1500 = 225
		assert.True(t, decimal.NewFromInt(1000).Equal(cost.Material))
		assert.True(t, decimal.NewFromInt(500).Equal(cost.Labor))
		assert.True(t, decimal.NewFromInt(225).Equal(cost.Overhead))
		assert.True(t, cost.Scrap.IsZero())
		assert.True(t, decimal.NewFromInt(1725).Equal(cost.Total()))
	})

	t.Run("actual cost applies its own overhead rate and scrap", func(t *testing.T) {
		consumed := []ActualConsumption{
			{ComponentID: uuid.New(), Quantity: decimal.NewFromInt(22), UnitCost: decimal.NewFromInt(30)},
		}
		cost := analyzer.ActualCost(consumed, decimal.NewFromInt(540), decimal.NewFromInt(80))

		// material 660, labor 540, overhead 20% of 1200 = 240, scrap 80
		assert.True(t, decimal.NewFromInt(660).Equal(cost.Material))
		assert.True(t, decimal.NewFromInt(240).Equal(cost.Overhead))
		assert.True(t, decimal.NewFromInt(80).Equal(cost.Scrap))
		assert.True(t, decimal.NewFromInt(1520).Equal(cost.Total()))
	})
}
