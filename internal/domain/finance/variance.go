package finance

import (
	"github.com/erp/finance-engine/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CostBreakdown splits a production cost into its categories. Scrap is zero
// on the standard side; it only arises as actual waste.
type CostBreakdown struct {
	Material decimal.Decimal `json:"material"`
	Labor    decimal.Decimal `json:"labor"`
	Overhead decimal.Decimal `json:"overhead"`
	Scrap    decimal.Decimal `json:"scrap"`
}

// Total returns the sum of all categories.
func (c CostBreakdown) Total() decimal.Decimal {
	return c.Material.Add(c.Labor).Add(c.Overhead).Add(c.Scrap)
}

// BOMLine is one component of a bill of materials with its standard cost.
type BOMLine struct {
	ComponentID      uuid.UUID       `json:"component_id"`
	QuantityPerUnit  decimal.Decimal `json:"quantity_per_unit"`
	UnitStandardCost decimal.Decimal `json:"unit_standard_cost"`
}

// ActualConsumption is the real material usage recorded against a
// production order.
type ActualConsumption struct {
	ComponentID uuid.UUID       `json:"component_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
}

// ProductionCostRecord carries the standard and actual cost of one completed
// production order.
type ProductionCostRecord struct {
	ProductionOrderID uuid.UUID       `json:"production_order_id"`
	OrderNumber       string          `json:"order_number"`
	Quantity          decimal.Decimal `json:"quantity"`
	StandardCost      CostBreakdown   `json:"standard_cost"`
	ActualCost        CostBreakdown   `json:"actual_cost"`
}

// CostVarianceReport compares standard against actual cost per category.
// Positive variance means the order cost more than planned.
type CostVarianceReport struct {
	ProductionOrderID  uuid.UUID       `json:"production_order_id"`
	OrderNumber        string          `json:"order_number"`
	Quantity           decimal.Decimal `json:"quantity"`
	StandardCost       CostBreakdown   `json:"standard_cost"`
	ActualCost         CostBreakdown   `json:"actual_cost"`
	MaterialVariance   decimal.Decimal `json:"material_variance"`
	LaborVariance      decimal.Decimal `json:"labor_variance"`
	OverheadVariance   decimal.Decimal `json:"overhead_variance"`
	ScrapVariance      decimal.Decimal `json:"scrap_variance"`
	TotalVariance      decimal.Decimal `json:"total_variance"`
	UnitVariance       decimal.Decimal `json:"unit_variance"`
	VariancePercentage decimal.Decimal `json:"variance_percentage"`
}

// VarianceAnalyzer derives cost variances for completed production orders.
type VarianceAnalyzer struct {
	policy CostingPolicy
}

// NewVarianceAnalyzer creates a VarianceAnalyzer with the given policy.
func NewVarianceAnalyzer(policy CostingPolicy) *VarianceAnalyzer {
	return &VarianceAnalyzer{policy: policy}
}

// StandardCost builds the planned cost of producing quantity units: BOM
// material cost, labor at the policy rate per unit, and overhead as the
// standard percentage of material plus labor.
func (a *VarianceAnalyzer) StandardCost(bom []BOMLine, quantity decimal.Decimal) CostBreakdown {
	material := decimal.Zero
	for _, line := range bom {
		material = material.Add(line.QuantityPerUnit.Mul(line.UnitStandardCost).Mul(quantity))
	}
	labor := a.policy.LaborRatePerUnit.Mul(quantity)
	overhead := material.Add(labor).Mul(a.policy.StandardOverheadPercent).Div(decimal.NewFromInt(100)).Round(2)

	return CostBreakdown{
		Material: material,
		Labor:    labor,
		Overhead: overhead,
		Scrap:    decimal.Zero,
	}
}

// ActualCost builds the real cost from recorded consumption, actual labor
// and scrap, with overhead at the actual percentage of material plus labor.
func (a *VarianceAnalyzer) ActualCost(consumed []ActualConsumption, laborCost, scrapCost decimal.Decimal) CostBreakdown {
	material := decimal.Zero
	for _, c := range consumed {
		material = material.Add(c.Quantity.Mul(c.UnitCost))
	}
	overhead := material.Add(laborCost).Mul(a.policy.ActualOverheadPercent).Div(decimal.NewFromInt(100)).Round(2)

	return CostBreakdown{
		Material: material,
		Labor:    laborCost,
		Overhead: overhead,
		Scrap:    scrapCost,
	}
}

// Analyze compares standard and actual cost for one production order.
// Quantity must be positive; unit variance is undefined otherwise.
// VariancePercentage is 0 when the standard total is 0.
func (a *VarianceAnalyzer) Analyze(rec ProductionCostRecord) (*CostVarianceReport, error) {
	if rec.Quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Production quantity must be positive")
	}

	standardTotal := rec.StandardCost.Total()
	actualTotal := rec.ActualCost.Total()
	totalVariance := actualTotal.Sub(standardTotal)

	variancePct := decimal.Zero
	if !standardTotal.IsZero() {
		variancePct = totalVariance.Div(standardTotal).Mul(decimal.NewFromInt(100)).Round(2)
	}

	return &CostVarianceReport{
		ProductionOrderID:  rec.ProductionOrderID,
		OrderNumber:        rec.OrderNumber,
		Quantity:           rec.Quantity,
		StandardCost:       rec.StandardCost,
		ActualCost:         rec.ActualCost,
		MaterialVariance:   rec.ActualCost.Material.Sub(rec.StandardCost.Material),
		LaborVariance:      rec.ActualCost.Labor.Sub(rec.StandardCost.Labor),
		OverheadVariance:   rec.ActualCost.Overhead.Sub(rec.StandardCost.Overhead),
		ScrapVariance:      rec.ActualCost.Scrap.Sub(rec.StandardCost.Scrap),
		TotalVariance:      totalVariance,
		UnitVariance:       totalVariance.Div(rec.Quantity).Round(4),
		VariancePercentage: variancePct,
	}, nil
}
