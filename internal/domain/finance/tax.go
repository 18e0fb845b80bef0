package finance

import (
	"github.com/erp/finance-engine/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// TaxType identifies the tax scheme applied to an amount.
type TaxType string

const (
	TaxTypeGST             TaxType = "GST"              // additive, split CGST/SGST or single IGST
	TaxTypeTDS             TaxType = "TDS"              // withheld at source, reduces net
	TaxTypeProfessionalTax TaxType = "PROFESSIONAL_TAX" // fixed deduction
)

// IsValid checks if the tax type is a valid TaxType
func (t TaxType) IsValid() bool {
	switch t {
	case TaxTypeGST, TaxTypeTDS, TaxTypeProfessionalTax:
		return true
	}
	return false
}

// String returns the string representation of TaxType
func (t TaxType) String() string {
	return string(t)
}

// TaxRequest describes a single tax computation. Rate overrides the policy
// default when set; IsInterState only applies to GST.
type TaxRequest struct {
	Amount       decimal.Decimal `json:"amount"`
	TaxType      TaxType         `json:"tax_type"`
	Rate         *decimal.Decimal `json:"rate,omitempty"`
	IsInterState bool            `json:"is_inter_state"`
}

// TaxComponent is one line of a tax breakdown.
type TaxComponent struct {
	Name        string          `json:"name"` // CGST, SGST, IGST, TDS, PROFESSIONAL_TAX
	RatePercent decimal.Decimal `json:"rate_percent"`
	Amount      decimal.Decimal `json:"amount"`
}

// TaxResult is the breakdown for one request. GST is additive
// (NetAmount = Amount + TotalTax); TDS and professional tax are withheld
// (NetAmount = Amount - TotalTax).
type TaxResult struct {
	BaseAmount decimal.Decimal `json:"base_amount"`
	TaxType    TaxType         `json:"tax_type"`
	Components []TaxComponent  `json:"components"`
	TotalTax   decimal.Decimal `json:"total_tax"`
	NetAmount  decimal.Decimal `json:"net_amount"`
}

// TaxCalculator computes tax breakdowns. It is stateless apart from its
// policy and safe for concurrent use.
type TaxCalculator struct {
	policy TaxPolicy
}

// NewTaxCalculator creates a TaxCalculator with the given policy.
func NewTaxCalculator(policy TaxPolicy) *TaxCalculator {
	return &TaxCalculator{policy: policy}
}

// Calculate returns the tax breakdown for the request. An unset tax type
// falls back to GST. Amounts are rounded to 2 decimal places per component;
// the intra-state split allocates the rounding remainder to SGST so that
// CGST + SGST equals the GST amount exactly.
func (c *TaxCalculator) Calculate(req TaxRequest) (*TaxResult, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Tax amount must be positive")
	}

	taxType := req.TaxType
	if taxType == "" {
		taxType = TaxTypeGST
	}

	switch taxType {
	case TaxTypeGST:
		return c.calculateGST(req), nil
	case TaxTypeTDS:
		return c.calculateTDS(req), nil
	case TaxTypeProfessionalTax:
		return c.calculateProfessionalTax(req), nil
	default:
		return nil, shared.NewDomainError("UNSUPPORTED_TAX_TYPE", "Unsupported tax type: "+taxType.String())
	}
}

func (c *TaxCalculator) calculateGST(req TaxRequest) *TaxResult {
	rate := c.policy.GSTRatePercent
	if req.Rate != nil {
		rate = *req.Rate
	}

	gstAmount := req.Amount.Mul(rate).Div(decimal.NewFromInt(100)).Round(2)

	var components []TaxComponent
	if req.IsInterState {
		components = []TaxComponent{
			{Name: "IGST", RatePercent: rate, Amount: gstAmount},
		}
	} else {
		halfRate := rate.Div(decimal.NewFromInt(2))
		cgst := gstAmount.Div(decimal.NewFromInt(2)).Truncate(2)
		sgst := gstAmount.Sub(cgst) // rounding remainder goes to SGST
		components = []TaxComponent{
			{Name: "CGST", RatePercent: halfRate, Amount: cgst},
			{Name: "SGST", RatePercent: halfRate, Amount: sgst},
		}
	}

	return &TaxResult{
		BaseAmount: req.Amount,
		TaxType:    TaxTypeGST,
		Components: components,
		TotalTax:   gstAmount,
		NetAmount:  req.Amount.Add(gstAmount),
	}
}

func (c *TaxCalculator) calculateTDS(req TaxRequest) *TaxResult {
	rate := c.policy.TDSRatePercent
	if req.Rate != nil {
		rate = *req.Rate
	}

	tds := req.Amount.Mul(rate).Div(decimal.NewFromInt(100)).Round(2)

	return &TaxResult{
		BaseAmount: req.Amount,
		TaxType:    TaxTypeTDS,
		Components: []TaxComponent{
			{Name: "TDS", RatePercent: rate, Amount: tds},
		},
		TotalTax:  tds,
		NetAmount: req.Amount.Sub(tds),
	}
}

func (c *TaxCalculator) calculateProfessionalTax(req TaxRequest) *TaxResult {
	amount := c.policy.ProfessionalTaxAmount

	return &TaxResult{
		BaseAmount: req.Amount,
		TaxType:    TaxTypeProfessionalTax,
		Components: []TaxComponent{
			{Name: "PROFESSIONAL_TAX", RatePercent: decimal.Zero, Amount: amount},
		},
		TotalTax:  amount,
		NetAmount: req.Amount.Sub(amount),
	}
}
