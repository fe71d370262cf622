package valueobject

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// ErrUnknownScenario is returned when a scenario name does not match one of
// the three supported scenarios.
var ErrUnknownScenario = errors.New("unknown scenario name")

// ---------------------------------------------------------------------------
// ScenarioName – immutable value object
// ---------------------------------------------------------------------------

// ScenarioName identifies one of the three projection scenarios an analysis
// is run against.
type ScenarioName struct {
	value string
}

const (
	scenarioStandard     = "STANDARD"
	scenarioConservative = "CONSERVATIVE"
	scenarioOptimistic   = "OPTIMISTIC"
)

var (
	ScenarioStandard     = ScenarioName{value: scenarioStandard}
	ScenarioConservative = ScenarioName{value: scenarioConservative}
	ScenarioOptimistic   = ScenarioName{value: scenarioOptimistic}
)

var validScenarioNames = map[string]ScenarioName{
	scenarioStandard:     ScenarioStandard,
	scenarioConservative: ScenarioConservative,
	scenarioOptimistic:   ScenarioOptimistic,
}

// NewScenarioName creates a ScenarioName from a raw string.
func NewScenarioName(s string) (ScenarioName, error) {
	v, ok := validScenarioNames[s]
	if !ok {
		return ScenarioName{}, fmt.Errorf("%w: %q", ErrUnknownScenario, s)
	}
	return v, nil
}

// String returns the string representation of the name.
func (n ScenarioName) String() string { return n.value }

// IsZero returns true if the name has not been initialised.
func (n ScenarioName) IsZero() bool { return n.value == "" }

// Equal returns true when both names carry the same value.
func (n ScenarioName) Equal(other ScenarioName) bool { return n.value == other.value }

// MarshalJSON encodes the name as its string value.
func (n ScenarioName) MarshalJSON() ([]byte, error) { return json.Marshal(n.value) }

// UnmarshalJSON decodes and validates a string value.
func (n *ScenarioName) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := NewScenarioName(s)
	if err != nil {
		return err
	}
	*n = v
	return nil
}

// ---------------------------------------------------------------------------
// Scenario assumptions – canonical schema
// ---------------------------------------------------------------------------

// FutureSaleAssumptions parameterise a resale-before-or-after-delivery analysis.
// All rates are percentages. InvestmentPeriodMonths of zero means the sale
// month is derived from the delivery month per scenario.
type FutureSaleAssumptions struct {
	InvestmentPeriodMonths int             `json:"investment_period_months"`
	AppreciationRate       decimal.Decimal `json:"appreciation_rate"`
	SellingExpenseRate     decimal.Decimal `json:"selling_expense_rate"`
	IncomeTaxRate          decimal.Decimal `json:"income_tax_rate"`
	AdditionalCostsRate    decimal.Decimal `json:"additional_costs_rate"`
	MaintenanceCostsRate   decimal.Decimal `json:"maintenance_costs_rate"`
}

// AssetAppreciationAssumptions parameterise a long-term hold analysis.
type AssetAppreciationAssumptions struct {
	AnnualRate          decimal.Decimal `json:"annual_rate"`
	AnalysisPeriodYears int             `json:"analysis_period_years"`
	MaintenanceCosts    decimal.Decimal `json:"maintenance_costs"`
	AnnualTaxes         decimal.Decimal `json:"annual_taxes"`
}

// RentalYieldAssumptions parameterise a rental-income analysis. MonthlyRentRate
// is the monthly rent as a percentage of the property value.
type RentalYieldAssumptions struct {
	MonthlyRentRate  decimal.Decimal `json:"monthly_rent_rate"`
	OccupancyRate    decimal.Decimal `json:"occupancy_rate"`
	ManagementFee    decimal.Decimal `json:"management_fee"`
	MaintenanceCosts decimal.Decimal `json:"maintenance_costs"`
	AnnualIncrease   decimal.Decimal `json:"annual_increase"`
}

// Scenario bundles the three assumption categories for one scenario name.
type Scenario struct {
	FutureSale        FutureSaleAssumptions        `json:"future_sale"`
	AssetAppreciation AssetAppreciationAssumptions `json:"asset_appreciation"`
	RentalYield       RentalYieldAssumptions       `json:"rental_yield"`
}

// ScenarioSet carries the full standard/conservative/optimistic triple.
type ScenarioSet struct {
	Standard     Scenario `json:"standard"`
	Conservative Scenario `json:"conservative"`
	Optimistic   Scenario `json:"optimistic"`
}

// ByName returns the scenario for the given name.
func (s ScenarioSet) ByName(name ScenarioName) (Scenario, error) {
	switch name {
	case ScenarioStandard:
		return s.Standard, nil
	case ScenarioConservative:
		return s.Conservative, nil
	case ScenarioOptimistic:
		return s.Optimistic, nil
	default:
		return Scenario{}, fmt.Errorf("%w: %q", ErrUnknownScenario, name.String())
	}
}

// SaleMonth resolves the month the unit is assumed to be sold under the given
// scenario. An explicit investment period wins; otherwise the standard
// scenario sells one month after delivery, the conservative one 30% later and
// the optimistic one 30% earlier.
func (s ScenarioSet) SaleMonth(name ScenarioName, deliveryMonth int) (int, error) {
	sc, err := s.ByName(name)
	if err != nil {
		return 0, err
	}
	if sc.FutureSale.InvestmentPeriodMonths > 0 {
		return sc.FutureSale.InvestmentPeriodMonths, nil
	}
	switch name {
	case ScenarioConservative:
		return int(math.Round(float64(deliveryMonth) * 1.3)), nil
	case ScenarioOptimistic:
		m := int(math.Round(float64(deliveryMonth) * 0.7))
		if m < 1 {
			m = 1
		}
		return m, nil
	default:
		return deliveryMonth + 1, nil
	}
}

// DefaultScenarioSet returns the stock assumption values used when the caller
// supplies none.
func DefaultScenarioSet() ScenarioSet {
	return ScenarioSet{
		Standard: Scenario{
			FutureSale: FutureSaleAssumptions{
				AppreciationRate:     decimal.NewFromInt(15),
				SellingExpenseRate:   decimal.NewFromInt(6),
				IncomeTaxRate:        decimal.NewFromInt(15),
				AdditionalCostsRate:  decimal.NewFromInt(2),
				MaintenanceCostsRate: decimal.Zero,
			},
			AssetAppreciation: AssetAppreciationAssumptions{
				AnnualRate:          decimal.NewFromInt(15),
				AnalysisPeriodYears: 10,
			},
			RentalYield: RentalYieldAssumptions{
				MonthlyRentRate:  decimal.NewFromFloat(0.6),
				OccupancyRate:    decimal.NewFromInt(85),
				ManagementFee:    decimal.NewFromInt(10),
				MaintenanceCosts: decimal.NewFromInt(5),
				AnnualIncrease:   decimal.NewFromInt(5),
			},
		},
		Conservative: Scenario{
			FutureSale: FutureSaleAssumptions{
				AppreciationRate:     decimal.NewFromInt(12),
				SellingExpenseRate:   decimal.NewFromInt(6),
				IncomeTaxRate:        decimal.NewFromInt(15),
				AdditionalCostsRate:  decimal.NewFromInt(2),
				MaintenanceCostsRate: decimal.Zero,
			},
			AssetAppreciation: AssetAppreciationAssumptions{
				AnnualRate:          decimal.NewFromInt(12),
				AnalysisPeriodYears: 10,
			},
			RentalYield: RentalYieldAssumptions{
				MonthlyRentRate:  decimal.NewFromFloat(0.4),
				OccupancyRate:    decimal.NewFromInt(75),
				ManagementFee:    decimal.NewFromInt(10),
				MaintenanceCosts: decimal.NewFromInt(5),
				AnnualIncrease:   decimal.NewFromInt(5),
			},
		},
		Optimistic: Scenario{
			FutureSale: FutureSaleAssumptions{
				AppreciationRate:     decimal.NewFromInt(18),
				SellingExpenseRate:   decimal.NewFromInt(6),
				IncomeTaxRate:        decimal.NewFromInt(15),
				AdditionalCostsRate:  decimal.NewFromInt(2),
				MaintenanceCostsRate: decimal.Zero,
			},
			AssetAppreciation: AssetAppreciationAssumptions{
				AnnualRate:          decimal.NewFromInt(18),
				AnalysisPeriodYears: 10,
			},
			RentalYield: RentalYieldAssumptions{
				MonthlyRentRate:  decimal.NewFromFloat(0.8),
				OccupancyRate:    decimal.NewFromInt(95),
				ManagementFee:    decimal.NewFromInt(10),
				MaintenanceCosts: decimal.NewFromInt(5),
				AnnualIncrease:   decimal.NewFromInt(5),
			},
		},
	}
}
