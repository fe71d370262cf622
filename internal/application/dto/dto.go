package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// CustomInstallmentRequest is one caller-supplied payment at an explicit month.
type CustomInstallmentRequest struct {
	Month  int             `json:"month"`
	Amount decimal.Decimal `json:"amount"`
}

// ReinforcementRequest configures a recurring supplementary payment.
type ReinforcementRequest struct {
	Amount            decimal.Decimal `json:"amount"`
	PeriodicityMonths int             `json:"periodicity_months"`
}

// CalculationRequest carries the engine input fields as submitted by a caller.
type CalculationRequest struct {
	PropertyPrice              decimal.Decimal            `json:"property_price"`
	Discount                   decimal.Decimal            `json:"discount"`
	DownPayment                decimal.Decimal            `json:"down_payment"`
	DeliveryMonth              int                        `json:"delivery_month"`
	PaymentTermMonths          int                        `json:"payment_term_months"`
	CorrectionRatePreDelivery  decimal.Decimal            `json:"correction_rate_pre_delivery"`
	CorrectionRatePostDelivery decimal.Decimal            `json:"correction_rate_post_delivery"`
	IndexPreDelivery           string                     `json:"index_pre_delivery,omitempty"`
	IndexPostDelivery          string                     `json:"index_post_delivery,omitempty"`
	InstallmentMode            string                     `json:"installment_mode"`
	CustomInstallments         []CustomInstallmentRequest `json:"custom_installments,omitempty"`
	Reinforcement              *ReinforcementRequest      `json:"reinforcement,omitempty"`
	KeysPayment                decimal.Decimal            `json:"keys_payment"`
}

// ScenarioAssumptionsRequest carries caller overrides for one scenario.
// Zero-valued fields fall back to the stock assumption values.
type ScenarioAssumptionsRequest struct {
	FutureSale        *FutureSaleRequest        `json:"future_sale,omitempty"`
	AssetAppreciation *AssetAppreciationRequest `json:"asset_appreciation,omitempty"`
	RentalYield       *RentalYieldRequest       `json:"rental_yield,omitempty"`
}

// FutureSaleRequest overrides future-sale assumptions.
type FutureSaleRequest struct {
	InvestmentPeriodMonths int             `json:"investment_period_months,omitempty"`
	AppreciationRate       decimal.Decimal `json:"appreciation_rate"`
	SellingExpenseRate     decimal.Decimal `json:"selling_expense_rate"`
	IncomeTaxRate          decimal.Decimal `json:"income_tax_rate"`
	AdditionalCostsRate    decimal.Decimal `json:"additional_costs_rate"`
	MaintenanceCostsRate   decimal.Decimal `json:"maintenance_costs_rate"`
}

// AssetAppreciationRequest overrides asset-appreciation assumptions.
type AssetAppreciationRequest struct {
	AnnualRate          decimal.Decimal `json:"annual_rate"`
	AnalysisPeriodYears int             `json:"analysis_period_years,omitempty"`
	MaintenanceCosts    decimal.Decimal `json:"maintenance_costs"`
	AnnualTaxes         decimal.Decimal `json:"annual_taxes"`
}

// RentalYieldRequest overrides rental-yield assumptions.
type RentalYieldRequest struct {
	MonthlyRentRate  decimal.Decimal `json:"monthly_rent_rate"`
	OccupancyRate    decimal.Decimal `json:"occupancy_rate"`
	ManagementFee    decimal.Decimal `json:"management_fee"`
	MaintenanceCosts decimal.Decimal `json:"maintenance_costs"`
	AnnualIncrease   decimal.Decimal `json:"annual_increase"`
}

// ScenariosRequest carries the optional scenario triple on projection writes.
type ScenariosRequest struct {
	Standard     *ScenarioAssumptionsRequest `json:"standard,omitempty"`
	Conservative *ScenarioAssumptionsRequest `json:"conservative,omitempty"`
	Optimistic   *ScenarioAssumptionsRequest `json:"optimistic,omitempty"`
}

// CreateProjectionRequest creates and stores a new projection.
type CreateProjectionRequest struct {
	ClientID   string             `json:"client_id"`
	PropertyID string             `json:"property_id,omitempty"`
	Title      string             `json:"title"`
	Input      CalculationRequest `json:"input"`
	Scenarios  *ScenariosRequest  `json:"scenarios,omitempty"`
}

// RecalculateProjectionRequest reruns an existing projection with a new input.
type RecalculateProjectionRequest struct {
	ProjectionID string             `json:"projection_id"`
	Input        CalculationRequest `json:"input"`
}

// PaymentTotalsRequest asks for paid-through-month totals under a scenario.
type PaymentTotalsRequest struct {
	ProjectionID string `json:"projection_id"`
	Scenario     string `json:"scenario"`
	// SaleMonth overrides the scenario's own sale-month resolution when > 0.
	SaleMonth int `json:"sale_month,omitempty"`
}

// ScenarioAnalysisRequest asks for the investment analyses under a scenario.
type ScenarioAnalysisRequest struct {
	ProjectionID string `json:"projection_id"`
	Scenario     string `json:"scenario"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// ScheduleEntryResponse is the external representation of one schedule month.
type ScheduleEntryResponse struct {
	Month                  int             `json:"month"`
	Kind                   string          `json:"kind"`
	BaseInstallment        decimal.Decimal `json:"base_installment"`
	BaseReinforcement      decimal.Decimal `json:"base_reinforcement"`
	BaseKeys               decimal.Decimal `json:"base_keys"`
	CorrectionFactor       decimal.Decimal `json:"correction_factor"`
	CorrectedInstallment   decimal.Decimal `json:"corrected_installment"`
	CorrectedReinforcement decimal.Decimal `json:"corrected_reinforcement"`
	CorrectedKeys          decimal.Decimal `json:"corrected_keys"`
	NetBalance             decimal.Decimal `json:"net_balance"`
	CorrectedBalance       decimal.Decimal `json:"corrected_balance"`
}

// SummaryResponse is the external representation of a projection summary.
type SummaryResponse struct {
	FinancedAmount       decimal.Decimal `json:"financed_amount"`
	TotalNominalPaid     decimal.Decimal `json:"total_nominal_paid"`
	TotalCorrectedPaid   decimal.Decimal `json:"total_corrected_paid"`
	TotalCorrection      decimal.Decimal `json:"total_correction"`
	CorrectionPercentage decimal.Decimal `json:"correction_percentage"`
}

// ProjectionResponse is the full external representation of a projection.
type ProjectionResponse struct {
	ID         string                  `json:"id"`
	ClientID   string                  `json:"client_id"`
	PropertyID string                  `json:"property_id,omitempty"`
	Title      string                  `json:"title"`
	Input      CalculationRequest      `json:"input"`
	Schedule   []ScheduleEntryResponse `json:"schedule,omitempty"`
	Summary    SummaryResponse         `json:"summary"`
	Version    int                     `json:"version"`
	CreatedAt  time.Time               `json:"created_at"`
	UpdatedAt  time.Time               `json:"updated_at"`
}

// PreviewResponse is the result of a non-persisted calculation run.
type PreviewResponse struct {
	Schedule  []ScheduleEntryResponse `json:"schedule"`
	Summary   SummaryResponse         `json:"summary"`
	FromCache bool                    `json:"from_cache"`
}

// PaymentTotalsResponse is the paid-through-month reduction for a scenario.
type PaymentTotalsResponse struct {
	Scenario                string          `json:"scenario"`
	SaleMonth               int             `json:"sale_month"`
	DownPayment             decimal.Decimal `json:"down_payment"`
	InstallmentsNominal     decimal.Decimal `json:"installments_nominal"`
	InstallmentsCorrected   decimal.Decimal `json:"installments_corrected"`
	ReinforcementsNominal   decimal.Decimal `json:"reinforcements_nominal"`
	ReinforcementsCorrected decimal.Decimal `json:"reinforcements_corrected"`
	KeysNominal             decimal.Decimal `json:"keys_nominal"`
	KeysCorrected           decimal.Decimal `json:"keys_corrected"`
	TotalPaid               decimal.Decimal `json:"total_paid"`
}

// FutureSaleResponse is the projected resale outcome for a scenario.
type FutureSaleResponse struct {
	SaleMonth        int             `json:"sale_month"`
	TotalInvestment  decimal.Decimal `json:"total_investment"`
	ProjectedValue   decimal.Decimal `json:"projected_value"`
	SaleExpenses     decimal.Decimal `json:"sale_expenses"`
	GrossProfit      decimal.Decimal `json:"gross_profit"`
	IncomeTax        decimal.Decimal `json:"income_tax"`
	NetProfit        decimal.Decimal `json:"net_profit"`
	ROIPercentage    decimal.Decimal `json:"roi_percentage"`
	AnnualizedReturn decimal.Decimal `json:"annualized_return"`
	PaybackMonths    int             `json:"payback_months"`
}

// YearlyAssetValueResponse is one row of the long-term hold series.
type YearlyAssetValueResponse struct {
	Year          int             `json:"year"`
	PropertyValue decimal.Decimal `json:"property_value"`
	NetValue      decimal.Decimal `json:"net_value"`
}

// AssetAppreciationResponse is the projected hold outcome for a scenario.
type AssetAppreciationResponse struct {
	PeriodYears            int                        `json:"period_years"`
	InitialValue           decimal.Decimal            `json:"initial_value"`
	FinalValue             decimal.Decimal            `json:"final_value"`
	TotalAppreciation      decimal.Decimal            `json:"total_appreciation"`
	AppreciationPercentage decimal.Decimal            `json:"appreciation_percentage"`
	TotalMaintenance       decimal.Decimal            `json:"total_maintenance"`
	TotalTaxes             decimal.Decimal            `json:"total_taxes"`
	Yearly                 []YearlyAssetValueResponse `json:"yearly"`
}

// YearlyRentalIncomeResponse is one row of the rental series.
type YearlyRentalIncomeResponse struct {
	Year            int             `json:"year"`
	MonthlyRent     decimal.Decimal `json:"monthly_rent"`
	AnnualNetIncome decimal.Decimal `json:"annual_net_income"`
}

// RentalYieldResponse is the projected rental outcome for a scenario.
type RentalYieldResponse struct {
	MonthlyRent          decimal.Decimal              `json:"monthly_rent"`
	MonthlyNetIncome     decimal.Decimal              `json:"monthly_net_income"`
	AnnualGrossIncome    decimal.Decimal              `json:"annual_gross_income"`
	AnnualExpenses       decimal.Decimal              `json:"annual_expenses"`
	AnnualNetIncome      decimal.Decimal              `json:"annual_net_income"`
	GrossYieldPercentage decimal.Decimal              `json:"gross_yield_percentage"`
	NetYieldPercentage   decimal.Decimal              `json:"net_yield_percentage"`
	Yearly               []YearlyRentalIncomeResponse `json:"yearly"`
}

// InternalRateResponse is the cash-flow rate of return for a scenario.
type InternalRateResponse struct {
	SaleMonth   int               `json:"sale_month"`
	MonthlyRate decimal.Decimal   `json:"monthly_rate"`
	AnnualRate  decimal.Decimal   `json:"annual_rate"`
	Converged   bool              `json:"converged"`
	CashFlow    []decimal.Decimal `json:"cash_flow"`
}

// ScenarioAnalysisResponse bundles the four analyses for one scenario.
type ScenarioAnalysisResponse struct {
	Scenario          string                    `json:"scenario"`
	SaleMonth         int                       `json:"sale_month"`
	FutureSale        FutureSaleResponse        `json:"future_sale"`
	AssetAppreciation AssetAppreciationResponse `json:"asset_appreciation"`
	RentalYield       RentalYieldResponse       `json:"rental_yield"`
	InternalRate      InternalRateResponse      `json:"internal_rate"`
}
