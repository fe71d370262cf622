package service

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/terravista/projection-service/internal/domain/model"
	"github.com/terravista/projection-service/internal/domain/valueobject"
)

const defaultAnalysisPeriodYears = 10

// FutureSaleAnalysis is the projected outcome of reselling the unit at the
// scenario's sale month. All rate fields are percentages.
type FutureSaleAnalysis struct {
	Scenario         valueobject.ScenarioName
	SaleMonth        int
	TotalInvestment  decimal.Decimal
	ProjectedValue   decimal.Decimal
	SaleExpenses     decimal.Decimal
	GrossProfit      decimal.Decimal
	IncomeTax        decimal.Decimal
	NetProfit        decimal.Decimal
	ROIPercentage    decimal.Decimal
	AnnualizedReturn decimal.Decimal
	PaybackMonths    int
}

// YearlyAssetValue is one row of the long-term hold series. During the
// construction years the value grows linearly toward the list price; after
// delivery it compounds at the scenario's annual rate. NetValue subtracts the
// cumulative maintenance and taxes carried up to that year.
type YearlyAssetValue struct {
	Year          int
	PropertyValue decimal.Decimal
	NetValue      decimal.Decimal
}

// AssetAppreciationAnalysis is the projected outcome of holding the unit for
// the scenario's analysis period.
type AssetAppreciationAnalysis struct {
	Scenario               valueobject.ScenarioName
	PeriodYears            int
	InitialValue           decimal.Decimal
	FinalValue             decimal.Decimal
	TotalAppreciation      decimal.Decimal
	AppreciationPercentage decimal.Decimal
	TotalMaintenance       decimal.Decimal
	TotalTaxes             decimal.Decimal
	Yearly                 []YearlyAssetValue
}

// YearlyRentalIncome is one row of the rental series. Years within the
// construction phase produce no income; the rent starts increasing the year
// after the first full post-delivery year.
type YearlyRentalIncome struct {
	Year            int
	MonthlyRent     decimal.Decimal
	AnnualNetIncome decimal.Decimal
}

// RentalYieldAnalysis is the projected rental outcome once the unit is
// delivered. Yields are annual percentages of the property price.
type RentalYieldAnalysis struct {
	Scenario             valueobject.ScenarioName
	MonthlyRent          decimal.Decimal
	MonthlyNetIncome     decimal.Decimal
	AnnualGrossIncome    decimal.Decimal
	AnnualExpenses       decimal.Decimal
	AnnualNetIncome      decimal.Decimal
	GrossYieldPercentage decimal.Decimal
	NetYieldPercentage   decimal.Decimal
	Yearly               []YearlyRentalIncome
}

// ScenarioAnalysis bundles the four analyses for one scenario.
type ScenarioAnalysis struct {
	Scenario          valueobject.ScenarioName
	SaleMonth         int
	FutureSale        FutureSaleAnalysis
	AssetAppreciation AssetAppreciationAnalysis
	RentalYield       RentalYieldAnalysis
	InternalRate      InternalRateAnalysis
}

// ScenarioAnalyzer derives the investment analyses from a projection's
// computed schedule and its scenario assumptions. It is stateless.
type ScenarioAnalyzer struct {
	totals *TotalsCalculator
}

// NewScenarioAnalyzer creates the analyzer.
func NewScenarioAnalyzer(totals *TotalsCalculator) *ScenarioAnalyzer {
	return &ScenarioAnalyzer{totals: totals}
}

// Analyze runs every analysis for the given scenario.
func (a *ScenarioAnalyzer) Analyze(
	p model.Projection,
	scenario valueobject.ScenarioName,
) (ScenarioAnalysis, error) {
	futureSale, err := a.FutureSale(p, scenario)
	if err != nil {
		return ScenarioAnalysis{}, err
	}
	appreciation, err := a.AssetAppreciation(p, scenario)
	if err != nil {
		return ScenarioAnalysis{}, err
	}
	rental, err := a.RentalYield(p, scenario)
	if err != nil {
		return ScenarioAnalysis{}, err
	}
	internalRate, err := a.InternalRate(p, scenario)
	if err != nil {
		return ScenarioAnalysis{}, err
	}

	return ScenarioAnalysis{
		Scenario:          scenario,
		SaleMonth:         futureSale.SaleMonth,
		FutureSale:        futureSale,
		AssetAppreciation: appreciation,
		RentalYield:       rental,
		InternalRate:      internalRate,
	}, nil
}

// FutureSale projects the resale outcome at the scenario's sale month. The
// investment is everything paid through that month in corrected terms; the
// sale value compounds the list price at the scenario's annual appreciation
// rate over the holding period.
func (a *ScenarioAnalyzer) FutureSale(
	p model.Projection,
	scenario valueobject.ScenarioName,
) (FutureSaleAnalysis, error) {
	sc, err := p.Scenarios().ByName(scenario)
	if err != nil {
		return FutureSaleAnalysis{}, err
	}
	totals, err := a.totals.Calculate(p, scenario, 0)
	if err != nil {
		return FutureSaleAnalysis{}, err
	}

	price := p.Input().PropertyPrice
	years := float64(totals.SaleMonth) / 12
	annualRate := sc.FutureSale.AppreciationRate.InexactFloat64() / 100

	projected := price.Mul(decimal.NewFromFloat(math.Pow(1+annualRate, years)))

	expenseRate := sc.FutureSale.SellingExpenseRate.
		Add(sc.FutureSale.AdditionalCostsRate).
		Add(sc.FutureSale.MaintenanceCostsRate)
	saleExpenses := projected.Mul(expenseRate).Div(decimal.NewFromInt(100))

	investment := totals.TotalPaid
	grossProfit := projected.Sub(saleExpenses).Sub(investment)

	incomeTax := decimal.Zero
	if grossProfit.IsPositive() {
		incomeTax = grossProfit.Mul(sc.FutureSale.IncomeTaxRate).Div(decimal.NewFromInt(100))
	}
	netProfit := grossProfit.Sub(incomeTax)

	roi := decimal.Zero
	annualized := decimal.Zero
	if investment.IsPositive() {
		roi = netProfit.Div(investment).Mul(decimal.NewFromInt(100))
		growth := 1 + netProfit.Div(investment).InexactFloat64()
		if growth > 0 && years > 0 {
			annualized = decimal.NewFromFloat((math.Pow(growth, 1/years) - 1) * 100)
		}
	}

	payback := 0
	monthlyRate := math.Pow(1+annualRate, 1.0/12) - 1
	monthlyGain := price.InexactFloat64() * monthlyRate
	if monthlyGain > 0 {
		payback = int(math.Ceil(investment.InexactFloat64() / monthlyGain))
	}

	return FutureSaleAnalysis{
		Scenario:         scenario,
		SaleMonth:        totals.SaleMonth,
		TotalInvestment:  investment,
		ProjectedValue:   projected,
		SaleExpenses:     saleExpenses,
		GrossProfit:      grossProfit,
		IncomeTax:        incomeTax,
		NetProfit:        netProfit,
		ROIPercentage:    roi,
		AnnualizedReturn: annualized,
		PaybackMonths:    payback,
	}, nil
}

// AssetAppreciation projects the property value over the scenario's analysis
// period, year by year.
func (a *ScenarioAnalyzer) AssetAppreciation(
	p model.Projection,
	scenario valueobject.ScenarioName,
) (AssetAppreciationAnalysis, error) {
	sc, err := p.Scenarios().ByName(scenario)
	if err != nil {
		return AssetAppreciationAnalysis{}, err
	}

	years := sc.AssetAppreciation.AnalysisPeriodYears
	if years <= 0 {
		years = defaultAnalysisPeriodYears
	}
	constructionYears := deliveryYears(p.Input().DeliveryMonth)

	price := p.Input().PropertyPrice
	annualRate := 1 + sc.AssetAppreciation.AnnualRate.InexactFloat64()/100
	yearlyCarrying := sc.AssetAppreciation.MaintenanceCosts.Add(sc.AssetAppreciation.AnnualTaxes)

	yearly := make([]YearlyAssetValue, 0, years)
	finalValue := price
	for year := 1; year <= years; year++ {
		var value decimal.Decimal
		if year <= constructionYears {
			value = price.Mul(decimal.NewFromInt(int64(year))).Div(decimal.NewFromInt(int64(constructionYears)))
		} else {
			value = price.Mul(decimal.NewFromFloat(math.Pow(annualRate, float64(year-constructionYears))))
		}
		carrying := yearlyCarrying.Mul(decimal.NewFromInt(int64(year)))
		yearly = append(yearly, YearlyAssetValue{
			Year:          year,
			PropertyValue: value,
			NetValue:      value.Sub(carrying),
		})
		finalValue = value
	}

	appreciation := finalValue.Sub(price)
	percentage := decimal.Zero
	if price.IsPositive() {
		percentage = appreciation.Div(price).Mul(decimal.NewFromInt(100))
	}

	return AssetAppreciationAnalysis{
		Scenario:               scenario,
		PeriodYears:            years,
		InitialValue:           price,
		FinalValue:             finalValue,
		TotalAppreciation:      appreciation,
		AppreciationPercentage: percentage,
		TotalMaintenance:       sc.AssetAppreciation.MaintenanceCosts.Mul(decimal.NewFromInt(int64(years))),
		TotalTaxes:             sc.AssetAppreciation.AnnualTaxes.Mul(decimal.NewFromInt(int64(years))),
		Yearly:                 yearly,
	}, nil
}

// RentalYield projects the rental income once the unit is delivered. The rent
// is the scenario's monthly rate applied to the property price, discounted by
// occupancy, management fee and maintenance.
func (a *ScenarioAnalyzer) RentalYield(
	p model.Projection,
	scenario valueobject.ScenarioName,
) (RentalYieldAnalysis, error) {
	sc, err := p.Scenarios().ByName(scenario)
	if err != nil {
		return RentalYieldAnalysis{}, err
	}

	hundred := decimal.NewFromInt(100)
	twelve := decimal.NewFromInt(12)
	price := p.Input().PropertyPrice

	rent := price.Mul(sc.RentalYield.MonthlyRentRate).Div(hundred)
	occupied := rent.Mul(sc.RentalYield.OccupancyRate).Div(hundred)

	grossAnnual := occupied.Mul(twelve)
	managementFee := grossAnnual.Mul(sc.RentalYield.ManagementFee).Div(hundred)
	maintenance := rent.Mul(twelve).Mul(sc.RentalYield.MaintenanceCosts).Div(hundred)
	annualExpenses := managementFee.Add(maintenance)
	annualNet := grossAnnual.Sub(annualExpenses)

	grossYield := decimal.Zero
	netYield := decimal.Zero
	if price.IsPositive() {
		grossYield = grossAnnual.Div(price).Mul(hundred)
		netYield = annualNet.Div(price).Mul(hundred)
	}

	years := sc.AssetAppreciation.AnalysisPeriodYears
	if years <= 0 {
		years = defaultAnalysisPeriodYears
	}
	constructionYears := deliveryYears(p.Input().DeliveryMonth)
	increase := 1 + sc.RentalYield.AnnualIncrease.InexactFloat64()/100

	yearly := make([]YearlyRentalIncome, 0, years)
	for year := 1; year <= years; year++ {
		if year <= constructionYears {
			yearly = append(yearly, YearlyRentalIncome{
				Year:            year,
				MonthlyRent:     decimal.Zero,
				AnnualNetIncome: decimal.Zero,
			})
			continue
		}
		// The first post-delivery year charges the base rent; increases
		// apply from the following year on.
		increaseYears := year - constructionYears - 1
		growth := decimal.NewFromFloat(math.Pow(increase, float64(increaseYears)))
		yearly = append(yearly, YearlyRentalIncome{
			Year:            year,
			MonthlyRent:     rent.Mul(growth),
			AnnualNetIncome: annualNet.Mul(growth),
		})
	}

	return RentalYieldAnalysis{
		Scenario:             scenario,
		MonthlyRent:          rent,
		MonthlyNetIncome:     annualNet.Div(twelve),
		AnnualGrossIncome:    grossAnnual,
		AnnualExpenses:       annualExpenses,
		AnnualNetIncome:      annualNet,
		GrossYieldPercentage: grossYield,
		NetYieldPercentage:   netYield,
		Yearly:               yearly,
	}, nil
}

// deliveryYears is the number of calendar years covered by the construction
// phase, rounded up.
func deliveryYears(deliveryMonth int) int {
	years := (deliveryMonth + 11) / 12
	if years < 1 {
		years = 1
	}
	return years
}
