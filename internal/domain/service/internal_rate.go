package service

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/terravista/projection-service/internal/domain/model"
	"github.com/terravista/projection-service/internal/domain/valueobject"
)

const (
	irrPrecision      = 1e-7
	irrMaxIterations  = 100
	irrBisectionLower = -0.99
	irrBisectionUpper = 5.0
)

// InternalRateAnalysis is the internal rate of return of the buy, pay the
// corrected schedule, then sell cash flow. Rates are percentages; Converged
// is false when the flow admits no root in the search interval, which happens
// when the sale never recovers the investment.
type InternalRateAnalysis struct {
	Scenario    valueobject.ScenarioName
	SaleMonth   int
	MonthlyRate decimal.Decimal
	AnnualRate  decimal.Decimal
	Converged   bool
	CashFlow    []decimal.Decimal
}

// InternalRate assembles the monthly cash flow for the scenario and solves its
// rate of return. Month zero is the down payment outflow, every month before
// the sale is that month's corrected payment, and the sale month nets the
// projected sale value against the outstanding corrected balance and the sale
// expenses.
func (a *ScenarioAnalyzer) InternalRate(
	p model.Projection,
	scenario valueobject.ScenarioName,
) (InternalRateAnalysis, error) {
	sc, err := p.Scenarios().ByName(scenario)
	if err != nil {
		return InternalRateAnalysis{}, err
	}
	saleMonth, err := p.Scenarios().SaleMonth(scenario, p.Input().DeliveryMonth)
	if err != nil {
		return InternalRateAnalysis{}, err
	}

	cashFlow := buildSaleCashFlow(p, sc.FutureSale, saleMonth)

	flow := make([]float64, len(cashFlow))
	for i, v := range cashFlow {
		flow[i] = v.InexactFloat64()
	}

	analysis := InternalRateAnalysis{
		Scenario:    scenario,
		SaleMonth:   saleMonth,
		MonthlyRate: decimal.Zero,
		AnnualRate:  decimal.Zero,
		CashFlow:    cashFlow,
	}

	monthly, ok := internalRateOfReturn(flow)
	if !ok {
		return analysis, nil
	}

	analysis.Converged = true
	analysis.MonthlyRate = decimal.NewFromFloat(monthly * 100)
	analysis.AnnualRate = decimal.NewFromFloat((math.Pow(1+monthly, 12) - 1) * 100)
	return analysis, nil
}

// buildSaleCashFlow lays out one entry per month from purchase to sale. The
// schedule ends at the payment term; a sale month past the term carries zero
// payments and a zero outstanding balance for the gap.
func buildSaleCashFlow(
	p model.Projection,
	assumptions valueobject.FutureSaleAssumptions,
	saleMonth int,
) []decimal.Decimal {
	schedule := p.Schedule()
	byMonth := make(map[int]model.ScheduleEntry, len(schedule))
	for _, e := range schedule {
		byMonth[e.Month] = e
	}

	cashFlow := make([]decimal.Decimal, saleMonth+1)
	cashFlow[0] = p.Input().DownPayment.Neg()
	for m := 1; m < saleMonth; m++ {
		if e, ok := byMonth[m]; ok {
			cashFlow[m] = e.CorrectedTotal().Neg()
		} else {
			cashFlow[m] = decimal.Zero
		}
	}

	price := p.Input().PropertyPrice
	annualRate := assumptions.AppreciationRate.InexactFloat64() / 100
	projected := price.Mul(decimal.NewFromFloat(math.Pow(1+annualRate, float64(saleMonth)/12)))

	expenseRate := assumptions.SellingExpenseRate.
		Add(assumptions.AdditionalCostsRate).
		Add(assumptions.MaintenanceCostsRate)
	expenses := projected.Mul(expenseRate).Div(decimal.NewFromInt(100))

	outstanding := decimal.Zero
	if e, ok := byMonth[saleMonth]; ok {
		outstanding = e.CorrectedBalance
	}

	cashFlow[saleMonth] = projected.Sub(outstanding).Sub(expenses)
	return cashFlow
}

// internalRateOfReturn solves NPV(rate) = 0 with Newton-Raphson from a few
// starting points, falling back to bisection when none of them converges.
func internalRateOfReturn(cashFlow []float64) (float64, bool) {
	for _, guess := range []float64{0.01, 0.05, 0.1, -0.05} {
		if rate, ok := newtonIRR(cashFlow, guess); ok {
			return rate, true
		}
	}
	return bisectionIRR(cashFlow)
}

func newtonIRR(cashFlow []float64, guess float64) (float64, bool) {
	rate := guess
	for i := 0; i < irrMaxIterations; i++ {
		npv, derivative := npvWithDerivative(cashFlow, rate)
		if math.Abs(derivative) < irrPrecision {
			return 0, false
		}
		next := rate - npv/derivative
		if next <= -1 {
			return 0, false
		}
		if math.Abs(next-rate) < irrPrecision {
			return next, true
		}
		rate = next
	}
	return 0, false
}

func bisectionIRR(cashFlow []float64) (float64, bool) {
	lower, upper := irrBisectionLower, irrBisectionUpper
	npvLower := netPresentValue(cashFlow, lower)
	npvUpper := netPresentValue(cashFlow, upper)
	if npvLower*npvUpper > 0 {
		return 0, false
	}

	for i := 0; i < irrMaxIterations; i++ {
		mid := (lower + upper) / 2
		npvMid := netPresentValue(cashFlow, mid)
		if math.Abs(npvMid) < irrPrecision || (upper-lower)/2 < irrPrecision {
			return mid, true
		}
		if npvLower*npvMid < 0 {
			upper = mid
		} else {
			lower = mid
			npvLower = npvMid
		}
	}
	return (lower + upper) / 2, true
}

func netPresentValue(cashFlow []float64, rate float64) float64 {
	npv := 0.0
	for i, cf := range cashFlow {
		npv += cf / math.Pow(1+rate, float64(i))
	}
	return npv
}

func npvWithDerivative(cashFlow []float64, rate float64) (float64, float64) {
	npv, derivative := 0.0, 0.0
	for i, cf := range cashFlow {
		discount := math.Pow(1+rate, float64(i))
		npv += cf / discount
		if i > 0 {
			derivative -= float64(i) * cf / (discount * (1 + rate))
		}
	}
	return npv, derivative
}
