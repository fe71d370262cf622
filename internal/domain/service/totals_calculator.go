package service

import (
	"github.com/shopspring/decimal"

	"github.com/terravista/projection-service/internal/domain/model"
	"github.com/terravista/projection-service/internal/domain/valueobject"
)

// PaymentTotals is the per-component reduction of a schedule up to the month
// the unit is assumed to be sold under a scenario.
type PaymentTotals struct {
	Scenario                valueobject.ScenarioName
	SaleMonth               int
	DownPayment             decimal.Decimal
	InstallmentsNominal     decimal.Decimal
	InstallmentsCorrected   decimal.Decimal
	ReinforcementsNominal   decimal.Decimal
	ReinforcementsCorrected decimal.Decimal
	KeysNominal             decimal.Decimal
	KeysCorrected           decimal.Decimal
	TotalPaid               decimal.Decimal
}

// TotalsCalculator reduces a computed schedule into paid-through-month totals
// for a scenario. It is stateless.
type TotalsCalculator struct{}

// NewTotalsCalculator creates the calculator.
func NewTotalsCalculator() *TotalsCalculator {
	return &TotalsCalculator{}
}

// Calculate sums the nominal and corrected payment components for every month
// up to and including the scenario's sale month. A positive saleMonthOverride
// takes precedence over the scenario's own sale-month resolution. TotalPaid is
// the corrected sum of all components including the down payment.
func (c *TotalsCalculator) Calculate(
	p model.Projection,
	scenario valueobject.ScenarioName,
	saleMonthOverride int,
) (PaymentTotals, error) {
	saleMonth := saleMonthOverride
	if saleMonth <= 0 {
		var err error
		saleMonth, err = p.Scenarios().SaleMonth(scenario, p.Input().DeliveryMonth)
		if err != nil {
			return PaymentTotals{}, err
		}
	}

	totals := PaymentTotals{
		Scenario:                scenario,
		SaleMonth:               saleMonth,
		DownPayment:             p.Input().DownPayment,
		InstallmentsNominal:     decimal.Zero,
		InstallmentsCorrected:   decimal.Zero,
		ReinforcementsNominal:   decimal.Zero,
		ReinforcementsCorrected: decimal.Zero,
		KeysNominal:             decimal.Zero,
		KeysCorrected:           decimal.Zero,
	}

	for _, e := range p.Schedule() {
		if e.Month > saleMonth {
			break
		}
		totals.InstallmentsNominal = totals.InstallmentsNominal.Add(e.BaseInstallment)
		totals.InstallmentsCorrected = totals.InstallmentsCorrected.Add(e.CorrectedInstallment)
		totals.ReinforcementsNominal = totals.ReinforcementsNominal.Add(e.BaseReinforcement)
		totals.ReinforcementsCorrected = totals.ReinforcementsCorrected.Add(e.CorrectedReinforcement)
		totals.KeysNominal = totals.KeysNominal.Add(e.BaseKeys)
		totals.KeysCorrected = totals.KeysCorrected.Add(e.CorrectedKeys)
	}

	totals.TotalPaid = totals.DownPayment.
		Add(totals.InstallmentsCorrected).
		Add(totals.ReinforcementsCorrected).
		Add(totals.KeysCorrected)

	return totals, nil
}
