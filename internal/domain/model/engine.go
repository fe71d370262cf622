package model

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/terravista/projection-service/internal/domain/valueobject"
)

// ScheduleEntry is one month of a computed projection, immutable once
// produced. Base amounts are nominal; corrected amounts are base times the
// accumulated correction factor. The down payment at month 0 is never
// corrected.
type ScheduleEntry struct {
	Month                 int                     `json:"month"`
	Kind                  valueobject.PaymentKind `json:"kind"`
	BaseInstallment       decimal.Decimal         `json:"base_installment"`
	BaseReinforcement     decimal.Decimal         `json:"base_reinforcement"`
	BaseKeys              decimal.Decimal         `json:"base_keys"`
	CorrectionFactor      decimal.Decimal         `json:"correction_factor"`
	CorrectedInstallment  decimal.Decimal         `json:"corrected_installment"`
	CorrectedReinforcement decimal.Decimal        `json:"corrected_reinforcement"`
	CorrectedKeys         decimal.Decimal         `json:"corrected_keys"`
	NetBalance            decimal.Decimal         `json:"net_balance"`
	CorrectedBalance      decimal.Decimal         `json:"corrected_balance"`
}

// BaseTotal is the month's total nominal payment across all components.
func (e ScheduleEntry) BaseTotal() decimal.Decimal {
	return e.BaseInstallment.Add(e.BaseReinforcement).Add(e.BaseKeys)
}

// CorrectedTotal is the month's total corrected payment across all components.
func (e ScheduleEntry) CorrectedTotal() decimal.Decimal {
	return e.CorrectedInstallment.Add(e.CorrectedReinforcement).Add(e.CorrectedKeys)
}

// ProjectionSummary is the reduction of a complete schedule.
type ProjectionSummary struct {
	FinancedAmount       decimal.Decimal `json:"financed_amount"`
	TotalNominalPaid     decimal.Decimal `json:"total_nominal_paid"`
	TotalCorrectedPaid   decimal.Decimal `json:"total_corrected_paid"`
	TotalCorrection      decimal.Decimal `json:"total_correction"`
	CorrectionPercentage decimal.Decimal `json:"correction_percentage"`
}

// CalculationResult is everything one engine run produces: the normalized
// input it ran on, the month-indexed schedule, and the summary.
type CalculationResult struct {
	Input   ProjectionInput   `json:"input"`
	Entries []ScheduleEntry   `json:"entries"`
	Summary ProjectionSummary `json:"summary"`
}

// CorrectionFactor returns the accumulated multiplicative correction factor
// for the given month. Month 0 carries no correction; months up to and
// including the delivery month compound at the pre-delivery rate, later
// months compound the delivery-month factor at the post-delivery rate.
//
// Rates are percentages per month. The power is computed in float64 and
// converted back to decimal, the same way the fixed-payment amortization
// formula does it.
func CorrectionFactor(month, deliveryMonth int, ratePre, ratePost decimal.Decimal) decimal.Decimal {
	if month <= 0 {
		return decimal.NewFromInt(1)
	}

	pre := 1 + ratePre.InexactFloat64()/100
	post := 1 + ratePost.InexactFloat64()/100

	var factor float64
	if month <= deliveryMonth {
		factor = math.Pow(pre, float64(month))
	} else {
		factor = math.Pow(pre, float64(deliveryMonth)) * math.Pow(post, float64(month-deliveryMonth))
	}
	return decimal.NewFromFloat(factor)
}

// Calculate runs the projection engine: it validates the input, generates the
// nominal payment stream, propagates the outstanding balance and reduces the
// schedule into a summary. The run is pure; identical inputs produce
// identical results.
func Calculate(input ProjectionInput) (CalculationResult, error) {
	in := input.Normalized()
	if err := in.Validate(); err != nil {
		return CalculationResult{}, err
	}

	term := in.PaymentTermMonths

	baseInstallment := make([]decimal.Decimal, term+1)
	baseReinforcement := make([]decimal.Decimal, term+1)
	baseKeys := make([]decimal.Decimal, term+1)

	// Reinforcements apply every periodicity months, never at month 0.
	reinforcementCount := 0
	if in.Reinforcement != nil {
		for m := in.Reinforcement.PeriodicityMonths; m <= term; m += in.Reinforcement.PeriodicityMonths {
			baseReinforcement[m] = in.Reinforcement.Amount
			reinforcementCount++
		}
	}

	// Keys lump sum lands exactly at the delivery month.
	if in.KeysPayment.IsPositive() {
		baseKeys[in.DeliveryMonth] = in.KeysPayment
	}

	switch {
	case in.InstallmentMode.Equal(valueobject.InstallmentModeCustom):
		for _, ci := range in.CustomInstallments {
			baseInstallment[ci.Month] = baseInstallment[ci.Month].Add(ci.Amount)
		}
	default:
		totalReinforcements := decimal.Zero
		if in.Reinforcement != nil {
			totalReinforcements = in.Reinforcement.Amount.Mul(decimal.NewFromInt(int64(reinforcementCount)))
		}
		monthly := in.FinancedAmount().
			Sub(totalReinforcements).
			Sub(in.KeysPayment).
			Div(decimal.NewFromInt(int64(term)))
		for m := 1; m <= term; m++ {
			baseInstallment[m] = monthly
		}
	}

	// Balance recurrence via nominal prefix sums: the balance at month m is
	// the initial balance minus everything nominally paid in months 1..m-1.
	// Months 0 and 1 share the initial balance.
	initial := in.FinancedAmount()
	net := make([]decimal.Decimal, term+1)
	net[0] = initial
	paid := decimal.Zero
	for m := 1; m <= term; m++ {
		net[m] = initial.Sub(paid)
		paid = paid.Add(baseInstallment[m]).Add(baseReinforcement[m]).Add(baseKeys[m])
	}

	// Full amortization: a negative balance is clamped to zero only at the
	// final month.
	if net[term].IsNegative() {
		net[term] = decimal.Zero
	}

	entries := make([]ScheduleEntry, 0, term+1)
	for m := 0; m <= term; m++ {
		factor := CorrectionFactor(m, in.DeliveryMonth, in.CorrectionRatePreDelivery, in.CorrectionRatePostDelivery)
		entries = append(entries, ScheduleEntry{
			Month:                  m,
			Kind:                   classifyKind(m, baseKeys[m], baseReinforcement[m]),
			BaseInstallment:        baseInstallment[m],
			BaseReinforcement:      baseReinforcement[m],
			BaseKeys:               baseKeys[m],
			CorrectionFactor:       factor,
			CorrectedInstallment:   baseInstallment[m].Mul(factor),
			CorrectedReinforcement: baseReinforcement[m].Mul(factor),
			CorrectedKeys:          baseKeys[m].Mul(factor),
			NetBalance:             net[m],
			CorrectedBalance:       net[m].Mul(factor),
		})
	}

	return CalculationResult{
		Input:   in,
		Entries: entries,
		Summary: summarize(in, entries),
	}, nil
}

// classifyKind picks the display label for a month. Precedence: the down
// payment month, then keys, then reinforcement, then installment.
func classifyKind(month int, keys, reinforcement decimal.Decimal) valueobject.PaymentKind {
	switch {
	case month == 0:
		return valueobject.PaymentKindDownPayment
	case keys.IsPositive():
		return valueobject.PaymentKindKeysDelivery
	case reinforcement.IsPositive():
		return valueobject.PaymentKindReinforcement
	default:
		return valueobject.PaymentKindInstallment
	}
}

func summarize(in ProjectionInput, entries []ScheduleEntry) ProjectionSummary {
	nominal := in.DownPayment
	corrected := in.DownPayment
	for _, e := range entries {
		nominal = nominal.Add(e.BaseTotal())
		corrected = corrected.Add(e.CorrectedTotal())
	}

	correction := corrected.Sub(nominal)
	pct := decimal.Zero
	if base := corrected.Sub(correction); base.IsPositive() {
		pct = correction.Div(base).Mul(decimal.NewFromInt(100))
	}

	return ProjectionSummary{
		FinancedAmount:       in.FinancedAmount(),
		TotalNominalPaid:     nominal,
		TotalCorrectedPaid:   corrected,
		TotalCorrection:      correction,
		CorrectionPercentage: pct,
	}
}
