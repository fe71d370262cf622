package model

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/terravista/projection-service/internal/domain/valueobject"
)

// CustomInstallment is one caller-supplied payment at an explicit month.
type CustomInstallment struct {
	Month  int             `json:"month"`
	Amount decimal.Decimal `json:"amount"`
}

// Reinforcement configures a recurring supplementary payment of Amount every
// PeriodicityMonths, starting at month PeriodicityMonths.
type Reinforcement struct {
	Amount            decimal.Decimal `json:"amount"`
	PeriodicityMonths int             `json:"periodicity_months"`
}

// ProjectionInput is the complete, immutable parameter set for one projection
// calculation run.
type ProjectionInput struct {
	PropertyPrice              decimal.Decimal             `json:"property_price"`
	Discount                   decimal.Decimal             `json:"discount"`
	DownPayment                decimal.Decimal             `json:"down_payment"`
	DeliveryMonth              int                         `json:"delivery_month"`
	PaymentTermMonths          int                         `json:"payment_term_months"`
	CorrectionRatePreDelivery  decimal.Decimal             `json:"correction_rate_pre_delivery"`
	CorrectionRatePostDelivery decimal.Decimal             `json:"correction_rate_post_delivery"`
	IndexPreDelivery           valueobject.CorrectionIndex `json:"index_pre_delivery"`
	IndexPostDelivery          valueobject.CorrectionIndex `json:"index_post_delivery"`
	InstallmentMode            valueobject.InstallmentMode `json:"installment_mode"`
	CustomInstallments         []CustomInstallment         `json:"custom_installments,omitempty"`
	Reinforcement              *Reinforcement              `json:"reinforcement,omitempty"`
	KeysPayment                decimal.Decimal             `json:"keys_payment"`
}

// ValidationError reports every invalid input field with a human-readable
// reason. It is raised before any schedule work begins.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "invalid projection input"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "invalid projection input: " + strings.Join(parts, "; ")
}

// Normalized returns a copy with derived fields resolved: in custom mode the
// payment term is the maximum custom-installment month, and the correction
// indexes fall back to the contract defaults (INCC before delivery, IGPM
// after).
func (in ProjectionInput) Normalized() ProjectionInput {
	out := in
	if out.InstallmentMode.Equal(valueobject.InstallmentModeCustom) {
		term := 0
		for _, ci := range out.CustomInstallments {
			if ci.Month > term {
				term = ci.Month
			}
		}
		out.PaymentTermMonths = term
	}
	if out.IndexPreDelivery.IsZero() {
		out.IndexPreDelivery = valueobject.CorrectionIndexINCC
	}
	if out.IndexPostDelivery.IsZero() {
		out.IndexPostDelivery = valueobject.CorrectionIndexIGPM
	}
	return out
}

// Validate checks the input against the engine's contract. It must be called
// on a normalized input; any violation is returned as a *ValidationError and
// no schedule is ever produced from an invalid input.
func (in ProjectionInput) Validate() error {
	fields := map[string]string{}

	if !in.PropertyPrice.IsPositive() {
		fields["property_price"] = "must be positive"
	}
	if in.Discount.IsNegative() {
		fields["discount"] = "must not be negative"
	}
	if in.DownPayment.IsNegative() {
		fields["down_payment"] = "must not be negative"
	} else if in.DownPayment.GreaterThanOrEqual(in.PropertyPrice) {
		fields["down_payment"] = "must be less than the property price"
	}
	if in.DeliveryMonth < 1 {
		fields["delivery_month"] = "must be at least 1"
	}
	if in.CorrectionRatePreDelivery.IsNegative() {
		fields["correction_rate_pre_delivery"] = "must not be negative"
	}
	if in.CorrectionRatePostDelivery.IsNegative() {
		fields["correction_rate_post_delivery"] = "must not be negative"
	}
	if in.KeysPayment.IsNegative() {
		fields["keys_payment"] = "must not be negative"
	}
	if in.InstallmentMode.IsZero() {
		fields["installment_mode"] = "is required"
	}

	switch {
	case in.InstallmentMode.Equal(valueobject.InstallmentModeCustom):
		if len(in.CustomInstallments) == 0 {
			fields["custom_installments"] = "at least one installment is required in custom mode"
		}
		for _, ci := range in.CustomInstallments {
			if ci.Month < 1 {
				fields["custom_installments"] = "installment months must be at least 1"
			}
			if ci.Amount.IsNegative() {
				fields["custom_installments"] = "installment amounts must not be negative"
			}
		}
	case in.InstallmentMode.Equal(valueobject.InstallmentModeAutomatic):
		if in.PaymentTermMonths < 1 {
			fields["payment_term_months"] = "must be at least 1"
		}
	}

	if in.PaymentTermMonths >= 1 && in.DeliveryMonth >= 1 && in.PaymentTermMonths < in.DeliveryMonth {
		fields["payment_term_months"] = "must not be before the delivery month"
	}

	if in.Reinforcement != nil {
		if !in.Reinforcement.Amount.IsPositive() {
			fields["reinforcement"] = "amount must be positive"
		}
		if in.Reinforcement.PeriodicityMonths < 1 {
			fields["reinforcement"] = "periodicity must be at least 1 month"
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// FinancedAmount is the principal to be paid after down payment and discount.
func (in ProjectionInput) FinancedAmount() decimal.Decimal {
	return in.PropertyPrice.Sub(in.Discount).Sub(in.DownPayment)
}
