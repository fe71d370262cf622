package valueobject

import (
	"encoding/json"
	"fmt"
)

// ---------------------------------------------------------------------------
// PaymentKind – immutable value object
// ---------------------------------------------------------------------------

// PaymentKind classifies the dominant payment component of a schedule month.
// A month may carry several monetary components at once; the kind is the
// display label with precedence DownPayment > KeysDelivery > Reinforcement >
// Installment.
type PaymentKind struct {
	value string
}

const (
	paymentKindDownPayment   = "DOWN_PAYMENT"
	paymentKindInstallment   = "INSTALLMENT"
	paymentKindReinforcement = "REINFORCEMENT"
	paymentKindKeysDelivery  = "KEYS_DELIVERY"
)

var (
	PaymentKindDownPayment   = PaymentKind{value: paymentKindDownPayment}
	PaymentKindInstallment   = PaymentKind{value: paymentKindInstallment}
	PaymentKindReinforcement = PaymentKind{value: paymentKindReinforcement}
	PaymentKindKeysDelivery  = PaymentKind{value: paymentKindKeysDelivery}
)

var validPaymentKinds = map[string]PaymentKind{
	paymentKindDownPayment:   PaymentKindDownPayment,
	paymentKindInstallment:   PaymentKindInstallment,
	paymentKindReinforcement: PaymentKindReinforcement,
	paymentKindKeysDelivery:  PaymentKindKeysDelivery,
}

// NewPaymentKind creates a PaymentKind from a raw string.
func NewPaymentKind(s string) (PaymentKind, error) {
	v, ok := validPaymentKinds[s]
	if !ok {
		return PaymentKind{}, fmt.Errorf("invalid payment kind: %q", s)
	}
	return v, nil
}

// String returns the string representation of the kind.
func (k PaymentKind) String() string { return k.value }

// IsZero returns true if the kind has not been initialised.
func (k PaymentKind) IsZero() bool { return k.value == "" }

// Equal returns true when both kinds carry the same value.
func (k PaymentKind) Equal(other PaymentKind) bool { return k.value == other.value }

// MarshalJSON encodes the kind as its string value.
func (k PaymentKind) MarshalJSON() ([]byte, error) { return json.Marshal(k.value) }

// UnmarshalJSON decodes and validates a string value.
func (k *PaymentKind) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := NewPaymentKind(s)
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// ---------------------------------------------------------------------------
// InstallmentMode – immutable value object
// ---------------------------------------------------------------------------

// InstallmentMode selects how the monthly installment stream is produced:
// derived equal installments, or caller-supplied amounts at explicit months.
type InstallmentMode struct {
	value string
}

const (
	installmentModeAutomatic = "AUTOMATIC"
	installmentModeCustom    = "CUSTOM"
)

var (
	InstallmentModeAutomatic = InstallmentMode{value: installmentModeAutomatic}
	InstallmentModeCustom    = InstallmentMode{value: installmentModeCustom}
)

var validInstallmentModes = map[string]InstallmentMode{
	installmentModeAutomatic: InstallmentModeAutomatic,
	installmentModeCustom:    InstallmentModeCustom,
}

// NewInstallmentMode creates an InstallmentMode from a raw string.
func NewInstallmentMode(s string) (InstallmentMode, error) {
	v, ok := validInstallmentModes[s]
	if !ok {
		return InstallmentMode{}, fmt.Errorf("invalid installment mode: %q", s)
	}
	return v, nil
}

// String returns the string representation of the mode.
func (m InstallmentMode) String() string { return m.value }

// IsZero returns true if the mode has not been initialised.
func (m InstallmentMode) IsZero() bool { return m.value == "" }

// Equal returns true when both modes carry the same value.
func (m InstallmentMode) Equal(other InstallmentMode) bool { return m.value == other.value }

// MarshalJSON encodes the mode as its string value.
func (m InstallmentMode) MarshalJSON() ([]byte, error) { return json.Marshal(m.value) }

// UnmarshalJSON decodes and validates a string value.
func (m *InstallmentMode) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := NewInstallmentMode(s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// ---------------------------------------------------------------------------
// CorrectionIndex – immutable value object
// ---------------------------------------------------------------------------

// CorrectionIndex names the contractual index a correction rate tracks
// (e.g. construction-cost index before delivery, general price index after).
// It is carried for display and persistence only; the numeric rates drive
// the calculation.
type CorrectionIndex struct {
	value string
}

const (
	correctionIndexINCC = "INCC"
	correctionIndexIGPM = "IGPM"
	correctionIndexIPCA = "IPCA"
)

var (
	CorrectionIndexINCC = CorrectionIndex{value: correctionIndexINCC}
	CorrectionIndexIGPM = CorrectionIndex{value: correctionIndexIGPM}
	CorrectionIndexIPCA = CorrectionIndex{value: correctionIndexIPCA}
)

var validCorrectionIndexes = map[string]CorrectionIndex{
	correctionIndexINCC: CorrectionIndexINCC,
	correctionIndexIGPM: CorrectionIndexIGPM,
	correctionIndexIPCA: CorrectionIndexIPCA,
}

// NewCorrectionIndex creates a CorrectionIndex from a raw string.
func NewCorrectionIndex(s string) (CorrectionIndex, error) {
	v, ok := validCorrectionIndexes[s]
	if !ok {
		return CorrectionIndex{}, fmt.Errorf("invalid correction index: %q", s)
	}
	return v, nil
}

// String returns the string representation of the index.
func (i CorrectionIndex) String() string { return i.value }

// IsZero returns true if the index has not been initialised.
func (i CorrectionIndex) IsZero() bool { return i.value == "" }

// Equal returns true when both indexes carry the same value.
func (i CorrectionIndex) Equal(other CorrectionIndex) bool { return i.value == other.value }

// MarshalJSON encodes the index as its string value.
func (i CorrectionIndex) MarshalJSON() ([]byte, error) { return json.Marshal(i.value) }

// UnmarshalJSON decodes and validates a string value.
func (i *CorrectionIndex) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := NewCorrectionIndex(s)
	if err != nil {
		return err
	}
	*i = v
	return nil
}
