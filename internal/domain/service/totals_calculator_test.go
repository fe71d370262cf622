package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terravista/projection-service/internal/domain/model"
	"github.com/terravista/projection-service/internal/domain/valueobject"
)

// uncorrected keeps all rates at zero so component sums stay exact.
func uncorrectedProjection(t *testing.T) model.Projection {
	t.Helper()

	input := model.ProjectionInput{
		PropertyPrice:     decimal.NewFromInt(500000),
		DownPayment:       decimal.NewFromInt(50000),
		DeliveryMonth:     24,
		PaymentTermMonths: 100,
		InstallmentMode:   valueobject.InstallmentModeAutomatic,
		KeysPayment:       decimal.NewFromInt(30000),
		Reinforcement: &model.Reinforcement{
			Amount:            decimal.NewFromInt(10000),
			PeriodicityMonths: 12,
		},
	}

	p, err := model.NewProjection(
		"client-123", "property-7", "Tower A unit 1204",
		input, valueobject.DefaultScenarioSet(),
		time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return p
}

func TestTotalsCalculator_Calculate(t *testing.T) {
	calc := NewTotalsCalculator()
	p := uncorrectedProjection(t)

	t.Run("standard scenario sells one month after delivery", func(t *testing.T) {
		totals, err := calc.Calculate(p, valueobject.ScenarioStandard, 0)
		require.NoError(t, err)

		assert.Equal(t, 25, totals.SaleMonth)
		assert.True(t, totals.DownPayment.Equal(decimal.NewFromInt(50000)))
		// 25 months at (450000 - 80000 - 30000) / 100
		assert.True(t, totals.InstallmentsNominal.Equal(decimal.NewFromInt(85000)))
		assert.True(t, totals.ReinforcementsNominal.Equal(decimal.NewFromInt(20000)))
		assert.True(t, totals.KeysNominal.Equal(decimal.NewFromInt(30000)))
		assert.True(t, totals.TotalPaid.Equal(decimal.NewFromInt(185000)))
	})

	t.Run("zero rates keep corrected equal to nominal", func(t *testing.T) {
		totals, err := calc.Calculate(p, valueobject.ScenarioStandard, 0)
		require.NoError(t, err)

		assert.True(t, totals.InstallmentsCorrected.Equal(totals.InstallmentsNominal))
		assert.True(t, totals.ReinforcementsCorrected.Equal(totals.ReinforcementsNominal))
		assert.True(t, totals.KeysCorrected.Equal(totals.KeysNominal))
	})

	t.Run("sale month override wins", func(t *testing.T) {
		totals, err := calc.Calculate(p, valueobject.ScenarioStandard, 12)
		require.NoError(t, err)

		assert.Equal(t, 12, totals.SaleMonth)
		assert.True(t, totals.InstallmentsNominal.Equal(decimal.NewFromInt(40800)))
		assert.True(t, totals.ReinforcementsNominal.Equal(decimal.NewFromInt(10000)))
		assert.True(t, totals.KeysNominal.IsZero())
		assert.True(t, totals.TotalPaid.Equal(decimal.NewFromInt(100800)))
	})

	t.Run("conservative and optimistic shift the sale month", func(t *testing.T) {
		conservative, err := calc.Calculate(p, valueobject.ScenarioConservative, 0)
		require.NoError(t, err)
		assert.Equal(t, 31, conservative.SaleMonth)

		optimistic, err := calc.Calculate(p, valueobject.ScenarioOptimistic, 0)
		require.NoError(t, err)
		assert.Equal(t, 17, optimistic.SaleMonth)
		assert.True(t, optimistic.KeysNominal.IsZero())
	})

	t.Run("unknown scenario", func(t *testing.T) {
		_, err := calc.Calculate(p, valueobject.ScenarioName{}, 0)
		assert.ErrorIs(t, err, valueobject.ErrUnknownScenario)
	})
}

func TestTotalsCalculator_CorrectedTotals(t *testing.T) {
	calc := NewTotalsCalculator()

	input := model.ProjectionInput{
		PropertyPrice:             decimal.NewFromInt(500000),
		DownPayment:               decimal.NewFromInt(50000),
		DeliveryMonth:             24,
		PaymentTermMonths:         100,
		CorrectionRatePreDelivery: decimal.NewFromFloat(0.5),
		InstallmentMode:           valueobject.InstallmentModeAutomatic,
	}
	p, err := model.NewProjection(
		"client-123", "", "Title",
		input, valueobject.DefaultScenarioSet(),
		time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)

	totals, err := calc.Calculate(p, valueobject.ScenarioStandard, 0)
	require.NoError(t, err)

	assert.True(t, totals.InstallmentsCorrected.GreaterThan(totals.InstallmentsNominal))
	assert.True(t, totals.TotalPaid.Equal(
		totals.DownPayment.Add(totals.InstallmentsCorrected)))
}
