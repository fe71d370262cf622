package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terravista/projection-service/internal/domain/event"
	"github.com/terravista/projection-service/internal/domain/valueobject"
)

func TestNewProjection(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	scenarios := valueobject.DefaultScenarioSet()

	t.Run("creates projection with computed schedule", func(t *testing.T) {
		p, err := NewProjection("client-123", "property-7", "Tower A unit 1204", automaticInput(), scenarios, now)
		require.NoError(t, err)

		assert.NotEmpty(t, p.ID())
		assert.Equal(t, "client-123", p.ClientID())
		assert.Equal(t, "property-7", p.PropertyID())
		assert.Equal(t, "Tower A unit 1204", p.Title())
		assert.Equal(t, 1, p.Version())
		assert.Equal(t, now, p.CreatedAt())
		assert.Equal(t, now, p.UpdatedAt())
		assert.Len(t, p.Schedule(), 101)
		assert.True(t, p.Summary().FinancedAmount.Equal(decimal.NewFromInt(450000)))
	})

	t.Run("stores normalized input", func(t *testing.T) {
		p, err := NewProjection("client-123", "", "Title", automaticInput(), scenarios, now)
		require.NoError(t, err)
		assert.Equal(t, valueobject.CorrectionIndexINCC, p.Input().IndexPreDelivery)
		assert.Equal(t, valueobject.CorrectionIndexIGPM, p.Input().IndexPostDelivery)
	})

	t.Run("emits ProjectionCreated", func(t *testing.T) {
		p, err := NewProjection("client-123", "", "Title", automaticInput(), scenarios, now)
		require.NoError(t, err)

		events := p.DomainEvents()
		require.Len(t, events, 1)
		created, ok := events[0].(event.ProjectionCreated)
		require.True(t, ok)
		assert.Equal(t, "projection.created", created.EventType())
		assert.Equal(t, p.ID(), created.AggregateID())
		assert.Equal(t, "client-123", created.ClientID)
		assert.True(t, created.FinancedAmount.Equal(decimal.NewFromInt(450000)))
		assert.Equal(t, 100, created.TermMonths)
	})

	t.Run("requires client and title", func(t *testing.T) {
		_, err := NewProjection("", "", "Title", automaticInput(), scenarios, now)
		assert.Error(t, err)

		_, err = NewProjection("client-123", "", "", automaticInput(), scenarios, now)
		assert.Error(t, err)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		input := automaticInput()
		input.PropertyPrice = decimal.Zero

		_, err := NewProjection("client-123", "", "Title", input, scenarios, now)
		var vErr *ValidationError
		assert.ErrorAs(t, err, &vErr)
	})
}

func TestProjection_Recalculate(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	later := now.Add(48 * time.Hour)
	scenarios := valueobject.DefaultScenarioSet()

	original, err := NewProjection("client-123", "", "Title", automaticInput(), scenarios, now)
	require.NoError(t, err)

	newInput := automaticInput()
	newInput.KeysPayment = decimal.NewFromInt(30000)

	t.Run("replaces schedule and summary", func(t *testing.T) {
		updated, err := original.Recalculate(newInput, later)
		require.NoError(t, err)

		assert.True(t, updated.Input().KeysPayment.Equal(decimal.NewFromInt(30000)))
		assert.True(t, updated.Schedule()[24].BaseKeys.Equal(decimal.NewFromInt(30000)))
		assert.Equal(t, later, updated.UpdatedAt())
		assert.Equal(t, now, updated.CreatedAt())
	})

	t.Run("bumps the aggregate version", func(t *testing.T) {
		updated, err := original.Recalculate(newInput, later)
		require.NoError(t, err)

		assert.Equal(t, 2, updated.Version())

		again, err := updated.Recalculate(newInput, later)
		require.NoError(t, err)
		assert.Equal(t, 3, again.Version())
	})

	t.Run("emits ProjectionRecalculated with bumped version", func(t *testing.T) {
		updated, err := original.Recalculate(newInput, later)
		require.NoError(t, err)

		events := updated.DomainEvents()
		require.Len(t, events, 2)
		recalc, ok := events[1].(event.ProjectionRecalculated)
		require.True(t, ok)
		assert.Equal(t, "projection.recalculated", recalc.EventType())
		assert.Equal(t, 2, recalc.Version)
	})

	t.Run("original copy is untouched", func(t *testing.T) {
		_, err := original.Recalculate(newInput, later)
		require.NoError(t, err)

		assert.True(t, original.Input().KeysPayment.IsZero())
		assert.Len(t, original.DomainEvents(), 1)
	})

	t.Run("invalid input leaves the projection unchanged", func(t *testing.T) {
		bad := automaticInput()
		bad.PropertyPrice = decimal.NewFromInt(-1)

		_, err := original.Recalculate(bad, later)
		var vErr *ValidationError
		assert.ErrorAs(t, err, &vErr)
	})
}

func TestProjection_Rename(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	p, err := NewProjection("client-123", "", "Old title", automaticInput(), valueobject.DefaultScenarioSet(), now)
	require.NoError(t, err)

	renamed, err := p.Rename("New title", now.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, "New title", renamed.Title())
	assert.Equal(t, "Old title", p.Title())

	_, err = p.Rename("", now)
	assert.Error(t, err)
}

func TestProjection_ClearEvents(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	p, err := NewProjection("client-123", "", "Title", automaticInput(), valueobject.DefaultScenarioSet(), now)
	require.NoError(t, err)

	cleared := p.ClearEvents()
	assert.Empty(t, cleared.DomainEvents())
	assert.Len(t, p.DomainEvents(), 1)
}

func TestReconstructProjection(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	input := automaticInput().Normalized()
	summary := ProjectionSummary{FinancedAmount: decimal.NewFromInt(450000)}

	p := ReconstructProjection(
		"proj-1", "client-123", "property-7", "Title",
		input, valueobject.DefaultScenarioSet(), nil, summary,
		3, now, now.Add(time.Hour),
	)

	assert.Equal(t, "proj-1", p.ID())
	assert.Equal(t, 3, p.Version())
	assert.Empty(t, p.DomainEvents())
	assert.Nil(t, p.Schedule())
}
