package usecase

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terravista/projection-service/internal/application/dto"
	"github.com/terravista/projection-service/internal/domain/model"
	"github.com/terravista/projection-service/internal/domain/port"
	"github.com/terravista/projection-service/internal/domain/service"
	"github.com/terravista/projection-service/internal/domain/valueobject"
)

func TestGetScenarioAnalysisUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	existing := uncorrectedStoredProjection(t)
	analyzer := service.NewScenarioAnalyzer(service.NewTotalsCalculator())

	repo := &mockProjectionRepository{
		findByIDFunc: func(ctx context.Context, id string) (model.Projection, error) {
			if id == existing.ID() {
				return existing, nil
			}
			return model.Projection{}, port.ErrProjectionNotFound
		},
	}
	uc := NewGetScenarioAnalysisUseCase(repo, analyzer)

	t.Run("empty scenario defaults to standard", func(t *testing.T) {
		resp, err := uc.Execute(ctx, dto.ScenarioAnalysisRequest{ProjectionID: existing.ID()})
		require.NoError(t, err)

		assert.Equal(t, "STANDARD", resp.Scenario)
		assert.Equal(t, 25, resp.SaleMonth)
		// 25 months at 450000 / 100 plus the down payment
		assert.True(t, resp.FutureSale.TotalInvestment.Equal(decimal.NewFromInt(162500)))
		assert.True(t, resp.FutureSale.ProjectedValue.GreaterThan(decimal.NewFromInt(500000)))
		assert.True(t, resp.RentalYield.MonthlyRent.Equal(decimal.NewFromInt(3000)))
		assert.Len(t, resp.AssetAppreciation.Yearly, 10)
		assert.Len(t, resp.InternalRate.CashFlow, 26)
	})

	t.Run("explicit scenario shifts the sale month", func(t *testing.T) {
		resp, err := uc.Execute(ctx, dto.ScenarioAnalysisRequest{
			ProjectionID: existing.ID(),
			Scenario:     "OPTIMISTIC",
		})
		require.NoError(t, err)

		assert.Equal(t, "OPTIMISTIC", resp.Scenario)
		assert.Equal(t, 17, resp.SaleMonth)
	})

	t.Run("unknown scenario", func(t *testing.T) {
		_, err := uc.Execute(ctx, dto.ScenarioAnalysisRequest{
			ProjectionID: existing.ID(),
			Scenario:     "AGGRESSIVE",
		})
		assert.ErrorIs(t, err, valueobject.ErrUnknownScenario)
	})

	t.Run("missing projection", func(t *testing.T) {
		_, err := uc.Execute(ctx, dto.ScenarioAnalysisRequest{ProjectionID: "missing"})
		assert.ErrorIs(t, err, port.ErrProjectionNotFound)
	})
}
