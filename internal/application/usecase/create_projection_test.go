package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terravista/projection-service/internal/application/dto"
	"github.com/terravista/projection-service/internal/domain/model"
)

func validCalculationRequest() dto.CalculationRequest {
	return dto.CalculationRequest{
		PropertyPrice:              decimal.NewFromInt(500000),
		DownPayment:                decimal.NewFromInt(50000),
		DeliveryMonth:              24,
		PaymentTermMonths:          100,
		CorrectionRatePreDelivery:  decimal.NewFromFloat(0.5),
		CorrectionRatePostDelivery: decimal.NewFromInt(1),
		InstallmentMode:            "AUTOMATIC",
	}
}

func validCreateRequest() dto.CreateProjectionRequest {
	return dto.CreateProjectionRequest{
		ClientID:   "client-123",
		PropertyID: "property-7",
		Title:      "Tower A unit 1204",
		Input:      validCalculationRequest(),
	}
}

func TestCreateProjectionUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("creates and persists a projection", func(t *testing.T) {
		repo := &mockProjectionRepository{}
		publisher := &mockEventPublisher{}
		uc := NewCreateProjectionUseCase(repo, publisher)

		resp, err := uc.Execute(ctx, validCreateRequest())
		require.NoError(t, err)

		assert.NotEmpty(t, resp.ID)
		assert.Equal(t, "client-123", resp.ClientID)
		assert.Equal(t, "Tower A unit 1204", resp.Title)
		assert.Equal(t, 1, resp.Version)
		assert.Len(t, resp.Schedule, 101)
		assert.True(t, resp.Summary.FinancedAmount.Equal(decimal.NewFromInt(450000)))

		require.Len(t, repo.savedProjections, 1)
		assert.Equal(t, resp.ID, repo.savedProjections[0].ID())
	})

	t.Run("publishes ProjectionCreated", func(t *testing.T) {
		repo := &mockProjectionRepository{}
		publisher := &mockEventPublisher{}
		uc := NewCreateProjectionUseCase(repo, publisher)

		_, err := uc.Execute(ctx, validCreateRequest())
		require.NoError(t, err)

		require.Len(t, publisher.publishedEvents, 1)
		assert.Equal(t, "projection.created", publisher.publishedEvents[0].EventType())
	})

	t.Run("empty installment mode defaults to automatic", func(t *testing.T) {
		repo := &mockProjectionRepository{}
		uc := NewCreateProjectionUseCase(repo, &mockEventPublisher{})

		req := validCreateRequest()
		req.Input.InstallmentMode = ""

		resp, err := uc.Execute(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "AUTOMATIC", resp.Input.InstallmentMode)
	})

	t.Run("unknown installment mode is a validation error", func(t *testing.T) {
		uc := NewCreateProjectionUseCase(&mockProjectionRepository{}, &mockEventPublisher{})

		req := validCreateRequest()
		req.Input.InstallmentMode = "MANUAL"

		_, err := uc.Execute(ctx, req)
		var vErr *model.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Fields, "installment_mode")
	})

	t.Run("invalid input never reaches the repository", func(t *testing.T) {
		repo := &mockProjectionRepository{}
		uc := NewCreateProjectionUseCase(repo, &mockEventPublisher{})

		req := validCreateRequest()
		req.Input.PropertyPrice = decimal.Zero

		_, err := uc.Execute(ctx, req)
		var vErr *model.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Empty(t, repo.savedProjections)
	})

	t.Run("save failure is wrapped", func(t *testing.T) {
		repo := &mockProjectionRepository{
			saveFunc: func(ctx context.Context, p model.Projection) error {
				return errors.New("connection refused")
			},
		}
		uc := NewCreateProjectionUseCase(repo, &mockEventPublisher{})

		_, err := uc.Execute(ctx, validCreateRequest())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "save projection")
	})

	t.Run("scenario overrides apply on top of the defaults", func(t *testing.T) {
		repo := &mockProjectionRepository{}
		uc := NewCreateProjectionUseCase(repo, &mockEventPublisher{})

		req := validCreateRequest()
		req.Scenarios = &dto.ScenariosRequest{
			Conservative: &dto.ScenarioAssumptionsRequest{
				FutureSale: &dto.FutureSaleRequest{
					AppreciationRate: decimal.NewFromInt(8),
				},
			},
		}

		_, err := uc.Execute(ctx, req)
		require.NoError(t, err)

		scenarios := repo.savedProjections[0].Scenarios()
		assert.True(t, scenarios.Conservative.FutureSale.AppreciationRate.Equal(decimal.NewFromInt(8)))
		// untouched fields keep the stock values
		assert.True(t, scenarios.Conservative.FutureSale.SellingExpenseRate.Equal(decimal.NewFromInt(6)))
		assert.True(t, scenarios.Standard.FutureSale.AppreciationRate.Equal(decimal.NewFromInt(15)))
	})
}
