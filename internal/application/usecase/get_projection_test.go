package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terravista/projection-service/internal/domain/model"
	"github.com/terravista/projection-service/internal/domain/port"
)

func TestGetProjectionUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	existing := storedProjection(t)

	t.Run("returns projection with schedule", func(t *testing.T) {
		repo := &mockProjectionRepository{
			findByIDFunc: func(ctx context.Context, id string) (model.Projection, error) {
				assert.Equal(t, existing.ID(), id)
				return existing, nil
			},
		}
		uc := NewGetProjectionUseCase(repo)

		resp, err := uc.Execute(ctx, existing.ID())
		require.NoError(t, err)

		assert.Equal(t, existing.ID(), resp.ID)
		assert.Len(t, resp.Schedule, 101)
	})

	t.Run("not found", func(t *testing.T) {
		uc := NewGetProjectionUseCase(&mockProjectionRepository{})

		_, err := uc.Execute(ctx, "missing")
		assert.ErrorIs(t, err, port.ErrProjectionNotFound)
	})
}

func TestListClientProjectionsUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	existing := storedProjection(t)

	t.Run("lists without schedules", func(t *testing.T) {
		repo := &mockProjectionRepository{
			findByClientIDFunc: func(ctx context.Context, clientID string) ([]model.Projection, error) {
				assert.Equal(t, "client-123", clientID)
				return []model.Projection{existing}, nil
			},
		}
		uc := NewListClientProjectionsUseCase(repo)

		resp, err := uc.Execute(ctx, "client-123")
		require.NoError(t, err)

		require.Len(t, resp, 1)
		assert.Equal(t, existing.ID(), resp[0].ID)
		assert.Empty(t, resp[0].Schedule)
		assert.False(t, resp[0].Summary.FinancedAmount.IsZero())
	})

	t.Run("no projections yields an empty list", func(t *testing.T) {
		uc := NewListClientProjectionsUseCase(&mockProjectionRepository{})

		resp, err := uc.Execute(ctx, "client-123")
		require.NoError(t, err)
		assert.Empty(t, resp)
	})
}
