package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terravista/projection-service/internal/domain/event"
	"github.com/terravista/projection-service/internal/domain/model"
	"github.com/terravista/projection-service/internal/domain/port"
)

func TestDeleteProjectionUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	existing := storedProjection(t)

	t.Run("deletes and publishes ProjectionDeleted", func(t *testing.T) {
		deleted := ""
		repo := &mockProjectionRepository{
			findByIDFunc: func(ctx context.Context, id string) (model.Projection, error) {
				return existing, nil
			},
			deleteFunc: func(ctx context.Context, id string) error {
				deleted = id
				return nil
			},
		}
		publisher := &mockEventPublisher{}
		uc := NewDeleteProjectionUseCase(repo, publisher)

		require.NoError(t, uc.Execute(ctx, existing.ID()))
		assert.Equal(t, existing.ID(), deleted)

		require.Len(t, publisher.publishedEvents, 1)
		evt, ok := publisher.publishedEvents[0].(event.ProjectionDeleted)
		require.True(t, ok)
		assert.Equal(t, "projection.deleted", evt.EventType())
		assert.Equal(t, existing.ID(), evt.AggregateID())
		assert.Equal(t, "client-123", evt.ClientID)
	})

	t.Run("not found", func(t *testing.T) {
		publisher := &mockEventPublisher{}
		uc := NewDeleteProjectionUseCase(&mockProjectionRepository{}, publisher)

		err := uc.Execute(ctx, "missing")
		assert.ErrorIs(t, err, port.ErrProjectionNotFound)
		assert.Empty(t, publisher.publishedEvents)
	})
}
