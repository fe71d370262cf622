package usecase

import (
	"context"
	"fmt"

	"github.com/terravista/projection-service/internal/domain/event"
	"github.com/terravista/projection-service/internal/domain/port"
)

// DeleteProjectionUseCase removes a projection and its schedule rows.
type DeleteProjectionUseCase struct {
	repo      port.ProjectionRepository
	publisher port.EventPublisher
}

// NewDeleteProjectionUseCase wires dependencies.
func NewDeleteProjectionUseCase(repo port.ProjectionRepository, publisher port.EventPublisher) *DeleteProjectionUseCase {
	return &DeleteProjectionUseCase{repo: repo, publisher: publisher}
}

// Execute deletes a projection by ID and publishes ProjectionDeleted.
func (uc *DeleteProjectionUseCase) Execute(ctx context.Context, projectionID string) error {
	projection, err := uc.repo.FindByID(ctx, projectionID)
	if err != nil {
		return fmt.Errorf("find projection: %w", err)
	}

	if err := uc.repo.Delete(ctx, projectionID); err != nil {
		return fmt.Errorf("delete projection: %w", err)
	}

	evt := event.NewProjectionDeleted(projection.ID(), projection.ClientID())
	if err := uc.publisher.Publish(ctx, evt); err != nil {
		return fmt.Errorf("publish events: %w", err)
	}

	return nil
}
