package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/terravista/projection-service/internal/application/dto"
	"github.com/terravista/projection-service/internal/domain/port"
)

// RecalculateProjectionUseCase reruns the engine for a stored projection with
// a new input, replacing its schedule and bumping its version.
type RecalculateProjectionUseCase struct {
	repo      port.ProjectionRepository
	publisher port.EventPublisher
}

// NewRecalculateProjectionUseCase wires dependencies.
func NewRecalculateProjectionUseCase(repo port.ProjectionRepository, publisher port.EventPublisher) *RecalculateProjectionUseCase {
	return &RecalculateProjectionUseCase{repo: repo, publisher: publisher}
}

// Execute recalculates and persists an existing projection.
func (uc *RecalculateProjectionUseCase) Execute(
	ctx context.Context,
	req dto.RecalculateProjectionRequest,
) (dto.ProjectionResponse, error) {
	now := time.Now().UTC()

	input, err := inputFromRequest(req.Input)
	if err != nil {
		return dto.ProjectionResponse{}, err
	}

	projection, err := uc.repo.FindByID(ctx, req.ProjectionID)
	if err != nil {
		return dto.ProjectionResponse{}, fmt.Errorf("find projection: %w", err)
	}

	projection, err = projection.Recalculate(input, now)
	if err != nil {
		return dto.ProjectionResponse{}, fmt.Errorf("recalculate projection: %w", err)
	}

	if err := uc.repo.Save(ctx, projection); err != nil {
		return dto.ProjectionResponse{}, fmt.Errorf("save projection: %w", err)
	}

	if err := uc.publisher.Publish(ctx, projection.DomainEvents()...); err != nil {
		return dto.ProjectionResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toProjectionResponse(projection, true), nil
}
