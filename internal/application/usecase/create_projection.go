package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/terravista/projection-service/internal/application/dto"
	"github.com/terravista/projection-service/internal/domain/model"
	"github.com/terravista/projection-service/internal/domain/port"
)

// CreateProjectionUseCase validates a calculation request, runs the engine
// and stores the resulting projection.
type CreateProjectionUseCase struct {
	repo      port.ProjectionRepository
	publisher port.EventPublisher
}

// NewCreateProjectionUseCase wires dependencies.
func NewCreateProjectionUseCase(repo port.ProjectionRepository, publisher port.EventPublisher) *CreateProjectionUseCase {
	return &CreateProjectionUseCase{repo: repo, publisher: publisher}
}

// Execute creates, computes and persists a projection.
func (uc *CreateProjectionUseCase) Execute(
	ctx context.Context,
	req dto.CreateProjectionRequest,
) (dto.ProjectionResponse, error) {
	now := time.Now().UTC()

	input, err := inputFromRequest(req.Input)
	if err != nil {
		return dto.ProjectionResponse{}, err
	}
	scenarios := scenariosFromRequest(req.Scenarios)

	projection, err := model.NewProjection(req.ClientID, req.PropertyID, req.Title, input, scenarios, now)
	if err != nil {
		return dto.ProjectionResponse{}, fmt.Errorf("create projection: %w", err)
	}

	if err := uc.repo.Save(ctx, projection); err != nil {
		return dto.ProjectionResponse{}, fmt.Errorf("save projection: %w", err)
	}

	if err := uc.publisher.Publish(ctx, projection.DomainEvents()...); err != nil {
		return dto.ProjectionResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toProjectionResponse(projection, true), nil
}
