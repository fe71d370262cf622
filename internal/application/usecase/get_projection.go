package usecase

import (
	"context"
	"fmt"

	"github.com/terravista/projection-service/internal/application/dto"
	"github.com/terravista/projection-service/internal/domain/port"
)

// GetProjectionUseCase retrieves a single projection with its schedule.
type GetProjectionUseCase struct {
	repo port.ProjectionRepository
}

// NewGetProjectionUseCase wires dependencies.
func NewGetProjectionUseCase(repo port.ProjectionRepository) *GetProjectionUseCase {
	return &GetProjectionUseCase{repo: repo}
}

// Execute loads a projection by ID.
func (uc *GetProjectionUseCase) Execute(ctx context.Context, projectionID string) (dto.ProjectionResponse, error) {
	projection, err := uc.repo.FindByID(ctx, projectionID)
	if err != nil {
		return dto.ProjectionResponse{}, fmt.Errorf("find projection: %w", err)
	}
	return toProjectionResponse(projection, true), nil
}
