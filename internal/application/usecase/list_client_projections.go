package usecase

import (
	"context"
	"fmt"

	"github.com/terravista/projection-service/internal/application/dto"
	"github.com/terravista/projection-service/internal/domain/port"
)

// ListClientProjectionsUseCase lists a client's projections without schedules.
type ListClientProjectionsUseCase struct {
	repo port.ProjectionRepository
}

// NewListClientProjectionsUseCase wires dependencies.
func NewListClientProjectionsUseCase(repo port.ProjectionRepository) *ListClientProjectionsUseCase {
	return &ListClientProjectionsUseCase{repo: repo}
}

// Execute lists all projections belonging to a client, newest first.
func (uc *ListClientProjectionsUseCase) Execute(ctx context.Context, clientID string) ([]dto.ProjectionResponse, error) {
	projections, err := uc.repo.FindByClientID(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("list projections: %w", err)
	}

	out := make([]dto.ProjectionResponse, 0, len(projections))
	for _, p := range projections {
		out = append(out, toProjectionResponse(p, false))
	}
	return out, nil
}
