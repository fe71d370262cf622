package port

import (
	"context"
	"errors"
	"time"

	"github.com/terravista/projection-service/internal/domain/event"
	"github.com/terravista/projection-service/internal/domain/model"
)

// ---------------------------------------------------------------------------
// Repository ports (driven/secondary adapters)
// ---------------------------------------------------------------------------

// ProjectionRepository persists and retrieves projections and their schedules.
type ProjectionRepository interface {
	Save(ctx context.Context, p model.Projection) error
	FindByID(ctx context.Context, id string) (model.Projection, error)
	// FindByClientID lists a client's projections without loading schedule rows.
	FindByClientID(ctx context.Context, clientID string) ([]model.Projection, error)
	Delete(ctx context.Context, id string) error
}

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}

// ---------------------------------------------------------------------------
// Calculation cache port
// ---------------------------------------------------------------------------

// CalculationCache stores engine results keyed by an input digest. The engine
// is pure, so a cached result is exactly the result of rerunning it.
type CalculationCache interface {
	Get(ctx context.Context, key string) (model.CalculationResult, bool, error)
	Set(ctx context.Context, key string, result model.CalculationResult, ttl time.Duration) error
}

// ---------------------------------------------------------------------------
// Sentinel errors
// ---------------------------------------------------------------------------

var (
	// ErrProjectionNotFound is returned when no projection exists for an ID.
	ErrProjectionNotFound = errors.New("projection not found")

	// ErrVersionConflict is returned when an optimistic-locking save loses.
	ErrVersionConflict = errors.New("projection version conflict")
)
