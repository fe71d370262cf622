package usecase

import (
	"context"
	"time"

	"github.com/terravista/projection-service/internal/domain/event"
	"github.com/terravista/projection-service/internal/domain/model"
	"github.com/terravista/projection-service/internal/domain/port"
)

type mockProjectionRepository struct {
	saveFunc           func(ctx context.Context, p model.Projection) error
	findByIDFunc       func(ctx context.Context, id string) (model.Projection, error)
	findByClientIDFunc func(ctx context.Context, clientID string) ([]model.Projection, error)
	deleteFunc         func(ctx context.Context, id string) error

	savedProjections []model.Projection
}

func (m *mockProjectionRepository) Save(ctx context.Context, p model.Projection) error {
	m.savedProjections = append(m.savedProjections, p)
	if m.saveFunc != nil {
		return m.saveFunc(ctx, p)
	}
	return nil
}

func (m *mockProjectionRepository) FindByID(ctx context.Context, id string) (model.Projection, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.Projection{}, port.ErrProjectionNotFound
}

func (m *mockProjectionRepository) FindByClientID(ctx context.Context, clientID string) ([]model.Projection, error) {
	if m.findByClientIDFunc != nil {
		return m.findByClientIDFunc(ctx, clientID)
	}
	return nil, nil
}

func (m *mockProjectionRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

type mockEventPublisher struct {
	publishFunc     func(ctx context.Context, events ...event.DomainEvent) error
	publishedEvents []event.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, events ...event.DomainEvent) error {
	m.publishedEvents = append(m.publishedEvents, events...)
	if m.publishFunc != nil {
		return m.publishFunc(ctx, events...)
	}
	return nil
}

type mockCalculationCache struct {
	getFunc func(ctx context.Context, key string) (model.CalculationResult, bool, error)
	setFunc func(ctx context.Context, key string, result model.CalculationResult, ttl time.Duration) error

	setCalls int
}

func (m *mockCalculationCache) Get(ctx context.Context, key string) (model.CalculationResult, bool, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, key)
	}
	return model.CalculationResult{}, false, nil
}

func (m *mockCalculationCache) Set(ctx context.Context, key string, result model.CalculationResult, ttl time.Duration) error {
	m.setCalls++
	if m.setFunc != nil {
		return m.setFunc(ctx, key, result, ttl)
	}
	return nil
}
