package event

import (
	"github.com/shopspring/decimal"

	"github.com/terravista/projection-service/pkg/events"
)

// DomainEvent is an alias for the shared pkg/events.DomainEvent interface.
type DomainEvent = events.DomainEvent

// ProjectionCreated is raised when a new projection is calculated and stored.
type ProjectionCreated struct {
	events.BaseEvent
	ClientID       string          `json:"client_id"`
	FinancedAmount decimal.Decimal `json:"financed_amount"`
	TermMonths     int             `json:"term_months"`
}

func NewProjectionCreated(projectionID, clientID string, financedAmount decimal.Decimal, termMonths int) ProjectionCreated {
	return ProjectionCreated{
		BaseEvent:      events.NewBaseEvent("projection.created", projectionID, "Projection"),
		ClientID:       clientID,
		FinancedAmount: financedAmount,
		TermMonths:     termMonths,
	}
}

// ProjectionRecalculated is raised when an existing projection is recomputed
// from a new input and its schedule replaced.
type ProjectionRecalculated struct {
	events.BaseEvent
	ClientID       string          `json:"client_id"`
	FinancedAmount decimal.Decimal `json:"financed_amount"`
	TermMonths     int             `json:"term_months"`
	Version        int             `json:"version"`
}

func NewProjectionRecalculated(projectionID, clientID string, financedAmount decimal.Decimal, termMonths, version int) ProjectionRecalculated {
	return ProjectionRecalculated{
		BaseEvent:      events.NewBaseEvent("projection.recalculated", projectionID, "Projection"),
		ClientID:       clientID,
		FinancedAmount: financedAmount,
		TermMonths:     termMonths,
		Version:        version,
	}
}

// ProjectionDeleted is raised when a projection and its schedule are removed.
type ProjectionDeleted struct {
	events.BaseEvent
	ClientID string `json:"client_id"`
}

func NewProjectionDeleted(projectionID, clientID string) ProjectionDeleted {
	return ProjectionDeleted{
		BaseEvent: events.NewBaseEvent("projection.deleted", projectionID, "Projection"),
		ClientID:  clientID,
	}
}
