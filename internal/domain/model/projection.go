package model

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/terravista/projection-service/internal/domain/event"
	"github.com/terravista/projection-service/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Projection aggregate root
// ---------------------------------------------------------------------------

// Projection is an immutable aggregate tying a calculated financing schedule
// to a client and property. Mutations return a new copy.
type Projection struct {
	id           string
	clientID     string
	propertyID   string
	title        string
	input        ProjectionInput
	scenarios    valueobject.ScenarioSet
	schedule     []ScheduleEntry
	summary      ProjectionSummary
	version      int
	createdAt    time.Time
	updatedAt    time.Time
	domainEvents []event.DomainEvent
}

// ---------------------------------------------------------------------------
// Constructors
// ---------------------------------------------------------------------------

// NewProjection validates the input, runs the engine and creates a projection
// with the computed schedule and summary.
func NewProjection(
	clientID, propertyID, title string,
	input ProjectionInput,
	scenarios valueobject.ScenarioSet,
	now time.Time,
) (Projection, error) {
	if clientID == "" {
		return Projection{}, errors.New("client ID is required")
	}
	if title == "" {
		return Projection{}, errors.New("title is required")
	}

	result, err := Calculate(input)
	if err != nil {
		return Projection{}, err
	}

	id := uuid.New().String()
	p := Projection{
		id:         id,
		clientID:   clientID,
		propertyID: propertyID,
		title:      title,
		input:      result.Input,
		scenarios:  scenarios,
		schedule:   result.Entries,
		summary:    result.Summary,
		version:    1,
		createdAt:  now,
		updatedAt:  now,
	}

	p.domainEvents = append(p.domainEvents, event.NewProjectionCreated(
		id, clientID, result.Summary.FinancedAmount, result.Input.PaymentTermMonths,
	))

	return p, nil
}

// ReconstructProjection rebuilds a Projection aggregate from persistence.
func ReconstructProjection(
	id, clientID, propertyID, title string,
	input ProjectionInput,
	scenarios valueobject.ScenarioSet,
	schedule []ScheduleEntry,
	summary ProjectionSummary,
	version int,
	createdAt, updatedAt time.Time,
) Projection {
	return Projection{
		id:         id,
		clientID:   clientID,
		propertyID: propertyID,
		title:      title,
		input:      input,
		scenarios:  scenarios,
		schedule:   schedule,
		summary:    summary,
		version:    version,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// ---------------------------------------------------------------------------
// State transitions
// ---------------------------------------------------------------------------

// Recalculate reruns the engine with a new input, replacing the schedule and
// summary, and emits ProjectionRecalculated.
func (p Projection) Recalculate(input ProjectionInput, now time.Time) (Projection, error) {
	result, err := Calculate(input)
	if err != nil {
		return p, err
	}

	next := p
	next.input = result.Input
	next.schedule = result.Entries
	next.summary = result.Summary
	next.version = p.version + 1
	next.updatedAt = now
	next.domainEvents = copyEvents(p.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewProjectionRecalculated(
		p.id, p.clientID, result.Summary.FinancedAmount, result.Input.PaymentTermMonths, next.version,
	))
	return next, nil
}

// Rename updates the projection title.
func (p Projection) Rename(title string, now time.Time) (Projection, error) {
	if title == "" {
		return p, errors.New("title is required")
	}
	next := p
	next.title = title
	next.updatedAt = now
	next.domainEvents = copyEvents(p.domainEvents)
	return next, nil
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (p Projection) ID() string                          { return p.id }
func (p Projection) ClientID() string                    { return p.clientID }
func (p Projection) PropertyID() string                  { return p.propertyID }
func (p Projection) Title() string                       { return p.title }
func (p Projection) Input() ProjectionInput              { return p.input }
func (p Projection) Scenarios() valueobject.ScenarioSet  { return p.scenarios }
func (p Projection) Summary() ProjectionSummary          { return p.summary }
func (p Projection) Version() int                        { return p.version }
func (p Projection) CreatedAt() time.Time                { return p.createdAt }
func (p Projection) UpdatedAt() time.Time                { return p.updatedAt }
func (p Projection) DomainEvents() []event.DomainEvent   { return p.domainEvents }

// Schedule returns a copy of the computed schedule.
func (p Projection) Schedule() []ScheduleEntry {
	if p.schedule == nil {
		return nil
	}
	out := make([]ScheduleEntry, len(p.schedule))
	copy(out, p.schedule)
	return out
}

// ClearEvents returns a copy with an empty event list.
func (p Projection) ClearEvents() Projection {
	next := p
	next.domainEvents = nil
	return next
}

func copyEvents(evts []event.DomainEvent) []event.DomainEvent {
	if evts == nil {
		return nil
	}
	out := make([]event.DomainEvent, len(evts))
	copy(out, evts)
	return out
}
