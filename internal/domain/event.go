package domain

import (
	"context"
	"time"
)

// Drip campaign defaults applied when neither the request nor the event
// carries a value.
const (
	DefaultDripDaysBefore = 7
	DefaultDripStartTime  = "10:00:00"
)

// Event represents an event whose speakers get announced on social media.
// StartDate is a calendar date (no time component); Timezone is the IANA
// identifier all drip scheduling math is performed in. DripDaysBefore and
// DripStartTime are per-event overrides of the campaign defaults.
// swagger:model Event
type Event struct {
	ID             string     `json:"id"`
	OwnerID        string     `json:"owner_id"`
	Name           string     `json:"name"`
	Description    *string    `json:"description,omitempty"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	Timezone       string     `json:"timezone"`
	DripDaysBefore *int       `json:"drip_days_before,omitempty"`
	DripStartTime  *string    `json:"drip_start_time,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// NewEvent returns a new Event with the given fields. ID is typically set by the repository on create.
func NewEvent(name, timezone, ownerID string, createdAt, updatedAt time.Time) *Event {
	return &Event{
		Name:      name,
		Timezone:  timezone,
		OwnerID:   ownerID,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// EventUpdate carries the optional fields of an event update. Nil means
// "leave unchanged".
type EventUpdate struct {
	Name           *string
	Description    *string
	StartDate      *time.Time
	Timezone       *string
	DripDaysBefore *int
	DripStartTime  *string
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	ListByOwnerID(ctx context.Context, ownerID string) ([]*Event, error)
	Update(ctx context.Context, eventID string, upd EventUpdate) (*Event, error)
	Delete(ctx context.Context, id string) error
}

// EventService defines the business logic for event management.
type EventService interface {
	CreateEvent(ctx context.Context, event *Event) error
	GetEventByID(ctx context.Context, eventID string) (*Event, []*Speaker, error)
	ListEventsByOwner(ctx context.Context, ownerID string) ([]*Event, error)
	UpdateEvent(ctx context.Context, eventID, ownerID string, upd EventUpdate) (*Event, error)
	DeleteEvent(ctx context.Context, eventID, ownerID string) error
}
