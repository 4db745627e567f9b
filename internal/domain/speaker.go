package domain

import (
	"context"
	"time"
)

// Speaker represents a speaker at an event. CreatedAt establishes the stable
// posting order for drip campaigns: earliest-created speakers are announced
// first (farthest from the event date).
// swagger:model Speaker
type Speaker struct {
	ID          string    `json:"id"`
	EventID     string    `json:"event_id"`
	Name        string    `json:"name"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Bio         string    `json:"bio"`
	HeadshotURL string    `json:"headshot_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewSpeaker returns a new Speaker with the given fields. ID is typically set by the repository on create.
func NewSpeaker(eventID, name, title, company, bio, headshotURL string, createdAt, updatedAt time.Time) *Speaker {
	return &Speaker{
		EventID:     eventID,
		Name:        name,
		Title:       title,
		Company:     company,
		Bio:         bio,
		HeadshotURL: headshotURL,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// SpeakerUpdate carries the optional fields of a speaker update. Nil means
// "leave unchanged".
type SpeakerUpdate struct {
	Name        *string
	Title       *string
	Company     *string
	Bio         *string
	HeadshotURL *string
}

// SpeakerRepository defines the interface for speaker storage.
// ListByEventID returns speakers ordered by created_at ascending, id ascending.
type SpeakerRepository interface {
	Create(ctx context.Context, speaker *Speaker) error
	GetByID(ctx context.Context, id string) (*Speaker, error)
	ListByEventID(ctx context.Context, eventID string) ([]*Speaker, error)
	Update(ctx context.Context, speakerID string, upd SpeakerUpdate) (*Speaker, error)
	Delete(ctx context.Context, id string) error
}

// SpeakerService defines the business logic for speaker management.
type SpeakerService interface {
	AddSpeaker(ctx context.Context, eventID, ownerID string, speaker *Speaker) error
	GetSpeaker(ctx context.Context, eventID, speakerID, ownerID string) (*Speaker, error)
	ListSpeakers(ctx context.Context, eventID, ownerID string) ([]*Speaker, error)
	UpdateSpeaker(ctx context.Context, eventID, speakerID, ownerID string, upd SpeakerUpdate) (*Speaker, error)
	RemoveSpeaker(ctx context.Context, eventID, speakerID, ownerID string) error
}
