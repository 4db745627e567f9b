package domain

import (
	"context"
	"time"
)

// MaxAnnouncementLength caps generated and edited announcement bodies.
// Twitter's limit is lower and enforced per platform at generation time.
const MaxAnnouncementLength = 3000

// TwitterMaxLength is the body cap for twitter announcements.
const TwitterMaxLength = 280

// Announcement is the social copy for one speaker on one platform. Body is
// editable until the announcement is published; PostURL and PostedAt are set
// once it goes live.
// swagger:model Announcement
type Announcement struct {
	ID        string     `json:"id"`
	EventID   string     `json:"event_id"`
	SpeakerID string     `json:"speaker_id"`
	Platform  Platform   `json:"platform"`
	Body      string     `json:"body"`
	ImageURL  *string    `json:"image_url,omitempty"`
	PostURL   *string    `json:"post_url,omitempty"`
	PostedAt  *time.Time `json:"posted_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewAnnouncement returns an unpublished Announcement. ID is typically set
// by the repository on create.
func NewAnnouncement(eventID, speakerID string, platform Platform, body string, imageURL *string, createdAt time.Time) *Announcement {
	return &Announcement{
		EventID:   eventID,
		SpeakerID: speakerID,
		Platform:  platform,
		Body:      body,
		ImageURL:  imageURL,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

// IsPublished reports whether the announcement has gone live.
func (a *Announcement) IsPublished() bool {
	return a.PostedAt != nil
}

// AnnouncementUpdate holds the mutable announcement fields. Nil fields are
// left untouched.
type AnnouncementUpdate struct {
	Body     *string
	ImageURL *string
}

// CopyRequest is the input for generating announcement copy.
type CopyRequest struct {
	EventName        string
	EventDescription string
	EventDate        *time.Time
	Platform         Platform
	SpeakerName      string
	SpeakerTitle     string
	SpeakerCompany   string
	SpeakerBio       string
	MaxLength        int
}

// CopyGenerator produces platform-appropriate announcement text.
type CopyGenerator interface {
	Generate(ctx context.Context, req CopyRequest) (string, error)
}

// AnnouncementRepository defines the interface for announcement storage.
type AnnouncementRepository interface {
	Create(ctx context.Context, announcement *Announcement) error
	GetByID(ctx context.Context, id string) (*Announcement, error)
	// ListByEventID returns announcements for the event, optionally
	// filtered by speaker and platform (zero values mean no filter),
	// in creation order.
	ListByEventID(ctx context.Context, eventID, speakerID string, platform Platform) ([]*Announcement, error)
	GetBySpeakerAndPlatform(ctx context.Context, speakerID string, platform Platform) (*Announcement, error)
	Update(ctx context.Context, id string, upd AnnouncementUpdate) (*Announcement, error)
	MarkPublished(ctx context.Context, id, postURL string, postedAt time.Time) (*Announcement, error)
	Delete(ctx context.Context, id string) error
}

// AnnouncementService defines the interface for announcement operations.
type AnnouncementService interface {
	// GenerateAnnouncements creates copy for every speaker of the event on
	// the given platforms, skipping speaker/platform pairs that already
	// have one. Returns the created announcements and the names of
	// speakers whose generation failed.
	GenerateAnnouncements(ctx context.Context, eventID, ownerID string, platforms []Platform) ([]*Announcement, []string, error)
	ListAnnouncements(ctx context.Context, eventID, ownerID, speakerID string, platform Platform) ([]*Announcement, error)
	UpdateAnnouncement(ctx context.Context, announcementID, ownerID string, upd AnnouncementUpdate) (*Announcement, error)
	DeleteAnnouncement(ctx context.Context, announcementID, ownerID string) error
	// PublishAnnouncement pushes the announcement to its platform using the
	// owner's connected account and records the resulting post URL.
	PublishAnnouncement(ctx context.Context, announcementID, ownerID string) (*Announcement, error)
}
