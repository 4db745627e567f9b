package domain

import (
	"context"
	"time"
)

// Platform identifies a social network a post targets. PlatformAll is a
// scheduling-time wildcard: the post is fanned out to every connected
// platform when it is actually published.
type Platform string

const (
	PlatformLinkedIn  Platform = "linkedin"
	PlatformTwitter   Platform = "twitter"
	PlatformInstagram Platform = "instagram"
	PlatformAll       Platform = "all"
)

// ValidPlatform reports whether p is one of the known platform values.
func ValidPlatform(p Platform) bool {
	switch p {
	case PlatformLinkedIn, PlatformTwitter, PlatformInstagram, PlatformAll:
		return true
	}
	return false
}

// PostStatus is the lifecycle state of a scheduled post.
type PostStatus string

const (
	PostStatusPending   PostStatus = "pending"
	PostStatusPosted    PostStatus = "posted"
	PostStatusFailed    PostStatus = "failed"
	PostStatusCancelled PostStatus = "cancelled"
)

// ValidPostStatus reports whether s is one of the known status values.
func ValidPostStatus(s PostStatus) bool {
	switch s {
	case PostStatusPending, PostStatusPosted, PostStatusFailed, PostStatusCancelled:
		return true
	}
	return false
}

// ScheduledPost is a reserved slot in a drip campaign: one announcement for
// one speaker at a fixed instant. Only pending and posted entries are
// "active" and count as conflicts in later scheduling runs; failed and
// cancelled entries free their slot.
// swagger:model ScheduledPost
type ScheduledPost struct {
	ID          string     `json:"id"`
	EventID     string     `json:"event_id"`
	SpeakerID   string     `json:"speaker_id"`
	BatchID     string     `json:"batch_id"`
	Platform    Platform   `json:"platform"`
	ScheduledAt time.Time  `json:"scheduled_at"`
	Timezone    string     `json:"timezone"`
	PostText    string     `json:"post_text"`
	Status      PostStatus `json:"status"`
	Error       *string    `json:"error,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewScheduledPost returns a pending ScheduledPost for the given slot. ID is
// typically set by the repository on create.
func NewScheduledPost(eventID, speakerID, batchID string, platform Platform, scheduledAt time.Time, timezone, postText string, createdAt time.Time) *ScheduledPost {
	return &ScheduledPost{
		EventID:     eventID,
		SpeakerID:   speakerID,
		BatchID:     batchID,
		Platform:    platform,
		ScheduledAt: scheduledAt,
		Timezone:    timezone,
		PostText:    postText,
		Status:      PostStatusPending,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
}

// IsActive reports whether the post still occupies its slot.
func (p *ScheduledPost) IsActive() bool {
	return p.Status == PostStatusPending || p.Status == PostStatusPosted
}

// ScheduledPostRepository defines the interface for scheduled post storage.
type ScheduledPostRepository interface {
	Create(ctx context.Context, post *ScheduledPost) error
	GetByID(ctx context.Context, id string) (*ScheduledPost, error)
	// ListActiveByEventID returns posts with status pending or posted,
	// ordered by scheduled_at ascending.
	ListActiveByEventID(ctx context.Context, eventID string) ([]*ScheduledPost, error)
	// ListByEventID returns posts for the event, optionally filtered by
	// status (empty string means all), newest scheduled first, paginated.
	ListByEventID(ctx context.Context, eventID string, status PostStatus, params PaginationParams) ([]*ScheduledPost, int, error)
	UpdateStatus(ctx context.Context, id string, status PostStatus, errMsg *string) (*ScheduledPost, error)
}
