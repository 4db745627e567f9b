package domain

import (
	"context"
	"time"
)

// SocialAccount is a user's connection to one platform. AccessToken is
// stored server-side only and never serialized.
// swagger:model SocialAccount
type SocialAccount struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Platform    Platform   `json:"platform"`
	Handle      string     `json:"handle"`
	AccessToken string     `json:"-"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewSocialAccount returns a SocialAccount connection. ID is typically set
// by the repository on create.
func NewSocialAccount(userID string, platform Platform, handle, accessToken string, expiresAt *time.Time, createdAt time.Time) *SocialAccount {
	return &SocialAccount{
		UserID:      userID,
		Platform:    platform,
		Handle:      handle,
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
}

// IsExpired reports whether the stored token is past its expiry at now.
func (a *SocialAccount) IsExpired(now time.Time) bool {
	return a.ExpiresAt != nil && now.After(*a.ExpiresAt)
}

// SocialPost is the payload handed to a platform publisher.
type SocialPost struct {
	Text        string
	ImageURL    *string
	AccessToken string
	Handle      string
}

// PublishResult is what a platform reports back for a live post.
type PublishResult struct {
	PostURL  string
	PostedAt time.Time
}

// SocialPublisher pushes a post to one platform. Implementations wrap the
// platform HTTP APIs and are selected by platform at call time.
type SocialPublisher interface {
	Publish(ctx context.Context, post SocialPost) (*PublishResult, error)
}

// SocialAccountRepository defines the interface for social account storage.
// At most one account per (user, platform) pair; Upsert replaces an
// existing connection.
type SocialAccountRepository interface {
	Upsert(ctx context.Context, account *SocialAccount) (*SocialAccount, error)
	GetByUserAndPlatform(ctx context.Context, userID string, platform Platform) (*SocialAccount, error)
	ListByUserID(ctx context.Context, userID string) ([]*SocialAccount, error)
	Delete(ctx context.Context, userID string, platform Platform) error
}

// SocialAccountService defines the interface for managing platform
// connections.
type SocialAccountService interface {
	Connect(ctx context.Context, userID string, platform Platform, handle, accessToken string, expiresAt *time.Time) (*SocialAccount, error)
	ListConnections(ctx context.Context, userID string) ([]*SocialAccount, error)
	Disconnect(ctx context.Context, userID string, platform Platform) error
}
