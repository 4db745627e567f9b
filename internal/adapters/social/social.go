// Package social holds the thin posting clients for the supported platforms.
// Each client wraps one platform HTTP API behind domain.SocialPublisher and
// rate-limits itself to stay under the platform posting caps.
package social

import (
	"net/http"

	"announcehub/internal/domain"
)

// Config holds the base URLs for the platform APIs. Empty values fall back
// to the production endpoints; tests point them at a local server.
type Config struct {
	LinkedInBaseURL  string
	TwitterBaseURL   string
	InstagramBaseURL string
}

// NewPublishers returns one publisher per concrete platform, keyed for
// dispatch at publish time.
func NewPublishers(cfg Config, client *http.Client) map[domain.Platform]domain.SocialPublisher {
	return map[domain.Platform]domain.SocialPublisher{
		domain.PlatformLinkedIn:  NewLinkedInPublisher(cfg.LinkedInBaseURL, client),
		domain.PlatformTwitter:   NewTwitterPublisher(cfg.TwitterBaseURL, client),
		domain.PlatformInstagram: NewInstagramPublisher(cfg.InstagramBaseURL, client),
	}
}
