package social

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"announcehub/internal/domain"
)

const defaultLinkedInBaseURL = "https://api.linkedin.com"

type linkedInPublisher struct {
	client  *http.Client
	baseURL string
	limiter *rate.Limiter
}

// NewLinkedInPublisher returns a publisher for LinkedIn UGC posts.
func NewLinkedInPublisher(baseURL string, client *http.Client) domain.SocialPublisher {
	if baseURL == "" {
		baseURL = defaultLinkedInBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &linkedInPublisher{
		client:  client,
		baseURL: baseURL,
		// LinkedIn allows 150 UGC posts per member per day.
		limiter: rate.NewLimiter(rate.Every(2*time.Second), 1),
	}
}

type linkedInShareRequest struct {
	Commentary string  `json:"commentary"`
	ImageURL   *string `json:"image_url,omitempty"`
	Visibility string  `json:"visibility"`
}

type linkedInShareResponse struct {
	ID string `json:"id"`
}

func (p *linkedInPublisher) Publish(ctx context.Context, post domain.SocialPost) (*domain.PublishResult, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	body, err := json.Marshal(linkedInShareRequest{
		Commentary: post.Text,
		ImageURL:   post.ImageURL,
		Visibility: "PUBLIC",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode share: %w", err)
	}
	url := p.baseURL + "/v2/ugcPosts"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+post.AccessToken)
	req.Header.Set("X-Restli-Protocol-Version", "2.0.0")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to post to linkedin: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("linkedin api returned status: %d", resp.StatusCode)
	}

	var data linkedInShareResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode linkedin response: %w", err)
	}
	return &domain.PublishResult{
		PostURL:  fmt.Sprintf("https://www.linkedin.com/feed/update/%s/", data.ID),
		PostedAt: time.Now().UTC(),
	}, nil
}
