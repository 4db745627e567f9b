package social

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"announcehub/internal/domain"
)

const defaultTwitterBaseURL = "https://api.twitter.com"

type twitterPublisher struct {
	client  *http.Client
	baseURL string
	limiter *rate.Limiter
}

// NewTwitterPublisher returns a publisher for the v2 tweets endpoint.
func NewTwitterPublisher(baseURL string, client *http.Client) domain.SocialPublisher {
	if baseURL == "" {
		baseURL = defaultTwitterBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &twitterPublisher{
		client:  client,
		baseURL: baseURL,
		// The v2 endpoint caps user-context writes at 200 per 15 minutes.
		limiter: rate.NewLimiter(rate.Every(5*time.Second), 1),
	}
}

type tweetRequest struct {
	Text string `json:"text"`
}

type tweetResponse struct {
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

func (p *twitterPublisher) Publish(ctx context.Context, post domain.SocialPost) (*domain.PublishResult, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	body, err := json.Marshal(tweetRequest{Text: post.Text})
	if err != nil {
		return nil, fmt.Errorf("failed to encode tweet: %w", err)
	}
	url := p.baseURL + "/2/tweets"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+post.AccessToken)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to post to twitter: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("twitter api returned status: %d", resp.StatusCode)
	}

	var data tweetResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode twitter response: %w", err)
	}
	handle := strings.TrimPrefix(post.Handle, "@")
	return &domain.PublishResult{
		PostURL:  fmt.Sprintf("https://twitter.com/%s/status/%s", handle, data.Data.ID),
		PostedAt: time.Now().UTC(),
	}, nil
}
