package social

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"announcehub/internal/domain"
)

const defaultInstagramBaseURL = "https://graph.instagram.com"

type instagramPublisher struct {
	client  *http.Client
	baseURL string
	limiter *rate.Limiter
}

// NewInstagramPublisher returns a publisher for the Instagram content
// publishing API. Posting is two-phase: create a media container, then
// publish it.
func NewInstagramPublisher(baseURL string, client *http.Client) domain.SocialPublisher {
	if baseURL == "" {
		baseURL = defaultInstagramBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &instagramPublisher{
		client:  client,
		baseURL: baseURL,
		// The content publishing API caps accounts at 50 posts per day.
		limiter: rate.NewLimiter(rate.Every(5*time.Second), 1),
	}
}

type containerRequest struct {
	ImageURL string `json:"image_url"`
	Caption  string `json:"caption"`
}

type publishRequest struct {
	CreationID string `json:"creation_id"`
}

type mediaResponse struct {
	ID string `json:"id"`
}

func (p *instagramPublisher) Publish(ctx context.Context, post domain.SocialPost) (*domain.PublishResult, error) {
	if post.ImageURL == nil || *post.ImageURL == "" {
		return nil, errors.New("instagram posts require an image")
	}
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	containerID, err := p.createContainer(ctx, post)
	if err != nil {
		return nil, err
	}
	mediaID, err := p.publishContainer(ctx, post.AccessToken, containerID)
	if err != nil {
		return nil, err
	}
	return &domain.PublishResult{
		PostURL:  fmt.Sprintf("https://www.instagram.com/p/%s/", mediaID),
		PostedAt: time.Now().UTC(),
	}, nil
}

func (p *instagramPublisher) createContainer(ctx context.Context, post domain.SocialPost) (string, error) {
	body, err := json.Marshal(containerRequest{
		ImageURL: *post.ImageURL,
		Caption:  post.Text,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode container: %w", err)
	}
	url := p.baseURL + "/me/media"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+post.AccessToken)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to create instagram container: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("instagram api returned status: %d", resp.StatusCode)
	}

	var data mediaResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", fmt.Errorf("failed to decode instagram response: %w", err)
	}
	return data.ID, nil
}

func (p *instagramPublisher) publishContainer(ctx context.Context, accessToken, containerID string) (string, error) {
	body, err := json.Marshal(publishRequest{CreationID: containerID})
	if err != nil {
		return "", fmt.Errorf("failed to encode publish: %w", err)
	}
	url := p.baseURL + "/me/media_publish"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to publish instagram container: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("instagram api returned status: %d", resp.StatusCode)
	}

	var data mediaResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", fmt.Errorf("failed to decode instagram response: %w", err)
	}
	return data.ID, nil
}
