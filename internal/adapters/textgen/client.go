// Package textgen generates announcement copy through an OpenAI-compatible
// chat completions endpoint.
package textgen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"announcehub/internal/domain"
)

const (
	defaultBaseURL = "https://api.openai.com"
	defaultModel   = "gpt-4o-mini"
)

// Config holds the endpoint settings for the copy generator.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
}

type chatClient struct {
	client  *http.Client
	cfg     Config
	breaker *gobreaker.CircuitBreaker
}

// NewChatClient returns a CopyGenerator backed by a chat completions API.
// Calls go through a circuit breaker so a dead endpoint fails fast instead
// of stalling every generation request.
func NewChatClient(cfg Config, client *http.Client) domain.CopyGenerator {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	st := gobreaker.Settings{Name: "textgen"}
	st.Timeout = 30 * time.Second
	st.ReadyToTrip = func(counts gobreaker.Counts) bool {
		return counts.ConsecutiveFailures >= 3
	}
	return &chatClient{
		client:  client,
		cfg:     cfg,
		breaker: gobreaker.NewCircuitBreaker(st),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (c *chatClient) Generate(ctx context.Context, req domain.CopyRequest) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildPrompt(req)},
		},
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode completion request: %w", err)
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.complete(ctx, payload)
	})
	if err != nil {
		return "", err
	}
	body := strings.TrimSpace(result.(string))
	body = strings.Trim(body, `"`)
	if req.MaxLength > 0 {
		body = truncate(body, req.MaxLength)
	}
	if body == "" {
		return "", errors.New("generator returned empty copy")
	}
	return body, nil
}

func (c *chatClient) complete(ctx context.Context, payload []byte) (string, error) {
	url := c.cfg.BaseURL + "/v1/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call completion api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("completion api returned status: %d", resp.StatusCode)
	}

	var data chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", fmt.Errorf("failed to decode completion response: %w", err)
	}
	if len(data.Choices) == 0 {
		return "", errors.New("completion response has no choices")
	}
	return data.Choices[0].Message.Content, nil
}

const systemPrompt = "You write short, energetic social media posts announcing conference speakers. " +
	"Return only the post text, no quotes, no hashtag spam, at most two hashtags."

func buildPrompt(req domain.CopyRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a %s post announcing %s as a speaker at %s.", req.Platform, req.SpeakerName, req.EventName)
	if req.SpeakerTitle != "" {
		fmt.Fprintf(&b, " They are %s", req.SpeakerTitle)
		if req.SpeakerCompany != "" {
			fmt.Fprintf(&b, " at %s", req.SpeakerCompany)
		}
		b.WriteString(".")
	} else if req.SpeakerCompany != "" {
		fmt.Fprintf(&b, " They work at %s.", req.SpeakerCompany)
	}
	if req.SpeakerBio != "" {
		fmt.Fprintf(&b, " Bio: %s", req.SpeakerBio)
	}
	if req.EventDescription != "" {
		fmt.Fprintf(&b, " About the event: %s", req.EventDescription)
	}
	if req.EventDate != nil {
		fmt.Fprintf(&b, " The event takes place on %s.", req.EventDate.Format("January 2, 2006"))
	}
	if req.MaxLength > 0 {
		fmt.Fprintf(&b, " Keep it under %d characters.", req.MaxLength)
	}
	return b.String()
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
