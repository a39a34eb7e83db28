// Package aiclient wraps the generative-language HTTP endpoint used
// for habit reminders and daily-plan generation.
package aiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

const defaultEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.0-flash:generateContent"

// maxAttempts is the total number of tries for retryable failures.
const maxAttempts = 3

type Client struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string

	// sleep is swapped out in tests so backoff does not stall them.
	sleep func(time.Duration)
}

func New(apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		endpoint:   defaultEndpoint,
		apiKey:     apiKey,
		sleep:      time.Sleep,
	}
}

// NewWithEndpoint is used by tests to point the client at a stub server.
func NewWithEndpoint(apiKey, endpoint string) *Client {
	c := New(apiKey)
	c.endpoint = endpoint
	return c
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// StatusError reports a non-success response that survived the retry
// policy. The last failing response is surfaced as-is, not raised as a
// transport failure.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("generative endpoint returned %d", e.StatusCode)
}

// retryable covers 429 and every 5xx status.
func retryable(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

// Generate sends a free-text prompt and returns the generated text.
// On 429 or 5xx it retries with exponential backoff (1s, 2s, 4s) up to
// three attempts total, then returns the last failing response as a
// StatusError. Network-level failures follow the same schedule but the
// final error is returned directly. Any other non-success status is
// returned immediately without retry. An empty or malformed body is a
// soft failure: callers fall back to a generic message.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode prompt: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			c.sleep(time.Duration(1<<uint(attempt-1)) * time.Second)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
		if err != nil {
			return "", fmt.Errorf("failed to build request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("x-goog-api-key", c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("generative endpoint unreachable: %w", err)
			log.Printf("AI client: attempt %d failed: %v", attempt+1, err)
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode == http.StatusOK {
			if readErr != nil {
				return "", fmt.Errorf("failed to read response: %w", readErr)
			}
			return extractText(body)
		}

		lastErr = &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
		if !retryable(resp.StatusCode) {
			return "", lastErr
		}
		log.Printf("AI client: attempt %d got status %d", attempt+1, resp.StatusCode)
	}

	return "", lastErr
}

func extractText(body []byte) (string, error) {
	var parsed generateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("malformed generative response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty generative response")
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}
