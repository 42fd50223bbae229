package fathom

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	backoff "github.com/cenkalti/backoff/v4"

	"github.com/omniscope-hq/meeting-intel/pkg/config"
)

// Client is a minimal client for the Fathom API, used by batch import and
// webhook registration. Webhook receipt does not go through this client.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewClient creates a Fathom client from config
func NewClient(cfg *config.FathomConfig) *Client {
	timeout := 15 * time.Second
	if cfg != nil && cfg.Timeout > 0 {
		timeout = cfg.Timeout
	}

	var apiKey, base string
	if cfg != nil {
		apiKey = cfg.APIKey
		base = cfg.BaseURL
	}
	if base == "" {
		base = "https://api.fathom.ai"
	}

	return &Client{
		apiKey:  apiKey,
		baseURL: base,
		client:  &http.Client{Timeout: timeout},
	}
}

// HasAPIKey reports whether the client can make authenticated calls
func (c *Client) HasAPIKey() bool {
	return c.apiKey != ""
}

// ListMeetingsResponse is a page of meetings from the Fathom API
type ListMeetingsResponse struct {
	Items      []RawRecordingPayload `json:"items"`
	NextCursor string                `json:"next_cursor,omitempty"`
}

// ListMeetings fetches up to limit meetings, with transcript, summary and
// action items included, starting from cursor.
func (c *Client) ListMeetings(ctx context.Context, limit int, cursor string) (*ListMeetingsResponse, error) {
	if !c.HasAPIKey() {
		return nil, fmt.Errorf("fathom API key is required")
	}
	if limit <= 0 {
		limit = 10
	}

	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("include_transcript", "true")
	q.Set("include_summary", "true")
	q.Set("include_action_items", "true")
	if cursor != "" {
		q.Set("cursor", cursor)
	}
	endpoint := c.baseURL + "/external/v1/meetings?" + q.Encode()

	var out ListMeetingsResponse
	fetchFn := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("X-Api-Key", c.apiKey)

		resp, err := c.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return backoff.Permanent(fmt.Errorf("fathom rejected credentials: status %d", resp.StatusCode))
		}
		if resp.StatusCode >= 400 {
			return fmt.Errorf("fathom returned status %d", resp.StatusCode)
		}

		return json.NewDecoder(resp.Body).Decode(&out)
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 1 * time.Second
	bo.MaxInterval = 5 * time.Second
	bo.MaxElapsedTime = 20 * time.Second

	if err := backoff.Retry(fetchFn, backoff.WithContext(bo, ctx)); err != nil {
		return nil, fmt.Errorf("failed to list fathom meetings: %w", err)
	}
	return &out, nil
}

// WebhookRegistration is the vendor's record of a webhook destination
type WebhookRegistration struct {
	ID            string `json:"id"`
	URL           string `json:"url"`
	WebhookSecret string `json:"webhook_secret"`
}

// RegisterWebhook asks Fathom to deliver future recordings to destinationURL,
// with transcript, summary and action items included. One-time admin setup.
func (c *Client) RegisterWebhook(ctx context.Context, destinationURL string) (*WebhookRegistration, error) {
	if !c.HasAPIKey() {
		return nil, fmt.Errorf("fathom API key is required")
	}
	if destinationURL == "" {
		return nil, fmt.Errorf("destination URL is required")
	}

	body, err := json.Marshal(map[string]interface{}{
		"destination_url":      destinationURL,
		"include_transcript":   true,
		"include_summary":      true,
		"include_action_items": true,
	})
	if err != nil {
		return nil, err
	}

	endpoint := c.baseURL + "/external/v1/webhooks"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("fathom returned status %d", resp.StatusCode)
	}

	var reg WebhookRegistration
	if err := json.NewDecoder(resp.Body).Decode(&reg); err != nil {
		return nil, err
	}
	return &reg, nil
}
