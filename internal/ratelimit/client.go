// Package ratelimit is the client for the external rate-limit collaborator.
// The pipeline consults it before any transcoding work begins.
package ratelimit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/iyashjayesh/captune-ai/models"
)

// Client speaks the collaborator's two-call contract: GET for the current
// quota, POST to record an attempt (rejected with 429 when exhausted).
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Check returns the remaining/total quota.
func (c *Client) Check(ctx context.Context) (models.Quota, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL, nil)
	if err != nil {
		return models.Quota{}, err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return models.Quota{}, fmt.Errorf("rate limit check: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Quota{}, fmt.Errorf("rate limit check: status %d", resp.StatusCode)
	}

	var quota models.Quota
	if err := json.NewDecoder(resp.Body).Decode(&quota); err != nil {
		return models.Quota{}, fmt.Errorf("rate limit check: decode: %w", err)
	}
	return quota, nil
}

// Record registers one processing attempt. When the quota is exhausted the
// collaborator answers 429 with a human-readable message, surfaced here as a
// models.RateLimitError.
func (c *Client) Record(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader([]byte("{}")))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("rate limit record: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		var body struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&body)
		return &models.RateLimitError{Message: body.Message}
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("rate limit record: status %d", resp.StatusCode)
	}
	return nil
}
