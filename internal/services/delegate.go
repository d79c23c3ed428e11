package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
)

// DelegateRequest is the payload posted to an external delegate webhook
type DelegateRequest struct {
	Timestamp string `json:"timestamp"`
	UserID    string `json:"user_id"`
	UserEmail string `json:"user_email"`
	EventType string `json:"event_type"`
	Message   string `json:"message"`
	Action    string `json:"action"`
}

// DelegateResult is the payload a delegate webhook is expected to return
type DelegateResult struct {
	Response string          `json:"response"`
	Trip     json.RawMessage `json:"trip,omitempty"`
}

// DelegateClient calls user-configured delegate webhooks
type DelegateClient struct {
	client       *http.Client
	allowedHosts []string
}

// NewDelegateClient creates a delegate client with a bounded call timeout.
// When allowedHosts is non-empty, only those hosts may be called.
func NewDelegateClient(timeout time.Duration, allowedHosts []string) *DelegateClient {
	return &DelegateClient{
		client:       &http.Client{Timeout: timeout},
		allowedHosts: allowedHosts,
	}
}

// ValidateURL checks that a delegate URL is well-formed http(s) and, when an
// allow-list is configured, that its host is on it
func (c *DelegateClient) ValidateURL(raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid delegate url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("delegate url must be http or https")
	}
	if parsed.Host == "" {
		return fmt.Errorf("delegate url missing host")
	}
	if len(c.allowedHosts) == 0 {
		return nil
	}
	for _, host := range c.allowedHosts {
		if parsed.Hostname() == host {
			return nil
		}
	}
	return fmt.Errorf("delegate host %q is not allowed", parsed.Hostname())
}

// Send posts the request to the delegate webhook and parses its reply.
// Non-2xx status or an unparseable body is an error.
func (c *DelegateClient) Send(ctx context.Context, webhookURL string, req *DelegateRequest) (*DelegateResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal delegate request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build delegate request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("delegate request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("delegate responded with status %d", resp.StatusCode)
	}

	var result DelegateResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to parse delegate response: %w", err)
	}

	log.Debug().
		Str("webhook_url", webhookURL).
		Bool("has_trip", len(result.Trip) > 0).
		Msg("Delegate response received")

	return &result, nil
}
