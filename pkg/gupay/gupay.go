// Package gupay is a typed client for the GuPay charge-creation API.
//
// The client captures configuration at construction time and performs exactly
// one HTTPS round trip per charge call. It never retries, never logs and
// keeps no state between calls, so a single *Client is safe for concurrent
// reuse.
package gupay

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
)

// DefaultBaseURL is the provider's production host, used when Config.BaseURL
// is empty.
const DefaultBaseURL = "https://api.gupay.co"

const chargesPath = "/v1/charges"

// Config holds the credentials and endpoint for a GuPay client.
//
// APIKey and ServiceID are issued per merchant account. Neither is validated
// locally; the provider rejects bad credentials at call time.
type Config struct {
	// APIKey is the secret key, sent as the username of an HTTP Basic
	// Authorization header with an empty password.
	APIKey string

	// ServiceID identifies the configured payment service the charges
	// belong to. It is injected into every charge payload.
	ServiceID string

	// BaseURL overrides DefaultBaseURL, e.g. for a sandbox host.
	BaseURL string

	// HTTPClient overrides http.DefaultClient. The client defines no
	// timeout policy of its own beyond what the transport applies.
	HTTPClient *http.Client
}

// Client issues charge-creation calls against the GuPay API. It is read-only
// after NewClient returns.
type Client struct {
	apiKey     string
	serviceID  string
	baseURL    string
	httpClient *http.Client
}

// NewClient captures cfg into a reusable client. No network activity happens
// here.
func NewClient(cfg Config) *Client {
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		apiKey:     cfg.APIKey,
		serviceID:  cfg.ServiceID,
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// createCharge is the single submission routine every charge method funnels
// through: marshal the payload, POST it to /v1/charges with Basic auth, and
// translate the outcome per the two-tier error taxonomy.
func (c *Client) createCharge(ctx context.Context, payload chargePayload) (*Charge, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, ErrUnexpected
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+chargesPath, bytes.NewReader(body))
	if err != nil {
		return nil, ErrUnexpected
	}
	req.SetBasicAuth(c.apiKey, "")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, ErrUnexpected
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, ErrUnexpected
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var envelope errorEnvelope
		if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Err != nil && envelope.Err.Code != "" {
			return nil, envelope.Err
		}
		return nil, ErrUnexpected
	}

	var charge Charge
	if err := json.Unmarshal(raw, &charge); err != nil {
		return nil, ErrUnexpected
	}
	charge.Raw = raw
	return &charge, nil
}
