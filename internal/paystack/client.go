package paystack

import (
	"bytes"         // Request body buffer
	"context"       // Cancellation and deadlines
	"encoding/json" // JSON encoding/decoding
	"fmt"           // Error wrapping
	"io"            // Response body reading
	"net/http"      // HTTP client
	"time"          // Client timeout

	"owambe/internal/service" // InitializedPayment result type
)

// Client talks to the Paystack REST API. The base URL is configurable so
// tests can point it at a local server.
type Client struct {
	BaseURL    string       // API base URL
	Secret     string       // API secret key, sent as a bearer token
	HTTPClient *http.Client // Underlying HTTP client
}

// NewClient builds a Client with a sane request timeout
func NewClient(baseURL, secret string) *Client {
	return &Client{
		BaseURL:    baseURL,
		Secret:     secret,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// initResponse is the slice of Paystack's initialize response we consume
type initResponse struct {
	Status  bool   `json:"status"`  // Whether the call succeeded
	Message string `json:"message"` // Provider message, used in errors
	Data    struct {
		Reference        string `json:"reference"`         // Payment reference
		AuthorizationURL string `json:"authorization_url"` // Checkout URL
	} `json:"data"`
}

// Initialize starts a charge and returns the reference plus checkout URL.
// The caller's context bounds the call; a timeout here leaves the pending
// transaction behind for an idempotent retry.
func (c *Client) Initialize(ctx context.Context, email string, amount int64, metadata map[string]any) (*service.InitializedPayment, error) {
	body, err := json.Marshal(map[string]any{
		"email":    email,    // Customer email
		"amount":   amount,   // Amount in kobo
		"metadata": metadata, // Echoed back on the webhook
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/transaction/initialize", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.Secret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("paystack request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("paystack response read failed: %w", err)
	}

	var parsed initResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("paystack response parse failed: %w", err)
	}
	if resp.StatusCode >= 300 || !parsed.Status {
		return nil, fmt.Errorf("paystack init failed: %s", parsed.Message)
	}
	if parsed.Data.Reference == "" || parsed.Data.AuthorizationURL == "" {
		return nil, fmt.Errorf("paystack init returned an incomplete response")
	}

	return &service.InitializedPayment{
		Reference:        parsed.Data.Reference,
		AuthorizationURL: parsed.Data.AuthorizationURL,
		Raw:              string(raw),
	}, nil
}
