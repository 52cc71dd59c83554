// Package identity provides the HTTP client for the identity service's
// admin API.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"socuser/internal/domain"
)

// Client talks to the identity service admin API. The API listens on
// localhost and is unauthenticated; every request carries a fresh
// X-Request-ID so operations can be traced in the service's logs.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a new API client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// errorEnvelope is the service's error response shape.
type errorEnvelope struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Do executes an HTTP request against the service. A non-nil body is
// JSON-encoded. The caller owns the response body.
func (c *Client) Do(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	return resp, nil
}

// checkError converts a non-2xx response into a typed domain error,
// consuming and closing the body. 404 and 409 map to the not-found and
// duplicate-user errors; everything else becomes a ServiceError carrying
// the service's message, or the raw body when the envelope is absent.
func checkError(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	code := resp.StatusCode
	message := strings.TrimSpace(string(data))

	var envelope errorEnvelope
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Error.Message != "" {
		message = envelope.Error.Message
		if envelope.Error.Code != 0 {
			code = envelope.Error.Code
		}
	}

	switch code {
	case http.StatusNotFound:
		return domain.ErrNotFound("User not found")
	case http.StatusConflict:
		return domain.ErrConflict("User already exists")
	}
	return domain.ErrService(resp.StatusCode, "identity service error (HTTP %d): %s", resp.StatusCode, message)
}

// List returns every identity known to the service.
func (c *Client) List(ctx context.Context) ([]domain.Identity, error) {
	resp, err := c.Do(ctx, http.MethodGet, "/identities", nil)
	if err != nil {
		return nil, err
	}
	if err := checkError(resp); err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var identities []domain.Identity
	if err := json.NewDecoder(resp.Body).Decode(&identities); err != nil {
		return nil, fmt.Errorf("decode identity list: %w", err)
	}
	return identities, nil
}

// Get fetches a single identity by id.
func (c *Client) Get(ctx context.Context, id string) (*domain.Identity, error) {
	resp, err := c.Do(ctx, http.MethodGet, "/identities/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	if err := checkError(resp); err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var ident domain.Identity
	if err := json.NewDecoder(resp.Body).Decode(&ident); err != nil {
		return nil, fmt.Errorf("decode identity: %w", err)
	}
	return &ident, nil
}

// Create registers a new identity with the given traits and returns the
// service's representation of it.
func (c *Client) Create(ctx context.Context, traits domain.Traits) (*domain.Identity, error) {
	resp, err := c.Do(ctx, http.MethodPost, "/identities", map[string]interface{}{"traits": traits})
	if err != nil {
		return nil, err
	}
	if err := checkError(resp); err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var ident domain.Identity
	if err := json.NewDecoder(resp.Body).Decode(&ident); err != nil {
		return nil, fmt.Errorf("decode created identity: %w", err)
	}
	return &ident, nil
}

// UpdateTraits replaces the identity's traits. Server-managed fields
// (verifiable addresses, schema reference) are never sent back.
func (c *Client) UpdateTraits(ctx context.Context, id string, traits domain.Traits) error {
	resp, err := c.Do(ctx, http.MethodPut, "/identities/"+url.PathEscape(id), map[string]interface{}{"traits": traits})
	if err != nil {
		return err
	}
	if err := checkError(resp); err != nil {
		return err
	}
	return resp.Body.Close()
}

// Delete removes the identity from the service.
func (c *Client) Delete(ctx context.Context, id string) error {
	resp, err := c.Do(ctx, http.MethodDelete, "/identities/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	if err := checkError(resp); err != nil {
		return err
	}
	return resp.Body.Close()
}

// Ping checks the service's readiness endpoint.
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.Do(ctx, http.MethodGet, "/health/ready", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("identity service not ready (HTTP %d)", resp.StatusCode)
	}
	return nil
}
