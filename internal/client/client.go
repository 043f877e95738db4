// Package client is a typed HTTP client for the textshare API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/textshare/textshare/internal/handler/dto"
)

// DefaultTimeout bounds each request when no HTTP client is supplied.
const DefaultTimeout = 30 * time.Second

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.StatusCode)
	}
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// IsStatus reports whether err is an APIError with the given status code.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

// Client talks to one textshare server.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithToken attaches a bearer token to every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New creates a client for baseURL, e.g. "http://localhost:5000".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Signup creates an account. confirm is sent only when non-empty.
func (c *Client) Signup(ctx context.Context, email, password, confirm string) (*dto.AuthResponse, error) {
	req := dto.SignupRequest{Email: email, Password: password}
	if confirm != "" {
		req.ConfirmPassword = &confirm
	}

	var resp dto.AuthResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/auth/signup", req, &resp); err != nil {
		return nil, fmt.Errorf("signup request failed: %w", err)
	}
	return &resp, nil
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, email, password string) (*dto.AuthResponse, error) {
	var resp dto.AuthResponse
	req := dto.LoginRequest{Email: email, Password: password}
	if err := c.doRequest(ctx, http.MethodPost, "/api/auth/login", req, &resp); err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	return &resp, nil
}

// CreatePaste stores content and returns its UUID. Without a token the
// paste is anonymous.
func (c *Client) CreatePaste(ctx context.Context, content string) (string, error) {
	var resp dto.CreatePasteResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/pastes", dto.CreatePasteRequest{Content: content}, &resp); err != nil {
		return "", fmt.Errorf("create paste request failed: %w", err)
	}
	return resp.UUID, nil
}

// GetPaste fetches a paste by UUID.
func (c *Client) GetPaste(ctx context.Context, id string) (*dto.PasteResponse, error) {
	var resp dto.PasteResponse
	if err := c.doRequest(ctx, http.MethodGet, "/api/pastes/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, fmt.Errorf("get paste request failed: %w", err)
	}
	return &resp, nil
}

// ListPastes returns the caller's pastes, newest first. Requires a token.
func (c *Client) ListPastes(ctx context.Context) ([]dto.PasteResponse, error) {
	var resp []dto.PasteResponse
	if err := c.doRequest(ctx, http.MethodGet, "/api/pastes", nil, &resp); err != nil {
		return nil, fmt.Errorf("list pastes request failed: %w", err)
	}
	return resp, nil
}

// DeletePaste removes one of the caller's pastes. Requires a token.
func (c *Client) DeletePaste(ctx context.Context, id string) error {
	var resp dto.MessageResponse
	if err := c.doRequest(ctx, http.MethodDelete, "/api/pastes/"+url.PathEscape(id), nil, &resp); err != nil {
		return fmt.Errorf("delete paste request failed: %w", err)
	}
	return nil
}

// ShareURL builds the browser link for a paste: <origin>/paste/<uuid>.
func ShareURL(origin, id string) string {
	return strings.TrimRight(origin, "/") + "/paste/" + id
}

func (c *Client) doRequest(ctx context.Context, method, path string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var errResp dto.ErrorResponse
		if json.Unmarshal(respBody, &errResp) == nil {
			apiErr.Message = errResp.Error
		}
		return apiErr
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
