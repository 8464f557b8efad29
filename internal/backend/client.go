package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to the external backend that performs the OAuth code
// exchange and the actual issue creation. Responses are passed through
// verbatim so the backend's status codes and error shapes reach the browser
// unchanged.
type Client struct {
	baseURL string
	client  *http.Client
}

// Response carries a collaborator response verbatim
type Response struct {
	StatusCode int
	Body       []byte
}

// OK reports whether the collaborator answered with a 2xx status
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// AccessToken extracts the access_token field from a successful token
// exchange response
func (r *Response) AccessToken() (string, error) {
	var payload struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(r.Body, &payload); err != nil {
		return "", fmt.Errorf("failed to parse token response: %w", err)
	}
	if payload.AccessToken == "" {
		return "", fmt.Errorf("token response contained no access_token")
	}
	return payload.AccessToken, nil
}

// ErrorMessage extracts a human-readable error from a collaborator error
// body, trying the backend's `detail` field first, then `error`
func (r *Response) ErrorMessage(fallback string) string {
	var payload struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(r.Body, &payload); err == nil {
		if payload.Detail != "" {
			return payload.Detail
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return fallback
}

// IssueRequest is the payload forwarded to the issue-creation endpoint. The
// access token travels only server-to-server.
type IssueRequest struct {
	Repo        string `json:"repo"`
	Title       string `json:"title"`
	Body        string `json:"body"`
	AccessToken string `json:"access_token"`
}

// NewClient creates a backend client for the given base URL
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// ExchangeToken forwards an authorization code to the backend's token
// endpoint. The response is returned verbatim, success or error; only
// transport failures produce a non-nil error.
func (c *Client) ExchangeToken(ctx context.Context, code, redirectURI string) (*Response, error) {
	payload := map[string]string{
		"code":         code,
		"redirect_uri": redirectURI,
	}
	return c.post(ctx, "/oauth/token", payload)
}

// CreateIssue forwards a validated issue to the backend with the session's
// access token attached
func (c *Client) CreateIssue(ctx context.Context, issue IssueRequest) (*Response, error) {
	return c.post(ctx, "/create-issue", issue)
}

// Ping probes the backend's root endpoint for the diagnostics route
func (c *Client) Ping(ctx context.Context) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	return c.do(req)
}

func (c *Client) post(ctx context.Context, path string, payload interface{}) (*Response, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

func (c *Client) do(req *http.Request) (*Response, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}
