// Package stytch is the HTTP adapter for the Stytch B2B REST API. The
// client is constructed once at process start and injected into services;
// it is immutable after construction and safe for concurrent reuse.
package stytch

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

	domainauth "github.com/learnwithjason/stytch-b2b-saas/internal/domain/auth"
)

// sessionJWTHeader carries a member's session JWT so the provider enforces
// RBAC for provider-native objects itself.
const sessionJWTHeader = "X-Stytch-Member-SessionJWT"

// Config holds construction parameters for the provider client.
type Config struct {
	ProjectID   string
	Secret      string
	PublicToken string

	// BaseURL is the provider API origin (test or live, or a fake in tests).
	BaseURL string

	// Timeout bounds each call. Calls are fire-once; there are no retries.
	Timeout time.Duration

	// HTTPClient overrides the transport. Optional.
	HTTPClient *http.Client
}

// Client talks to the provider REST API.
type Client struct {
	baseURL     string
	projectID   string
	secret      string
	publicToken string
	httpClient  *http.Client
}

// NewClient validates the config and builds a provider client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.ProjectID == "" {
		return nil, errors.New("project ID is required")
	}
	if cfg.Secret == "" {
		return nil, errors.New("secret is required")
	}
	if cfg.BaseURL == "" {
		return nil, errors.New("base URL is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:     strings.TrimSuffix(cfg.BaseURL, "/"),
		projectID:   cfg.ProjectID,
		secret:      cfg.Secret,
		publicToken: cfg.PublicToken,
		httpClient:  hc,
	}, nil
}

// OAuthDiscoveryStartURL builds the public discovery-start URL the browser
// is redirected to for OAuth-based discovery. Only google and microsoft are
// supported; anything else is an integration bug.
func (c *Client) OAuthDiscoveryStartURL(method string) (string, error) {
	if method != "google" && method != "microsoft" {
		return "", fmt.Errorf("oauth method %q is unsupported", method)
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse base URL: %w", err)
	}
	u.Path = "/v1/b2b/public/oauth/" + method + "/discovery/start"
	q := u.Query()
	q.Set("public_token", c.publicToken)
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// callOption tweaks a single provider request.
type callOption func(*http.Request)

// withSessionJWT attaches the member's session JWT for provider-side RBAC.
func withSessionJWT(jwt string) callOption {
	return func(req *http.Request) {
		if jwt != "" {
			req.Header.Set(sessionJWTHeader, jwt)
		}
	}
}

// do issues one authenticated JSON call. Non-2xx responses are returned as
// *auth.ProviderError with the raw body preserved; nothing is retried.
func (c *Client) do(ctx context.Context, method, path string, in, out any, opts ...callOption) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.SetBasicAuth(c.projectID, c.secret)
	req.Header.Set("Content-Type", "application/json")
	for _, opt := range opts {
		opt(req)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("provider request %s %s: %w", method, path, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read provider response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &domainauth.ProviderError{StatusCode: resp.StatusCode, Body: respBody}
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decode provider response: %w", err)
		}
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, in, out any, opts ...callOption) error {
	return c.do(ctx, http.MethodPost, path, in, out, opts...)
}

func (c *Client) get(ctx context.Context, path string, out any, opts ...callOption) error {
	return c.do(ctx, http.MethodGet, path, nil, out, opts...)
}

func (c *Client) put(ctx context.Context, path string, in, out any, opts ...callOption) error {
	return c.do(ctx, http.MethodPut, path, in, out, opts...)
}
