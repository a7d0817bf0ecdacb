// Package rest implements [wander.Backend] and [wander.Auth] over the travel
// service's REST API.
//
// Session endpoints wrap their payloads in a status/detail/data envelope;
// chat endpoints return bare payloads. Protected calls carry the identity
// token as a bearer header.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/wanderapp/wander"
	wire "github.com/wanderapp/wander/json"
)

// defaultTimeout bounds every request. The core defines no timeout policy;
// this keeps a hung backend from pinning the waiting indicator forever.
const defaultTimeout = 60 * time.Second

// maxResponseBytes caps response reads.
const maxResponseBytes = 4 << 20

// Interface compliance checks.
var (
	_ wander.Backend = (*Client)(nil)
	_ wander.Auth    = (*Client)(nil)
)

// Client talks to the travel backend.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// Option configures a [Client].
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

// New creates a Client for the service at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: defaultTimeout},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// ListSessions implements [wander.Backend].
func (c *Client) ListSessions(ctx context.Context, token string) ([]wander.Session, error) {
	data, err := c.do(ctx, http.MethodGet, "/session/all", nil, token, nil)
	if err != nil {
		return nil, err
	}
	return wire.DecodeSessions(data)
}

// CreateSession implements [wander.Backend].
func (c *Client) CreateSession(ctx context.Context, token string) (wander.Session, error) {
	data, err := c.do(ctx, http.MethodPost, "/session/create", nil, token, struct{}{})
	if err != nil {
		return wander.Session{}, err
	}
	return wire.DecodeSession(data)
}

// RenameSession implements [wander.Backend]. The name travels as a query
// parameter, matching the service's PUT contract.
func (c *Client) RenameSession(ctx context.Context, token, sessionID, name string) error {
	q := url.Values{"session_name": {name}}
	_, err := c.do(ctx, http.MethodPut, "/session/update/"+sessionID, q, token, nil)
	return err
}

// DeleteSession implements [wander.Backend].
func (c *Client) DeleteSession(ctx context.Context, token, sessionID string) (string, error) {
	data, err := c.do(ctx, http.MethodDelete, "/session/delete/"+sessionID, nil, token, nil)
	if err != nil {
		return "", err
	}
	return wire.DecodeDetail(data)
}

// GetHistory implements [wander.Backend].
func (c *Client) GetHistory(ctx context.Context, token, sessionID string) ([]wander.Turn, error) {
	data, err := c.do(ctx, http.MethodGet, "/chat/history/"+sessionID, nil, token, nil)
	if err != nil {
		return nil, err
	}
	return wire.DecodeHistory(data)
}

// SendQuery implements [wander.Backend].
func (c *Client) SendQuery(ctx context.Context, token, sessionID, text string, maxPlaces int) (wander.Reply, error) {
	q := url.Values{
		"query":      {text},
		"max_places": {strconv.Itoa(maxPlaces)},
	}
	data, err := c.do(ctx, http.MethodPost, "/chat/query/"+sessionID, q, token, struct{}{})
	if err != nil {
		return wander.Reply{}, err
	}
	return wire.DecodeReply(data)
}

// GuestEntry implements [wander.Auth].
func (c *Client) GuestEntry(ctx context.Context) (wander.Identity, error) {
	data, err := c.do(ctx, http.MethodGet, "/user/guest", nil, "", nil)
	if err != nil {
		return wander.Identity{}, err
	}
	id, err := wire.DecodeIdentity(data)
	if err != nil {
		return wander.Identity{}, err
	}
	id.Guest = true
	return id, nil
}

// Login implements [wander.Auth].
func (c *Client) Login(ctx context.Context, email, password string) (wander.Identity, error) {
	body := map[string]string{"email": email, "password": password}
	data, err := c.do(ctx, http.MethodPost, "/user/login", nil, "", body)
	if err != nil {
		return wander.Identity{}, err
	}
	return wire.DecodeIdentity(data)
}

// Register implements [wander.Auth].
func (c *Client) Register(ctx context.Context, p wander.Profile) (string, error) {
	body := map[string]string{
		"first_name": p.FirstName,
		"last_name":  p.LastName,
		"email":      p.Email,
		"password":   p.Password,
	}
	data, err := c.do(ctx, http.MethodPost, "/user/signup", nil, "", body)
	if err != nil {
		return "", err
	}
	return wire.DecodeDetail(data)
}

// UpdateProfile implements [wander.Auth].
func (c *Client) UpdateProfile(ctx context.Context, token string, p wander.Profile) (string, error) {
	body := map[string]string{
		"first_name": p.FirstName,
		"last_name":  p.LastName,
		"email":      p.Email,
	}
	data, err := c.do(ctx, http.MethodPut, "/user/update", nil, token, body)
	if err != nil {
		return "", err
	}
	return wire.DecodeDetail(data)
}

// ForgotPassword implements [wander.Auth].
func (c *Client) ForgotPassword(ctx context.Context, email string) (string, error) {
	body := map[string]string{"email": email}
	data, err := c.do(ctx, http.MethodPost, "/user/forget", nil, "", body)
	if err != nil {
		return "", err
	}
	return wire.DecodeDetail(data)
}

// do issues one request and returns the raw response body. Non-2xx responses
// become errors carrying the backend's detail string when one is present.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, token string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%s %s: read body: %w", method, path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%s %s: %s", method, path, apiError(data, resp.Status))
	}
	return data, nil
}

// apiError prefers the backend's detail string over the bare HTTP status.
func apiError(body []byte, status string) string {
	if detail, err := wire.DecodeDetail(body); err == nil && detail != "" {
		return detail
	}
	return status
}
