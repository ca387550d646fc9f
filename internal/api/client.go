// Package api implements the authenticated request pipeline against the
// Guess-Who server: credential injection from the session store, transparent
// one-shot session refresh on expiry, and typed error normalization.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/guesswho-dev/guesswho/internal/models"
	"github.com/guesswho-dev/guesswho/internal/report"
	"github.com/guesswho-dev/guesswho/internal/session"
)

// AuthMode selects which credential a request carries.
type AuthMode string

const (
	// AuthNone attaches no credential.
	AuthNone AuthMode = "none"
	// AuthUser attaches the signed-in user's access token when present.
	AuthUser AuthMode = "user"
	// AuthPlayer attaches the player token for the request's room: the
	// user's access token when signed in, otherwise the room's guest token.
	AuthPlayer AuthMode = "player"
)

// RequestOptions describes one API call. The zero value is a GET with user
// auth and no body.
type RequestOptions struct {
	Method string // defaults to GET
	Body   []byte
	Header http.Header
	Auth   AuthMode // defaults to AuthUser
	RoomID string   // required for AuthPlayer lookups against guest tokens
}

// Client executes calls against the Guess-Who API. It is safe for concurrent
// use; overlapping calls that both hit an expired token coalesce into a
// single refresh.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *session.Store
	reporter   report.Reporter
	log        zerolog.Logger
	validate   *validator.Validate

	refreshMu sync.Mutex
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client (used by tests and for
// custom TLS setups).
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

// WithReporter wires the error-reporting collaborator.
func WithReporter(r report.Reporter) Option {
	return func(c *Client) { c.reporter = r }
}

// WithLogger sets the pipeline logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New creates an API client rooted at baseURL, reading and writing
// credentials through store. The HTTP client keeps a cookie jar so the
// server's same-site session cookie rides along with every call, which is
// what makes the unauthenticated refresh endpoint work.
func New(baseURL string, store *session.Store, opts ...Option) *Client {
	jar, _ := cookiejar.New(nil)
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Jar:     jar,
		},
		session:  store,
		reporter: report.Nop{},
		log:      zerolog.Nop(),
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session exposes the session store backing this client.
func (c *Client) Session() *session.Store { return c.session }

// authorizationToken resolves the bearer token for an auth mode. Empty
// string means the request goes out without a credential.
func (c *Client) authorizationToken(auth AuthMode, roomID string) string {
	switch auth {
	case AuthNone:
		return ""
	case AuthPlayer:
		return c.session.PlayerToken(roomID)
	default:
		return c.session.GetState().AccessToken
	}
}

// send performs a single network attempt. The credential is resolved fresh
// on every call so a retry after refresh picks up the new token.
func (c *Client) send(ctx context.Context, path string, opts RequestOptions) (int, []byte, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if len(opts.Body) > 0 {
		body = bytes.NewReader(opts.Body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	for key, values := range opts.Header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	// Non-empty bodies default to JSON unless the caller set a content type
	// (multipart uploads set their own and must not be overridden).
	if len(opts.Body) > 0 && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	auth := opts.Auth
	if auth == "" {
		auth = AuthUser
	}
	if token := c.authorizationToken(auth, opts.RoomID); token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response: %w", err)
	}
	return resp.StatusCode, respBody, nil
}

// do runs the full pipeline for one logical call: send, refresh the session
// on a 401 under user auth, resend at most once, then normalize the outcome.
// A successful call returns the raw response body (nil for 204 or an empty
// body); a failed call returns a *Error.
func (c *Client) do(ctx context.Context, path string, opts RequestOptions) ([]byte, error) {
	auth := opts.Auth
	if auth == "" {
		auth = AuthUser
	}
	requestID := ulid.Make().String()
	log := c.log.With().
		Str("request_id", requestID).
		Str("path", path).
		Logger()

	status, body, err := c.send(ctx, path, opts)
	if err != nil {
		return nil, err
	}

	// Expired user credentials get exactly one refresh-and-resend. Guest and
	// anonymous credentials have no refresh concept; their 401s surface
	// immediately. A second 401 after a successful refresh falls through to
	// the error path below, never into another refresh.
	if status == http.StatusUnauthorized && auth == AuthUser {
		log.Debug().Msg("access token rejected, attempting session refresh")
		if refreshErr := c.refreshSession(ctx); refreshErr == nil {
			status, body, err = c.send(ctx, path, opts)
			if err != nil {
				return nil, err
			}
		} else {
			log.Debug().Err(refreshErr).Msg("session refresh failed, clearing user session")
			c.session.ClearUserSession()
		}
	}

	if status >= 200 && status < 300 {
		if status == http.StatusNoContent || len(body) == 0 {
			return nil, nil
		}
		return body, nil
	}

	apiErr := newError(status, body)
	c.reporter.RequestFailed(path, apiErr.Status, apiErr.Code, apiErr.Message)
	return nil, apiErr
}

// sessionPayload is the server's shape for login, callback and refresh
// responses.
type sessionPayload struct {
	AccessToken string       `json:"accessToken"`
	User        *models.User `json:"user"`
}

// refreshSession calls the cookie-authenticated refresh endpoint and stores
// the new credentials on success. It never mutates the session on failure;
// the caller decides whether to clear it. Concurrent callers coalesce: if
// another call already rotated the token while we waited on the lock, the
// refresh is considered done.
func (c *Client) refreshSession(ctx context.Context) error {
	before := c.session.GetState().AccessToken

	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	if current := c.session.GetState().AccessToken; current != "" && current != before {
		return nil
	}

	status, body, err := c.send(ctx, "/auth/refresh", RequestOptions{
		Method: http.MethodPost,
		Auth:   AuthNone,
	})
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		return fmt.Errorf("refresh failed with status %d", status)
	}

	var payload sessionPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return fmt.Errorf("failed to decode refresh response: %w", err)
	}
	c.session.SetSession(payload.AccessToken, payload.User)
	return nil
}

// doJSON runs the pipeline and decodes a JSON response into out. A 204 or
// empty body leaves out untouched.
func (c *Client) doJSON(ctx context.Context, path string, opts RequestOptions, out any) error {
	body, err := c.do(ctx, path, opts)
	if err != nil {
		return err
	}
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// jsonBody marshals a request payload.
func jsonBody(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	return data, nil
}

// listQuery builds the query string for cursor-paginated list endpoints.
// The cursor parameter is appended only when a cursor exists and is
// percent-encoded with %20 for spaces, matching the server contract.
func listQuery(limit int, cursor string) string {
	q := fmt.Sprintf("limit=%d", limit)
	if cursor != "" {
		q += "&cursor=" + encodeCursor(cursor)
	}
	return q
}

func encodeCursor(cursor string) string {
	return strings.ReplaceAll(url.QueryEscape(cursor), "+", "%20")
}
