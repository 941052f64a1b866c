// Package api implements the remote data client for the Helios9 backend.
//
// The backend is a hosted Postgres REST API (PostgREST conventions):
// list endpoints take filter/order/limit query parameters and return a
// JSON array; create/update endpoints return the affected rows when asked
// to with a Prefer header. Every request the client issues carries the
// authenticated caller's workspace scope — callers cannot bypass scoping
// by omitting an id, because the scope is appended here and nowhere else.
//
// Failures are mapped into a small taxonomy (see errors.go). The client
// never retries; retry policy belongs to the caller where it stays visible.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout   = 15 * time.Second
	defaultRateLimit = 20 // requests per second
	defaultRateBurst = 40
	maxErrorBody     = 4 << 10
)

// ScopeSource supplies the current caller identity. The auth gate
// implements it; the client fails closed when no scope is available yet.
type ScopeSource interface {
	Scope() (Scope, bool)
}

// Client is the typed wrapper over the backend REST API.
type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
	limiter *rate.Limiter
	scopes  ScopeSource
	log     *slog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client (tests).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpc = h }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpc.Timeout = d }
}

// WithRateLimit overrides the outbound token-bucket limits.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *Client) { c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst) }
}

// WithLogger sets the structured logger (stderr by default).
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// NewClient creates a client for the backend at baseURL authenticating
// with apiKey. The scope source is bound after construction because the
// auth gate needs the client for credential verification.
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpc:   &http.Client{Timeout: defaultTimeout},
		limiter: rate.NewLimiter(rate.Limit(defaultRateLimit), defaultRateBurst),
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetScopeSource binds the identity provider. Must be called before any
// entity method; requests without a scope fail closed as Unauthorized.
func (c *Client) SetScopeSource(s ScopeSource) {
	c.scopes = s
}

// VerifyCredential asks the backend to resolve a credential into an
// identity. Used by the auth gate for generic (non service-prefixed)
// keys; it deliberately does not require a scope.
func (c *Client) VerifyCredential(ctx context.Context, credential string) (Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return Identity{}, &Error{Kind: KindUnknown, Message: "building verification request", Detail: err.Error()}
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+credential)
	req.Header.Set("X-Request-Id", uuid.NewString())

	if err := c.limiter.Wait(ctx); err != nil {
		return Identity{}, &Error{Kind: KindRemoteFailure, Message: "request cancelled while rate limited", Detail: err.Error()}
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return Identity{}, &Error{Kind: KindRemoteFailure, Message: "backend unreachable", Detail: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return Identity{}, classifyStatus(resp.StatusCode, string(body))
	}

	var id Identity
	if err := json.NewDecoder(resp.Body).Decode(&id); err != nil {
		return Identity{}, &Error{Kind: KindUnknown, Message: "malformed identity response", Detail: err.Error()}
	}
	if id.ID == "" {
		return Identity{}, &Error{Kind: KindUnauthorized, Message: "backend returned no identity for credential"}
	}
	return id, nil
}

// scope returns the current caller scope or an Unauthorized error.
func (c *Client) scope() (Scope, error) {
	if c.scopes == nil {
		return Scope{}, NewError(KindUnauthorized, "no identity bound to client")
	}
	s, ok := c.scopes.Scope()
	if !ok {
		return Scope{}, NewError(KindUnauthorized, "not authenticated")
	}
	return s, nil
}

// scopedQuery builds the query string for a list/get call, always
// carrying the workspace filter. extra filters come from the caller.
func scopedQuery(s Scope, extra url.Values, opts ListOptions) url.Values {
	q := url.Values{}
	q.Set("workspace_id", "eq."+s.WorkspaceID)
	for k, vs := range extra {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	if opts.OrderBy != "" {
		dir := ".asc"
		if opts.Descending {
			dir = ".desc"
		}
		q.Set("order", opts.OrderBy+dir)
	}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Offset > 0 {
		q.Set("offset", strconv.Itoa(opts.Offset))
	}
	return q
}

// do issues one request and decodes a JSON response into out (may be nil).
func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return &Error{Kind: KindUnknown, Message: "encoding request payload", Detail: err.Error()}
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return &Error{Kind: KindUnknown, Message: "building request", Detail: err.Error()}
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Prefer", "return=representation")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return &Error{Kind: KindRemoteFailure, Message: "request cancelled while rate limited", Detail: err.Error()}
	}

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		return &Error{Kind: KindRemoteFailure, Message: "backend unreachable", Detail: err.Error()}
	}
	defer resp.Body.Close()

	c.log.Debug("backend call",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return classifyStatus(resp.StatusCode, string(raw))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Kind: KindUnknown, Message: "malformed backend response", Detail: err.Error()}
	}
	return nil
}

// getOne fetches a single scoped row by id. An empty result array is a
// NotFound — PostgREST returns 200 with [] for a missing id.
func getOne[T any](ctx context.Context, c *Client, table, id string) (T, error) {
	var zero T
	s, err := c.scope()
	if err != nil {
		return zero, err
	}
	q := scopedQuery(s, url.Values{"id": {"eq." + id}}, ListOptions{Limit: 1})
	var rows []T
	if err := c.do(ctx, http.MethodGet, "/rest/v1/"+table, q, nil, &rows); err != nil {
		return zero, err
	}
	if len(rows) == 0 {
		return zero, NewError(KindNotFound, fmt.Sprintf("%s %s not found", entityName(table), id))
	}
	return rows[0], nil
}

// listRows fetches scoped rows matching the extra filters.
func listRows[T any](ctx context.Context, c *Client, table string, extra url.Values, opts ListOptions) ([]T, error) {
	s, err := c.scope()
	if err != nil {
		return nil, err
	}
	var rows []T
	if err := c.do(ctx, http.MethodGet, "/rest/v1/"+table, scopedQuery(s, extra, opts), nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// createRow inserts one row. The scope fields are stamped here, after the
// caller payload, so a spoofed workspace_id or created_by never survives.
func createRow[T any](ctx context.Context, c *Client, table string, payload map[string]any) (T, error) {
	var zero T
	s, err := c.scope()
	if err != nil {
		return zero, err
	}
	payload["workspace_id"] = s.WorkspaceID
	payload["created_by"] = s.SubjectID

	var rows []T
	if err := c.do(ctx, http.MethodPost, "/rest/v1/"+table, nil, payload, &rows); err != nil {
		return zero, err
	}
	if len(rows) == 0 {
		return zero, &Error{Kind: KindUnknown, Message: "backend returned no row for insert"}
	}
	return rows[0], nil
}

// updateRow patches one scoped row by id. Scope is a filter, not a
// payload field, so a row outside the caller's workspace is a NotFound.
func updateRow[T any](ctx context.Context, c *Client, table, id string, payload map[string]any) (T, error) {
	var zero T
	s, err := c.scope()
	if err != nil {
		return zero, err
	}
	delete(payload, "workspace_id")
	delete(payload, "created_by")
	q := scopedQuery(s, url.Values{"id": {"eq." + id}}, ListOptions{})

	var rows []T
	if err := c.do(ctx, http.MethodPatch, "/rest/v1/"+table, q, payload, &rows); err != nil {
		return zero, err
	}
	if len(rows) == 0 {
		return zero, NewError(KindNotFound, fmt.Sprintf("%s %s not found", entityName(table), id))
	}
	return rows[0], nil
}

// deleteRow removes one scoped row by id.
func (c *Client) deleteRow(ctx context.Context, table, id string) error {
	s, err := c.scope()
	if err != nil {
		return err
	}
	q := scopedQuery(s, url.Values{"id": {"eq." + id}}, ListOptions{})
	return c.do(ctx, http.MethodDelete, "/rest/v1/"+table, q, nil, nil)
}

// entityName maps a table to the singular name used in error messages.
func entityName(table string) string {
	switch table {
	case "projects":
		return "project"
	case "initiatives":
		return "initiative"
	case "tasks":
		return "task"
	case "documents":
		return "document"
	case "milestones":
		return "milestone"
	case "ai_conversations":
		return "conversation"
	}
	return table
}
