// Package apiclient is the request pipeline: every call to the remote
// booking API goes through Client.Do, which attaches the bearer credential
// on the way out and normalizes failures into *domain.APIError on the way
// back.
//
// The only side effect the pipeline performs on its own is dropping the
// credential when the API answers 401; everything else is classification,
// left for the session store and the views to act on.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aura-home/aura-client/internal/api/metrics"
	"github.com/aura-home/aura-client/internal/core/domain"
	"github.com/aura-home/aura-client/internal/core/ports"
)

const (
	defaultTimeout = 15 * time.Second
	maxBodyBytes   = 4 << 20

	HeaderRequestID = "X-Request-ID"
)

// Client implements ports.Requester.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	creds   ports.CredentialStore
	log     zerolog.Logger
	newID   func() string

	mu             sync.RWMutex
	onUnauthorized []ports.UnauthorizedHandler
}

type Option func(*Client)

// WithHTTPClient replaces the underlying transport. Its Timeout is kept as
// is.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithRequestIDs overrides the X-Request-ID generator.
func WithRequestIDs(gen func() string) Option {
	return func(c *Client) {
		if gen != nil {
			c.newID = gen
		}
	}
}

// New builds a pipeline for baseURL. A non-positive timeout falls back to
// 15s; every call is bounded by it.
func New(baseURL string, timeout time.Duration, creds ports.CredentialStore, log zerolog.Logger, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("apiclient: parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("apiclient: base url %q must be absolute", baseURL)
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	c := &Client{
		baseURL: u,
		http:    &http.Client{Timeout: timeout},
		creds:   creds,
		log:     log,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string { return c.baseURL.String() }

// OnUnauthorized registers h to run after every 401, once the credential
// has been cleared. Handlers run synchronously on the failing call's
// goroutine, in registration order.
func (c *Client) OnUnauthorized(h ports.UnauthorizedHandler) {
	if h == nil {
		return
	}
	c.mu.Lock()
	c.onUnauthorized = append(c.onUnauthorized, h)
	c.mu.Unlock()
}

// Do sends req and decodes a successful JSON payload into out (which may be
// nil). Failures are returned, never swallowed or retried.
func (c *Client) Do(ctx context.Context, req ports.Request, out any) error {
	start := time.Now()
	err := c.do(ctx, req, out)

	outcome := "ok"
	if apiErr, ok := domain.AsAPIError(err); ok {
		outcome = string(apiErr.Kind)
	} else if err != nil {
		outcome = "malformed"
	}
	metrics.APIRequestsTotal.WithLabelValues(req.Method, outcome).Inc()
	metrics.APIRequestDuration.WithLabelValues(req.Method).Observe(time.Since(start).Seconds())

	return err
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, ports.Request{Method: http.MethodGet, Path: path, Query: query}, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, ports.Request{Method: http.MethodPost, Path: path, Body: body}, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, ports.Request{Method: http.MethodPut, Path: path, Body: body}, out)
}

func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, ports.Request{Method: http.MethodPatch, Path: path, Body: body}, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, ports.Request{Method: http.MethodDelete, Path: path}, nil)
}

func (c *Client) do(ctx context.Context, req ports.Request, out any) error {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if req.Body != nil {
		raw, err := json.Marshal(req.Body)
		if err != nil {
			return fmt.Errorf("%w: encode %s %s: %v", domain.ErrMalformedResponse, method, req.Path, err)
		}
		body = bytes.NewReader(raw)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.resolve(req), body)
	if err != nil {
		return fmt.Errorf("apiclient: build %s %s: %w", method, req.Path, err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	requestID := c.newID()
	httpReq.Header.Set(HeaderRequestID, requestID)

	// Public endpoints are called without a credential.
	if cred, ok := c.creds.Get(ctx); ok {
		httpReq.Header.Set("Authorization", "Bearer "+cred.AccessToken)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		apiErr := domain.NewNetworkError(req.Path, err)
		c.log.Warn().Err(err).
			Str("method", method).
			Str("path", req.Path).
			Str("request_id", requestID).
			Msg("api call got no response")
		return apiErr
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return domain.NewNetworkError(req.Path, err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil || len(bytes.TrimSpace(raw)) == 0 {
			return nil
		}
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("%w: decode %s %s: %v", domain.ErrMalformedResponse, method, req.Path, err)
		}
		return nil
	}

	apiErr := parseFailure(resp.StatusCode, req.Path, raw)
	c.log.Debug().
		Str("method", method).
		Str("path", req.Path).
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Str("kind", string(apiErr.Kind)).
		Msg("api call failed")

	if apiErr.Kind == domain.KindUnauthenticated {
		c.invalidate(ctx, apiErr)
	}
	return apiErr
}

// invalidate clears the credential exactly once for this failure and then
// tells every registered handler.
func (c *Client) invalidate(ctx context.Context, apiErr *domain.APIError) {
	if err := c.creds.Clear(ctx); err != nil {
		c.log.Error().Err(err).Str("path", apiErr.Path).Msg("clearing credential after 401 failed")
	}
	metrics.CredentialInvalidationsTotal.Inc()

	c.mu.RLock()
	handlers := make([]ports.UnauthorizedHandler, len(c.onUnauthorized))
	copy(handlers, c.onUnauthorized)
	c.mu.RUnlock()

	for _, h := range handlers {
		h(ctx, apiErr)
	}
}

func (c *Client) resolve(req ports.Request) string {
	u := c.baseURL.JoinPath(req.Path)
	if len(req.Query) > 0 {
		u.RawQuery = req.Query.Encode()
	}
	return u.String()
}

// errorBody covers the usual Spring error envelope and the bare
// {"error": "..."} shape.
type errorBody struct {
	Message   string `json:"message"`
	Error     string `json:"error"`
	Timestamp any    `json:"timestamp"`
}

func parseFailure(status int, path string, raw []byte) *domain.APIError {
	var eb errorBody
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &eb)
	}

	msg := eb.Message
	if msg == "" {
		msg = eb.Error
	}
	ts, _ := eb.Timestamp.(string)

	return domain.NewAPIError(status, msg, path, ts)
}
