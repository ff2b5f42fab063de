// Package rest implements the typed gateways over the backend's REST
// contract.
//
// One Client carries the cross-cutting call behavior: bearer token
// attachment, the global 401 hook, error classification into the structured
// taxonomy, request pacing, a circuit breaker around the backend, and
// retry-with-backoff for idempotent reads. The per-resource gateways
// (AuthAPI, JobsAPI, ApplicationsAPI) stay thin on top of it.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/pakkurthi/jobquest-client/internal/errors"
	"github.com/pakkurthi/jobquest-client/internal/metrics"
	"github.com/pakkurthi/jobquest-client/internal/platform/retry"
)

const (
	defaultTimeout          = 10 * time.Second
	maxResponseBytes        = 4 << 20
	breakerFailureThreshold = 5
	breakerCooldown         = 15 * time.Second
)

// TokenSource supplies the bearer token for authenticated calls; it returns
// empty when the client is signed out.
type TokenSource func() string

// Client is the shared transport beneath the typed gateways.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	token         TokenSource
	onAuthInvalid func()
	limiter       *rate.Limiter
	breaker       *gobreaker.CircuitBreaker
	retryPolicy   retry.Policy
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTokenSource sets where bearer tokens come from.
func WithTokenSource(src TokenSource) Option {
	return func(c *Client) { c.token = src }
}

// WithAuthInvalidHook registers the global 401 handler. The hook fires for
// every authentication-invalid response, regardless of which call observed it.
func WithAuthInvalidHook(hook func()) Option {
	return func(c *Client) { c.onAuthInvalid = hook }
}

// WithRateLimit paces outgoing requests.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *Client) { c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst) }
}

// WithRetryPolicy overrides the read-retry policy.
func WithRetryPolicy(p retry.Policy) Option {
	return func(c *Client) { c.retryPolicy = p }
}

// NewClient creates a transport for the backend at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		httpClient:  &http.Client{Timeout: defaultTimeout},
		token:       func() string { return "" },
		limiter:     rate.NewLimiter(rate.Limit(8), 16),
		retryPolicy: retry.DefaultPolicy(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "jobquest-backend",
		Timeout: breakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerFailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.BackendBreakerStateChanges.WithLabelValues(to.String()).Inc()
			slog.Warn("Backend circuit breaker state changed", "from", from.String(), "to", to.String())
		},
	})
	return c
}

// get performs an idempotent read, retrying transient network failures.
func (c *Client) get(ctx context.Context, path, route string, out any) error {
	_, err := retry.Do(ctx, c.retryPolicy, errors.IsNetwork, func() (struct{}, error) {
		return struct{}{}, c.call(ctx, http.MethodGet, path, route, nil, out)
	})
	return err
}

// send performs a mutation. Mutations are never retried: the backend is the
// sole arbiter of whether the first attempt took effect.
func (c *Client) send(ctx context.Context, method, path, route string, body, out any) error {
	return c.call(ctx, method, path, route, body, out)
}

func (c *Client) call(ctx context.Context, method, path, route string, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return errors.NetworkError("request not sent", err)
	}

	start := time.Now()

	// Only network-class failures feed the breaker; a 400 from the backend is
	// a healthy backend.
	var appErr error
	_, execErr := c.breaker.Execute(func() (any, error) {
		err := c.roundTrip(ctx, method, path, body, out)
		if err != nil && !errors.IsNetwork(err) {
			appErr = err
			return nil, nil
		}
		return nil, err
	})

	metrics.BackendRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())

	err := appErr
	switch {
	case execErr == gobreaker.ErrOpenState, execErr == gobreaker.ErrTooManyRequests:
		err = errors.NetworkError("backend unavailable", execErr)
	case execErr != nil:
		err = execErr
	}

	status := "ok"
	if err != nil {
		status = string(errors.AsStructuredError(err).Type)
	}
	metrics.BackendRequests.WithLabelValues(route, status).Inc()

	return err
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.NetworkError("failed to encode request", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return errors.NetworkError("failed to create request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.NetworkError("request failed", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return errors.NetworkError("failed to read response", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		if c.onAuthInvalid != nil {
			c.onAuthInvalid()
		}
		return errors.AuthenticationError(backendMessage(data, "authentication required"))
	case resp.StatusCode == http.StatusBadRequest,
		resp.StatusCode == http.StatusForbidden,
		resp.StatusCode == http.StatusNotFound,
		resp.StatusCode == http.StatusConflict,
		resp.StatusCode == http.StatusUnprocessableEntity:
		return errors.ValidationError(backendMessage(data, "request rejected")).
			WithContext("status", resp.StatusCode)
	case resp.StatusCode >= 300:
		return errors.NetworkError(fmt.Sprintf("backend returned status %d", resp.StatusCode), nil)
	}

	if out != nil && len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return errors.NetworkError("failed to decode response", err)
		}
	}
	return nil
}

// backendMessage extracts the human-readable message the backend puts under
// "message" or "error", falling back when the body carries neither.
func backendMessage(data []byte, fallback string) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return fallback
}
