package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/aretw0/waitlist/internal/logging"
	"github.com/aretw0/waitlist/pkg/domain"
	"github.com/aretw0/waitlist/pkg/ports"
	"github.com/google/uuid"
)

// DefaultTimeout bounds a single submission when no http.Client is injected.
const DefaultTimeout = 15 * time.Second

// RequestIDHeader carries the per-submission correlation id.
const RequestIDHeader = "X-Request-ID"

// maxErrorBody caps how much of a failure response is decoded.
const maxErrorBody = 64 << 10

// Client submits registrations to the waitlist endpoint.
// It implements ports.RegistrationClient and makes exactly one attempt per call.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ ports.RegistrationClient = (*Client)(nil)

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout of the underlying http.Client.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			hc := *c.httpClient
			hc.Timeout = d
			c.httpClient = &hc
		}
	}
}

// WithClientLogger configures a logger for the Client.
func WithClientLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a Client posting to endpoint.
// An empty endpoint selects domain.DefaultEndpoint.
func NewClient(endpoint string, opts ...ClientOption) *Client {
	if endpoint == "" {
		endpoint = domain.DefaultEndpoint
	}
	c := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the configured endpoint.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Submit posts r as JSON and returns it unchanged on a 2xx response.
//
// A non-2xx response whose body carries an errorMessage yields a server message
// error. Any other failure is a network failure, except when ctx is cancelled,
// in which case ctx.Err() is returned.
func (c *Client) Submit(ctx context.Context, r domain.Registration) (domain.Registration, error) {
	target, err := parseEndpoint(c.endpoint)
	if err != nil {
		return domain.Registration{}, domain.InternalFailure(err)
	}

	body, err := json.Marshal(r)
	if err != nil {
		return domain.Registration{}, domain.InternalFailure(fmt.Errorf("failed to encode registration: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target.String(), bytes.NewReader(body))
	if err != nil {
		return domain.Registration{}, domain.InternalFailure(fmt.Errorf("failed to create request: %w", err))
	}

	requestID, ok := domain.RequestIDFromContext(ctx)
	if !ok {
		requestID = uuid.NewString()
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(RequestIDHeader, requestID)

	c.logger.Debug("submitting registration", "request_id", requestID, "email", r.Email, "endpoint", target.Host)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return domain.Registration{}, ctxErr
		}
		c.logger.Warn("registration request failed", "request_id", requestID, "error", err)
		return domain.Registration{}, domain.NetworkFailure(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		c.logger.Info("registration accepted", "request_id", requestID, "status", resp.StatusCode)
		return r, nil
	}

	c.logger.Warn("registration rejected", "request_id", requestID, "status", resp.StatusCode)
	return domain.Registration{}, decodeFailure(resp)
}

func decodeFailure(resp *http.Response) error {
	var failure domain.FailureBody
	err := json.NewDecoder(io.LimitReader(resp.Body, maxErrorBody)).Decode(&failure)
	if err == nil && failure.ErrorMessage != nil {
		return domain.ServerMessage(*failure.ErrorMessage)
	}
	return domain.NetworkFailure(fmt.Errorf("unexpected status %d", resp.StatusCode))
}

var errInvalidEndpoint = errors.New("invalid endpoint")

func parseEndpoint(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidEndpoint, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q needs a scheme and host", errInvalidEndpoint, raw)
	}
	return u, nil
}
