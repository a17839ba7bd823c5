// Package pushnotifications is the client for the push-notifications publishing API.
//
// A Client validates targeting lists and payloads, sends one signed HTTP request
// per call, and turns the response into a typed result or a typed error. It also
// issues the JWTs devices use to authenticate as a user.
//
// A Client holds no per-call state and is safe for concurrent use as long as the
// HTTPDoer it was given is.
package pushnotifications

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tinywideclouds/go-push-notifications/pkg/push"
	"github.com/tinywideclouds/go-push-notifications/pkg/validate"
	"github.com/tinywideclouds/go-push-notifications/pushnotifications/config"
)

const (
	// LibraryName and LibraryVersion are sent in the X-Pusher-Library header.
	LibraryName    = "pusher-push-notifications-go"
	LibraryVersion = "1.0.0"

	libraryHeader = "X-Pusher-Library"

	// MaxResponseBytes caps how much of a response body is read. Longer bodies
	// are truncated and then fail to decode.
	MaxResponseBytes = 1 << 20
)

// HTTPDoer is the transport the client sends requests through.
// *http.Client satisfies it.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

var _ push.Publisher = (*Client)(nil)

type Client struct {
	instanceID string
	secretKey  string
	endpoint   string
	httpClient HTTPDoer
	logger     *slog.Logger
	now        func() time.Time
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default transport. Timeouts, retries at the
// socket level and TLS settings are all the transport's business.
func WithHTTPClient(doer HTTPDoer) Option {
	return func(c *Client) {
		if doer != nil {
			c.httpClient = doer
		}
	}
}

// WithLogger sets the logger used for request tracing at Debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock sets the time source used for token expiry.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// New validates cfg and creates a Client. The configuration is copied and
// never changes afterwards.
func New(cfg *config.Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, &ConfigurationError{Err: &validate.Error{
			Kind:     validate.WrongType,
			Field:    "config",
			Index:    -1,
			Expected: "provided",
		}}
	}
	resolved, err := cfg.Validate()
	if err != nil {
		return nil, &ConfigurationError{Err: err}
	}

	c := &Client{
		instanceID: resolved.InstanceID,
		secretKey:  resolved.SecretKey,
		endpoint:   strings.TrimSuffix(resolved.Endpoint, "/"),
		httpClient: &http.Client{},
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "PushNotificationsClient", "instance_id", c.instanceID)
	return c, nil
}

// InstanceID returns the instance every request is scoped to.
func (c *Client) InstanceID() string { return c.instanceID }

// Endpoint returns the effective base URL, without a trailing slash.
func (c *Client) Endpoint() string { return c.endpoint }

// do sends one request and returns the response body of a successful call.
// Any status of 400 or above is turned into an *APIError or *UnexpectedResponseError.
func (c *Client) do(ctx context.Context, method, path string, body any) (int, []byte, error) {
	var reader io.Reader = http.NoBody
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, reader)
	if err != nil {
		return 0, nil, &TransportError{Method: method, Path: path, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set(libraryHeader, LibraryName+" "+LibraryVersion)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	reqLogger := c.logger.With("request_id", uuid.NewString(), "method", method, "path", path)
	reqLogger.Debug("Sending request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, &TransportError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseBytes))
	if err != nil {
		return resp.StatusCode, nil, &TransportError{Method: method, Path: path, Err: err}
	}
	reqLogger.Debug("Response received", "status", resp.StatusCode, "bytes", len(respBody))

	if resp.StatusCode >= http.StatusBadRequest {
		return resp.StatusCode, respBody, decodeErrorResponse(resp.StatusCode, respBody)
	}
	return resp.StatusCode, respBody, nil
}

// decodeErrorResponse turns a failed response into an *APIError when the body
// carries both an error type and a description.
func decodeErrorResponse(status int, body []byte) error {
	var parsed struct {
		Error       *string `json:"error"`
		Description *string `json:"description"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return &UnexpectedResponseError{StatusCode: status, Body: body, Err: err}
	}
	if parsed.Error == nil || parsed.Description == nil {
		return &UnexpectedResponseError{
			StatusCode: status,
			Body:       body,
			Err:        errors.New("error body is missing 'error' or 'description'"),
		}
	}
	return &APIError{StatusCode: status, Type: *parsed.Error, Description: *parsed.Description}
}
