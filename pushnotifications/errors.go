package pushnotifications

import (
	"errors"
	"fmt"
)

// ErrUnexpectedServerResponse matches every *UnexpectedResponseError.
var ErrUnexpectedServerResponse = errors.New("an unexpected server error has occurred")

// ConfigurationError reports an invalid client configuration. Err is the
// underlying *validate.Error.
type ConfigurationError struct {
	Err error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid client configuration: %v", e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// APIError is a structured error returned by the service.
type APIError struct {
	StatusCode  int
	Type        string `json:"error"`
	Description string `json:"description"`
}

// Error returns "{type}: {description}", exactly as the service sent them.
func (e *APIError) Error() string {
	return e.Type + ": " + e.Description
}

// UnexpectedResponseError reports a response body that could not be decoded
// into the shape its status promised.
type UnexpectedResponseError struct {
	StatusCode int
	Body       []byte
	Err        error
}

func (e *UnexpectedResponseError) Error() string {
	return fmt.Sprintf("%s (status %d)", ErrUnexpectedServerResponse, e.StatusCode)
}

func (e *UnexpectedResponseError) Unwrap() error { return e.Err }

func (e *UnexpectedResponseError) Is(target error) bool {
	return target == ErrUnexpectedServerResponse
}

// TransportError wraps a failure of the HTTP transport itself.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: transport failed: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
