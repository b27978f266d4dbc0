// Package errors provides custom error types for the kiosk feed client.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	ErrMissingChat     = errors.New("missing 'chat' parameter")
	ErrInvalidResponse = errors.New("invalid response format")
	ErrFetchFailed     = errors.New("feed fetch failed")
)

// ConfigError represents a configuration problem that prevents the display from fetching
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("configuration error: %s", e.Message)
	}
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Message)
}

// Is allows comparison with sentinel errors
func (e *ConfigError) Is(target error) bool {
	if target == ErrMissingChat {
		return e.Field == "chat"
	}
	_, ok := target.(*ConfigError)
	return ok
}

// NewConfigError creates a new ConfigError
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{Field: field, Message: message}
}

// NewMissingChatError creates the error reported when no channel id was given
func NewMissingChatError() *ConfigError {
	return NewConfigError("chat", "channel identifier is required")
}

// FeedError represents a non-2xx answer from the feed endpoint
type FeedError struct {
	HTTPStatus int
	Endpoint   string
	Message    string
	Body       string
}

func (e *FeedError) Error() string {
	if e.HTTPStatus > 0 {
		return fmt.Sprintf("feed error [%d] at %s: %s", e.HTTPStatus, e.Endpoint, e.Message)
	}
	return fmt.Sprintf("feed error at %s: %s", e.Endpoint, e.Message)
}

// Is allows comparison with sentinel errors
func (e *FeedError) Is(target error) bool {
	if target == ErrFetchFailed {
		return true
	}
	_, ok := target.(*FeedError)
	return ok
}

// WithBody attaches a truncated response body for diagnostics
func (e *FeedError) WithBody(body string) *FeedError {
	const maxBody = 512
	if len(body) > maxBody {
		body = body[:maxBody] + "..."
	}
	e.Body = body
	return e
}

// NewFeedError creates a new FeedError
func NewFeedError(status int, endpoint, message string) *FeedError {
	return &FeedError{
		HTTPStatus: status,
		Endpoint:   endpoint,
		Message:    message,
	}
}

// NetworkError represents a transport failure before any response was read
type NetworkError struct {
	Operation string
	Endpoint  string
	Cause     error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error during %s (%s): %v", e.Operation, e.Endpoint, e.Cause)
}

func (e *NetworkError) Unwrap() error {
	return e.Cause
}

// Is allows comparison with sentinel errors
func (e *NetworkError) Is(target error) bool {
	return target == ErrFetchFailed
}

// NewNetworkError creates a new NetworkError
func NewNetworkError(operation, endpoint string, cause error) *NetworkError {
	return &NetworkError{Operation: operation, Endpoint: endpoint, Cause: cause}
}

// TimeoutError represents a request timeout
type TimeoutError struct {
	Endpoint string
	Message  string
}

func (e *TimeoutError) Error() string {
	if e.Message == "" {
		return "request timed out"
	}
	return fmt.Sprintf("request timed out: %s", e.Message)
}

// Is allows comparison with sentinel errors
func (e *TimeoutError) Is(target error) bool {
	return target == ErrFetchFailed
}

// NewTimeoutError creates a new TimeoutError
func NewTimeoutError(endpoint, message string) *TimeoutError {
	return &TimeoutError{Endpoint: endpoint, Message: message}
}

// ParseError represents a response parsing error
type ParseError struct {
	Message string
	Path    string
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("parse error: %s", e.Message)
	}
	return fmt.Sprintf("parse error at %s: %s", e.Path, e.Message)
}

// Is allows comparison with sentinel errors
func (e *ParseError) Is(target error) bool {
	if target == ErrInvalidResponse || target == ErrFetchFailed {
		return true
	}
	_, ok := target.(*ParseError)
	return ok
}

// NewParseError creates a new ParseError
func NewParseError(message, path string) *ParseError {
	return &ParseError{Message: message, Path: path}
}

// GetHTTPStatus returns the HTTP status carried by err, or 0
func GetHTTPStatus(err error) int {
	var feedErr *FeedError
	if errors.As(err, &feedErr) {
		return feedErr.HTTPStatus
	}
	return 0
}

// IsConfigError reports whether err is a configuration error
func IsConfigError(err error) bool {
	var cfgErr *ConfigError
	return errors.As(err, &cfgErr)
}

// IsMissingChat reports whether err is about the absent channel id
func IsMissingChat(err error) bool {
	return errors.Is(err, ErrMissingChat)
}

// IsNetworkError reports whether err is a transport failure
func IsNetworkError(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

// IsTimeoutError reports whether err is a request timeout
func IsTimeoutError(err error) bool {
	var timeoutErr *TimeoutError
	return errors.As(err, &timeoutErr)
}

// IsParseError reports whether err is a malformed-body error
func IsParseError(err error) bool {
	var parseErr *ParseError
	return errors.As(err, &parseErr)
}

// IsTransient reports whether err should be retried on the next scheduled poll
func IsTransient(err error) bool {
	return errors.Is(err, ErrFetchFailed)
}
