package upstream

import (
	"errors"
	"fmt"
)

// Failure causes for upstream calls
var (
	ErrRequestFailed    = errors.New("request failed")
	ErrUnexpectedStatus = errors.New("unexpected status")
	ErrInvalidJSON      = errors.New("invalid JSON body")
)

// Error represents a failed upstream call with the endpoint it targeted
type Error struct {
	Endpoint   string // Endpoint path, e.g. "/products"
	StatusCode int    // HTTP status, zero when no response was received
	Err        error  // Underlying error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("upstream %s returned %d: %v", e.Endpoint, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("upstream %s: %v", e.Endpoint, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new upstream Error
func NewError(endpoint string, statusCode int, err error) *Error {
	return &Error{
		Endpoint:   endpoint,
		StatusCode: statusCode,
		Err:        err,
	}
}

// EndpointOf returns the endpoint a failure belongs to, or "" for non-upstream errors
func EndpointOf(err error) string {
	var upstreamErr *Error
	if errors.As(err, &upstreamErr) {
		return upstreamErr.Endpoint
	}
	return ""
}

// StatusCodeOf returns the upstream HTTP status carried by err, or zero
func StatusCodeOf(err error) int {
	var upstreamErr *Error
	if errors.As(err, &upstreamErr) {
		return upstreamErr.StatusCode
	}
	return 0
}
