// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
	"time"
)

// Common application errors.
var (
	// Settings store errors.
	ErrNotFound = errors.New("not found")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// TransportError indicates the request never produced an HTTP response
// (DNS failure, connection refused, timeout).
type TransportError struct {
	Err    error
	Method string
	URL    string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: transport failure: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// APIError indicates the server answered with a non-2xx status. Body carries
// the raw response text for upstream logging.
type APIError struct {
	Method string
	URL    string
	Body   string
	Status int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.URL, e.Status, e.Body)
}

// DecodeError indicates a successful response whose body does not match the
// expected shape.
type DecodeError struct {
	Err    error
	Method string
	URL    string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s %s: decoding response: %v", e.Method, e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// TimeoutError indicates a browser automation wait exceeded its ceiling.
type TimeoutError struct {
	Stage   string
	Ceiling time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timed out waiting for %s after %s", e.Stage, e.Ceiling)
}

// AutomationError indicates the browser or page reached an unexpected state.
type AutomationError struct {
	Err   error
	Stage string
}

func (e *AutomationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("automation failed during %s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("automation failed during %s", e.Stage)
}

func (e *AutomationError) Unwrap() error {
	return e.Err
}
