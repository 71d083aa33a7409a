// Package apierrors provides the shared error taxonomy for the Supp client.
//
// Every failed API call surfaces as exactly one *APIError carrying the HTTP
// status, a stable machine-readable Code suitable for programmatic branching,
// and a human message, or as a *NetworkError when no HTTP response was
// received at all. Errors are constructed once, never mutated, and never
// retried further once returned to the caller.
package apierrors

import (
	"errors"
	"fmt"
)

// Stable error codes carried by APIError.Code.
const (
	CodeValidation          = "VALIDATION_ERROR"
	CodeAuthentication      = "AUTHENTICATION_ERROR"
	CodeInsufficientBalance = "INSUFFICIENT_BALANCE"
	CodeForbidden           = "FORBIDDEN"
	CodeNotFound            = "NOT_FOUND"
	CodeRateLimit           = "RATE_LIMIT_EXCEEDED"
	CodeTimeout             = "TIMEOUT"
	CodeAPIError            = "API_ERROR"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrMissingAPIKey is returned when no API key is provided.
	ErrMissingAPIKey = errors.New("API key is required")

	// ErrClientClosed is returned when operations are attempted on a closed client.
	ErrClientClosed = errors.New("client has been closed")

	// ErrValidation is returned when the server rejects the request payload.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthorized is returned when the API key is invalid or expired.
	ErrUnauthorized = errors.New("invalid or missing API key")

	// ErrInsufficientBalance is returned when the workspace has run out of credits.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrForbidden is returned when the API key lacks the required permission.
	ErrForbidden = errors.New("insufficient permissions")

	// ErrNotFound is returned when the requested resource does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrRateLimited is returned when the rate limit or spend cap is exceeded.
	ErrRateLimited = errors.New("rate limit or spend cap exceeded")

	// ErrTimeout is returned when a request attempt exceeded its deadline.
	ErrTimeout = errors.New("request timed out")
)

// APIError represents a terminal failure from the Supp API.
type APIError struct {
	// StatusCode is the HTTP status of the failing response. Timeouts carry
	// 408 by convention; NetworkError covers failures with no status at all.
	StatusCode int
	// Code is a stable machine-readable string, e.g. "VALIDATION_ERROR".
	Code string
	// Message is the human-readable description, taken from the response
	// body's "error" field when present.
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("supp: %s (%d %s)", e.Message, e.StatusCode, e.Code)
	}
	return fmt.Sprintf("supp: API error %d %s", e.StatusCode, e.Code)
}

// Is implements errors.Is for sentinel error matching.
func (e *APIError) Is(target error) bool {
	switch e.Code {
	case CodeValidation:
		return target == ErrValidation
	case CodeAuthentication:
		return target == ErrUnauthorized
	case CodeInsufficientBalance:
		return target == ErrInsufficientBalance
	case CodeForbidden:
		return target == ErrForbidden
	case CodeNotFound:
		return target == ErrNotFound
	case CodeRateLimit:
		return target == ErrRateLimited
	case CodeTimeout:
		return target == ErrTimeout
	}
	return false
}

// fromStatus maps a terminal HTTP status to {code, default message}.
// Anything unrecognized is a generic API_ERROR.
func fromStatus(status int) (code, defaultMsg string) {
	switch status {
	case 400:
		return CodeValidation, ""
	case 401:
		return CodeAuthentication, "Invalid or missing API key"
	case 402:
		return CodeInsufficientBalance, "Insufficient balance"
	case 403:
		return CodeForbidden, "Insufficient permissions"
	case 404:
		return CodeNotFound, "Resource not found"
	case 429:
		return CodeRateLimit, "Rate limit or spend cap exceeded"
	default:
		return CodeAPIError, ""
	}
}

// New constructs an APIError for the given status. The message extracted from
// the response body takes precedence; otherwise the status's default message
// applies, falling back to a synthesized "Request failed with status N".
func New(status int, message string) *APIError {
	code, defaultMsg := fromStatus(status)
	if message == "" {
		message = defaultMsg
	}
	if message == "" {
		message = fmt.Sprintf("Request failed with status %d", status)
	}
	return &APIError{
		StatusCode: status,
		Code:       code,
		Message:    message,
	}
}

// NewTimeout constructs the transient error recorded when a request attempt
// exceeds its deadline. Timeouts carry status 408 by convention.
func NewTimeout() *APIError {
	return &APIError{
		StatusCode: 408,
		Code:       CodeTimeout,
		Message:    "request timed out",
	}
}

// NetworkError represents a transport-level failure with no HTTP response.
type NetworkError struct {
	Err error
	URL string
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("supp: network error: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}
