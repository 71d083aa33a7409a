package supp

import (
	"errors"

	"github.com/suppsupport/client-go/internal/apierrors"
)

// Stable error codes carried by APIError.Code, suitable for programmatic
// branching.
const (
	CodeValidation          = apierrors.CodeValidation
	CodeAuthentication      = apierrors.CodeAuthentication
	CodeInsufficientBalance = apierrors.CodeInsufficientBalance
	CodeForbidden           = apierrors.CodeForbidden
	CodeNotFound            = apierrors.CodeNotFound
	CodeRateLimit           = apierrors.CodeRateLimit
	CodeTimeout             = apierrors.CodeTimeout
	CodeAPIError            = apierrors.CodeAPIError
)

// Sentinel errors for errors.Is() checks
var (
	// ErrMissingAPIKey is returned when no API key is provided.
	ErrMissingAPIKey = apierrors.ErrMissingAPIKey

	// ErrClientClosed is returned when operations are attempted on a closed client.
	ErrClientClosed = apierrors.ErrClientClosed

	// ErrValidation is returned when the server rejects the request payload.
	ErrValidation = apierrors.ErrValidation

	// ErrUnauthorized is returned when the API key is invalid or missing.
	ErrUnauthorized = apierrors.ErrUnauthorized

	// ErrInsufficientBalance is returned when the workspace has run out of credits.
	ErrInsufficientBalance = apierrors.ErrInsufficientBalance

	// ErrForbidden is returned when the API key lacks the required permission.
	ErrForbidden = apierrors.ErrForbidden

	// ErrNotFound is returned when the requested resource does not exist.
	ErrNotFound = apierrors.ErrNotFound

	// ErrRateLimited is returned when the rate limit or spend cap is exceeded.
	ErrRateLimited = apierrors.ErrRateLimited

	// ErrTimeout is returned when a request exceeded its deadline on every attempt.
	ErrTimeout = apierrors.ErrTimeout

	// ErrInvalidSignature is returned when webhook signature verification fails.
	ErrInvalidSignature = errors.New("invalid webhook signature")
)

// APIError represents a terminal failure from the Supp API: either a 4xx
// rejected immediately, or a transient failure (5xx, timeout) that survived
// the retry budget. Errors are immutable once surfaced.
type APIError = apierrors.APIError

// NetworkError represents a transport-level failure with no HTTP response.
type NetworkError = apierrors.NetworkError

// AsAPIError extracts the *APIError from an error chain, if present.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
