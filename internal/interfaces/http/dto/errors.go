package dto

import (
	"net/http"

	"github.com/fintrack/backend/internal/domain/shared"
)

// HTTP-layer error codes for failures that never reach the domain
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeValidation is used for request validation failures
	ErrCodeValidation = shared.CodeValidation
	// ErrCodeUnauthorized is used when authentication is missing or invalid
	ErrCodeUnauthorized = shared.CodeUnauthorized
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = shared.CodeNotFound
	// ErrCodeRateLimited is used when the rate limit is exceeded
	ErrCodeRateLimited = "RATE_LIMITED"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = shared.CodeInternal
)

// ErrorCodeHTTPStatus maps domain and HTTP-layer error codes to status codes.
// Consistency violations map to 422: the request was well-formed but would
// break a ledger invariant.
var ErrorCodeHTTPStatus = map[string]int{
	shared.CodeValidation:   http.StatusBadRequest,
	shared.CodeNotFound:     http.StatusNotFound,
	shared.CodeConflict:     http.StatusConflict,
	shared.CodeConsistency:  http.StatusUnprocessableEntity,
	shared.CodeUnauthorized: http.StatusUnauthorized,
	shared.CodeInternal:     http.StatusInternalServerError,

	ErrCodeBadRequest:  http.StatusBadRequest,
	ErrCodeRateLimited: http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500 Internal Server Error.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
