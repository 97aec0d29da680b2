package dto

import "net/http"

// General error codes
const (
	ErrCodeInternal   = "INTERNAL_ERROR"
	ErrCodeBadRequest = "BAD_REQUEST"
)

// Domain error codes surfaced over HTTP
const (
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeInvalidInput        = "INVALID_INPUT"
	ErrCodeUnauthorized        = "UNAUTHORIZED"
	ErrCodeNetworkFailure      = "NETWORK_FAILURE"
	ErrCodeEmptySelection      = "EMPTY_SELECTION"
	ErrCodeDuplicateSubmission = "DUPLICATE_SUBMISSION"
	ErrCodeCartNotLoaded       = "CART_NOT_LOADED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,

	ErrCodeNotFound:     http.StatusNotFound,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,

	// Upstream service failures surface as 502, not 500: the engine itself
	// is healthy, the dependency is not
	ErrCodeNetworkFailure: http.StatusBadGateway,

	ErrCodeEmptySelection:      http.StatusUnprocessableEntity,
	ErrCodeDuplicateSubmission: http.StatusConflict,
	ErrCodeCartNotLoaded:       http.StatusConflict,

	// Validation errors raised by add-to-cart specs
	"INVALID_ITEM":     http.StatusBadRequest,
	"INVALID_QUANTITY": http.StatusBadRequest,
	"INVALID_AMOUNT":   http.StatusBadRequest,
	"INVALID_WEIGHT":   http.StatusBadRequest,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes fall back to 500 Internal Server Error.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
