package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Input error codes
const (
	// ErrCodeValidation is used for client-side validation failures
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
)

// Resource and state error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeInvalidState is used when an operation is invalid for the
	// current checkout state
	ErrCodeInvalidState = "ERR_INVALID_STATE"
)

// Upstream error codes. The shop API is the only upstream; these codes
// separate "the shop rejected the operation" from "the shop could not
// be reached".
const (
	// ErrCodeShopRejected is used when the shop API returned a typed
	// error result for an otherwise successful call
	ErrCodeShopRejected = "ERR_SHOP_REJECTED"
	// ErrCodeUpstreamBackend is used when the shop API returned
	// GraphQL-level errors
	ErrCodeUpstreamBackend = "ERR_UPSTREAM_BACKEND"
	// ErrCodeUpstreamNetwork is used when the shop API transport failed
	ErrCodeUpstreamNetwork = "ERR_UPSTREAM_NETWORK"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation:  http.StatusBadRequest,
	ErrCodeBadRequest:  http.StatusBadRequest,
	ErrCodeInvalidJSON: http.StatusBadRequest,

	ErrCodeNotFound:     http.StatusNotFound,
	ErrCodeInvalidState: http.StatusConflict,

	ErrCodeShopRejected:    http.StatusUnprocessableEntity,
	ErrCodeUpstreamBackend: http.StatusBadGateway,
	ErrCodeUpstreamNetwork: http.StatusBadGateway,
}

// GetHTTPStatus returns the HTTP status for an error code, defaulting
// to 500 for unknown codes
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
