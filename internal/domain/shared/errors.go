package shared

import "fmt"

// DomainError represents a typed error result returned by the shop API
// inside an otherwise successful transport response, or a domain-level
// rejection raised locally. The transport succeeded; the operation did not.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// BackendError represents a GraphQL-level failure: the response envelope
// carried an errors list. The first error's message is surfaced.
type BackendError struct {
	Message string `json:"message"`
}

// Error implements the error interface
func (e *BackendError) Error() string {
	return e.Message
}

// NewBackendError creates a new backend error
func NewBackendError(message string) *BackendError {
	return &BackendError{Message: message}
}

// NetworkError represents a transport-level failure or a non-success HTTP
// status from the shop API. Never retried automatically.
type NetworkError struct {
	Status int   // HTTP status code, 0 when the transport itself failed
	Err    error // underlying transport error, nil on status failures
}

// Error implements the error interface
func (e *NetworkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("shop api request failed: %v", e.Err)
	}
	return fmt.Sprintf("shop api returned status %d", e.Status)
}

// Unwrap returns the underlying transport error
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// NewNetworkError creates a network error from a transport failure
func NewNetworkError(err error) *NetworkError {
	return &NetworkError{Err: err}
}

// NewNetworkStatusError creates a network error from a non-success status
func NewNetworkStatusError(status int) *NetworkError {
	return &NetworkError{Status: status}
}

// ValidationError represents a client-side validation failure raised before
// any network call is made. The message is locally generated.
type ValidationError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Common domain errors
var (
	ErrNotFound     = NewDomainError("NOT_FOUND", "Resource not found")
	ErrInvalidInput = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrInvalidState = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
)
