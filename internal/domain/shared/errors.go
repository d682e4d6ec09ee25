package shared

import "fmt"

// DomainError represents a domain-level error
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

// Error codes used across the domain
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeConsistency  = "CONSISTENCY_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeInternal     = "INTERNAL"
)

// NewValidationError creates a validation error with a formatted message
func NewValidationError(format string, args ...any) *DomainError {
	return &DomainError{
		Code:    CodeValidation,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewNotFoundError creates a not-found error for the named resource
func NewNotFoundError(resource string) *DomainError {
	return &DomainError{
		Code:    CodeNotFound,
		Message: resource + " not found",
	}
}

// NewConflictError creates a conflict error with a formatted message
func NewConflictError(format string, args ...any) *DomainError {
	return &DomainError{
		Code:    CodeConflict,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewConsistencyError creates a consistency error with a formatted message.
// Consistency errors mark operations that would break a ledger invariant,
// such as a loan payment exceeding the outstanding principal.
func NewConsistencyError(format string, args ...any) *DomainError {
	return &DomainError{
		Code:    CodeConsistency,
		Message: fmt.Sprintf(format, args...),
	}
}

// Common domain errors
var (
	ErrNotFound     = NewDomainError(CodeNotFound, "Resource not found")
	ErrUserNotFound = NewDomainError(CodeNotFound, "User not found")
	ErrUnauthorized = NewDomainError(CodeUnauthorized, "Not authorized to perform this action")
	ErrInvalidInput = NewDomainError(CodeValidation, "Invalid input provided")
)
