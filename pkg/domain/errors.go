package domain

import (
	"errors"
	"fmt"
)

// FieldError describes a problem with a single input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   string `json:"value,omitempty"`
}

// DomainError represents a domain-specific error with a code and message
type DomainError struct {
	Code    string
	Message string
	Field   string
	Value   string
	Details []FieldError
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Error codes
const (
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeInvalidFilterValue = "INVALID_FILTER_VALUE"
	ErrCodeInvalidPagination  = "INVALID_PAGINATION"
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeInternal           = "INTERNAL_ERROR"
)

// Error constructors

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string) error {
	return &DomainError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// NewValidationError creates a validation error for a single field.
func NewValidationError(field, msg string) error {
	return &DomainError{
		Code:    ErrCodeValidation,
		Message: msg,
		Field:   field,
		Details: []FieldError{{Field: field, Message: msg}},
	}
}

// NewValidationErrors wraps several field problems into one error. The first
// one becomes the headline.
func NewValidationErrors(details []FieldError) error {
	if len(details) == 0 {
		return nil
	}
	return &DomainError{
		Code:    ErrCodeValidation,
		Message: details[0].Message,
		Field:   details[0].Field,
		Details: details,
	}
}

// NewDuplicateError reports a unique constraint hit on field.
func NewDuplicateError(field string, err error) error {
	msg := fmt.Sprintf("%s already exists", field)
	return &DomainError{
		Code:    ErrCodeValidation,
		Message: msg,
		Field:   field,
		Details: []FieldError{{Field: field, Message: msg}},
		Err:     err,
	}
}

// NewInvalidFilterValueError reports every malformed filter parameter. The
// first entry names the headline key and raw value.
func NewInvalidFilterValueError(details []FieldError) error {
	if len(details) == 0 {
		return nil
	}
	first := details[0]
	return &DomainError{
		Code:    ErrCodeInvalidFilterValue,
		Message: fmt.Sprintf("invalid value %q for filter %s: %s", first.Value, first.Field, first.Message),
		Field:   first.Field,
		Value:   first.Value,
		Details: details,
	}
}

// NewInvalidPaginationError reports a page or limit that is not a positive integer.
func NewInvalidPaginationError(param, value string) error {
	return &DomainError{
		Code:    ErrCodeInvalidPagination,
		Message: fmt.Sprintf("%s must be a positive integer", param),
		Field:   param,
		Value:   value,
	}
}

// NewUnauthorizedError creates a new unauthorized error
func NewUnauthorizedError() error {
	return &DomainError{
		Code:    ErrCodeUnauthorized,
		Message: "Authentication required",
	}
}

// NewInvalidCredentialsError rejects a sign-in without saying which half
// of the credentials was wrong.
func NewInvalidCredentialsError() error {
	return &DomainError{
		Code:    ErrCodeUnauthorized,
		Message: "Invalid email or password",
	}
}

// NewForbiddenError creates a new forbidden error
func NewForbiddenError(msg string) error {
	return &DomainError{
		Code:    ErrCodeForbidden,
		Message: msg,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(err error) error {
	return &DomainError{
		Code:    ErrCodeInternal,
		Message: "An internal error occurred",
		Err:     err,
	}
}

// Helper functions to check error types

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool {
	return GetErrorCode(err) == ErrCodeNotFound
}

// IsValidation checks if the error is a validation error
func IsValidation(err error) bool {
	return GetErrorCode(err) == ErrCodeValidation
}

// IsInvalidFilterValue checks if the error is a malformed filter error
func IsInvalidFilterValue(err error) bool {
	return GetErrorCode(err) == ErrCodeInvalidFilterValue
}

// IsInvalidPagination checks if the error is a pagination error
func IsInvalidPagination(err error) bool {
	return GetErrorCode(err) == ErrCodeInvalidPagination
}

// IsUnauthorized checks if the error is an unauthorized error
func IsUnauthorized(err error) bool {
	return GetErrorCode(err) == ErrCodeUnauthorized
}

// IsForbidden checks if the error is a forbidden error
func IsForbidden(err error) bool {
	return GetErrorCode(err) == ErrCodeForbidden
}

// AsDomainError returns the first DomainError in err's chain.
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// GetErrorCode extracts the error code from a domain error
func GetErrorCode(err error) string {
	if de, ok := AsDomainError(err); ok {
		return de.Code
	}
	return ErrCodeInternal
}
