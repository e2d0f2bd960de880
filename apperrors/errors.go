package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType defines different categories of errors
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "VALIDATION"
	ErrorTypeNotFound   ErrorType = "NOT_FOUND"
	ErrorTypeInternal   ErrorType = "INTERNAL"
)

// Machine readable codes carried in API error bodies.
const (
	CodeUnknownNode    = "UNKNOWN_NODE"
	CodeSameEndpoints  = "SAME_ENDPOINTS"
	CodeMalformedGraph = "MALFORMED_GRAPH"
	CodeBrokenPath     = "BROKEN_PATH"
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeOutOfBounds    = "OUT_OF_BOUNDS"
	CodeInternal       = "INTERNAL_ERROR"
)

// AppError is the custom error type for the application
type AppError struct {
	Type    ErrorType
	Code    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewValidation creates a validation error
func NewValidation(code, message string, err error) error {
	return &AppError{
		Type:    ErrorTypeValidation,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewNotFound creates a not found error
func NewNotFound(code, message string, err error) error {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewInternal creates an internal error
func NewInternal(code, message string, err error) error {
	if code == "" {
		code = CodeInternal
	}
	return &AppError{
		Type:    ErrorTypeInternal,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}

	// If it's already an AppError, preserve the type and code
	var appErr *AppError
	if errors.As(err, &appErr) {
		return &AppError{
			Type:    appErr.Type,
			Code:    appErr.Code,
			Message: fmt.Sprintf("%s: %s", message, appErr.Message),
			Err:     appErr.Err,
		}
	}

	return &AppError{
		Type:    ErrorTypeInternal,
		Code:    CodeInternal,
		Message: message,
		Err:     err,
	}
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return hasType(err, ErrorTypeValidation)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return hasType(err, ErrorTypeNotFound)
}

// IsInternal checks if an error is an internal error
func IsInternal(err error) bool {
	return hasType(err, ErrorTypeInternal)
}

// CodeOf returns the code of the first AppError in the chain, or
// CodeInternal for foreign errors.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code != "" {
		return appErr.Code
	}
	return CodeInternal
}

// HTTPStatus maps an error onto the response status used by the API.
func HTTPStatus(err error) int {
	switch {
	case IsValidation(err):
		return http.StatusBadRequest
	case IsNotFound(err):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func hasType(err error, t ErrorType) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == t
}
