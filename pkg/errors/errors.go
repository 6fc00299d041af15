package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ValidationError represents a validation failure with field-level details
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// HTTPStatus returns the page status for this error
func (e *ValidationError) HTTPStatus() int {
	return http.StatusBadRequest
}

// NotFoundError represents a resource not found error
type NotFoundError struct {
	Resource string
	Message  string
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource, message string) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		Message:  message,
	}
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// HTTPStatus returns the page status for this error
func (e *NotFoundError) HTTPStatus() int {
	return http.StatusNotFound
}

// BackendError represents a non-2xx response from the users backend
type BackendError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

// NewBackendError creates a new backend error
func NewBackendError(method, path string, statusCode int, body string) *BackendError {
	return &BackendError{
		Method:     method,
		Path:       path,
		StatusCode: statusCode,
		Body:       body,
	}
}

// Error implements the error interface
func (e *BackendError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("backend %s %s returned %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("backend %s %s returned %d", e.Method, e.Path, e.StatusCode)
}

// HTTPStatus returns the page status for this error.
// A backend 404 is reported as-is, everything else is a bad gateway.
func (e *BackendError) HTTPStatus() int {
	if e.StatusCode == http.StatusNotFound {
		return http.StatusNotFound
	}
	return http.StatusBadGateway
}

// TransportError represents a failure to reach the users backend
type TransportError struct {
	Op  string
	Err error
}

// NewTransportError creates a new transport error
func NewTransportError(op string, err error) *TransportError {
	return &TransportError{
		Op:  op,
		Err: err,
	}
}

// Error implements the error interface
func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: backend unreachable: %v", e.Op, e.Err)
}

// Unwrap returns the wrapped error
func (e *TransportError) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the page status for this error
func (e *TransportError) HTTPStatus() int {
	return http.StatusServiceUnavailable
}

// DecodeError represents a malformed backend response body
type DecodeError struct {
	Op  string
	Err error
}

// NewDecodeError creates a new decode error
func NewDecodeError(op string, err error) *DecodeError {
	return &DecodeError{
		Op:  op,
		Err: err,
	}
}

// Error implements the error interface
func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: malformed backend response: %v", e.Op, e.Err)
}

// Unwrap returns the wrapped error
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the page status for this error
func (e *DecodeError) HTTPStatus() int {
	return http.StatusBadGateway
}

// HTTPStatuser interface for errors that can provide a page status
type HTTPStatuser interface {
	HTTPStatus() int
}

// HTTPStatus maps an error to the status code of the page that reports it.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var statuser HTTPStatuser
	if stderrors.As(err, &statuser) {
		return statuser.HTTPStatus()
	}
	return http.StatusInternalServerError
}
