// Package domain defines core types and errors for user administration.
package domain

import "fmt"

// Validation fields referenced by ValidationError.
const (
	FieldEmail    = "email"
	FieldPassword = "password"
)

// NotFoundError indicates the requested identity does not exist.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// ValidationError indicates invalid input. Field names which input
// (FieldEmail or FieldPassword) was rejected.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ConflictError indicates a duplicate identity.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// ServiceError indicates the identity service answered with an error.
type ServiceError struct {
	Code    int
	Message string
}

func (e *ServiceError) Error() string { return e.Message }

// EnvironmentError indicates a missing prerequisite: the credential
// database is absent or the identity service is unreachable.
type EnvironmentError struct {
	Message string
}

func (e *EnvironmentError) Error() string { return e.Message }

// ErrNotFound creates a NotFoundError with a formatted message.
func ErrNotFound(format string, args ...interface{}) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// ErrValidation creates a ValidationError for the given field.
func ErrValidation(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// ErrConflict creates a ConflictError with a formatted message.
func ErrConflict(format string, args ...interface{}) *ConflictError {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

// ErrService creates a ServiceError carrying the service's status code.
func ErrService(code int, format string, args ...interface{}) *ServiceError {
	return &ServiceError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// ErrEnvironment creates an EnvironmentError with a formatted message.
func ErrEnvironment(format string, args ...interface{}) *EnvironmentError {
	return &EnvironmentError{Message: fmt.Sprintf(format, args...)}
}
