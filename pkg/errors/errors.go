// Package errors provides typed errors for the application
package errors

import (
	stderrors "errors"
	"fmt"
)

// baseError is the base implementation for all error types
type baseError struct {
	msg   string
	cause error
}

func (e *baseError) Error() string {
	if e.cause != nil {
		return e.msg + ": " + e.cause.Error()
	}
	return e.msg
}

func (e *baseError) Unwrap() error {
	return e.cause
}

// ValidationError represents malformed input (bad price, wrong forward type)
type ValidationError struct {
	baseError
}

// NewValidationError creates a new ValidationError
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{baseError{msg: msg}}
}

// NotFoundError represents an unknown offer, plan or payment reference
type NotFoundError struct {
	baseError
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(msg string) *NotFoundError {
	return &NotFoundError{baseError{msg: msg}}
}

// ConflictError represents a duplicate key
type ConflictError struct {
	baseError
}

// NewConflictError creates a new ConflictError
func NewConflictError(msg string) *ConflictError {
	return &ConflictError{baseError{msg: msg}}
}

// PermissionError represents an actor without administrator rights
type PermissionError struct {
	baseError
}

// NewPermissionError creates a new PermissionError
func NewPermissionError(msg string) *PermissionError {
	return &PermissionError{baseError{msg: msg}}
}

// StateError represents an operation on an entity in the wrong lifecycle state
type StateError struct {
	baseError
}

// NewStateError creates a new StateError
func NewStateError(msg string) *StateError {
	return &StateError{baseError{msg: msg}}
}

// ProviderError represents a failed call to an external provider (Telegram, S3)
type ProviderError struct {
	baseError
}

// WrapProviderError creates a ProviderError that keeps the provider's own error text
func WrapProviderError(cause error, format string, args ...any) *ProviderError {
	return &ProviderError{baseError{msg: fmt.Sprintf(format, args...), cause: cause}}
}

// InternalError represents an internal server error
type InternalError struct {
	baseError
}

// NewInternalError creates a new InternalError
func NewInternalError(msg string) *InternalError {
	return &InternalError{baseError{msg: msg}}
}

// IsValidationError checks if error is a ValidationError
func IsValidationError(err error) bool {
	var target *ValidationError
	return stderrors.As(err, &target)
}

// IsNotFoundError checks if error is a NotFoundError
func IsNotFoundError(err error) bool {
	var target *NotFoundError
	return stderrors.As(err, &target)
}

// IsConflictError checks if error is a ConflictError
func IsConflictError(err error) bool {
	var target *ConflictError
	return stderrors.As(err, &target)
}

// IsPermissionError checks if error is a PermissionError
func IsPermissionError(err error) bool {
	var target *PermissionError
	return stderrors.As(err, &target)
}

// IsStateError checks if error is a StateError
func IsStateError(err error) bool {
	var target *StateError
	return stderrors.As(err, &target)
}

// IsProviderError checks if error is a ProviderError
func IsProviderError(err error) bool {
	var target *ProviderError
	return stderrors.As(err, &target)
}
