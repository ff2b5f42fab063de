// Package errors provides structured error handling with a fixed taxonomy of
// client-side error classes and context propagation.
package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the category of error for propagation and display.
type ErrorType string

const (
	// TypeAuthentication indicates an invalid or expired credential. Handled
	// globally: the session is cleared and the user returned to login.
	TypeAuthentication ErrorType = "authentication"
	// TypeValidation indicates backend-rejected input (e.g. a duplicate
	// application). Surfaced at the initiating view.
	TypeValidation ErrorType = "validation"
	// TypeInvalidTransition indicates a local lifecycle rule violation.
	// Never reaches the network.
	TypeInvalidTransition ErrorType = "invalid_transition"
	// TypeNetwork indicates a call failed or timed out with no authoritative
	// answer from the backend.
	TypeNetwork ErrorType = "network"
)

// Error represents a structured error with type, message, and context.
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Recoverable reports whether the error should be surfaced at the initiating
// view rather than handled globally.
func (e *Error) Recoverable() bool {
	return e.Type != TypeAuthentication
}

// AuthenticationError creates a new authentication error.
func AuthenticationError(message string) *Error {
	return &Error{
		Type:    TypeAuthentication,
		Message: message,
		Context: make(map[string]any),
	}
}

// ValidationError creates a new validation error.
func ValidationError(message string) *Error {
	return &Error{
		Type:    TypeValidation,
		Message: message,
		Context: make(map[string]any),
	}
}

// NetworkError creates a new network error wrapping the transport failure.
func NetworkError(message string, cause error) *Error {
	return &Error{
		Type:    TypeNetwork,
		Message: message,
		Cause:   cause,
		Context: make(map[string]any),
	}
}

// InvalidTransition creates a lifecycle rule violation carrying the offending
// (from, to, actor) triple.
func InvalidTransition(from, to, actor string) *Error {
	e := &Error{
		Type:    TypeInvalidTransition,
		Message: fmt.Sprintf("transition %s -> %s not allowed for %s", from, to, actor),
		Context: make(map[string]any),
	}
	e.Context["from"] = from
	e.Context["to"] = to
	e.Context["actor"] = actor
	return e
}

// WithContext adds context fields to the error (chainable).
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// IsType reports whether err is a structured error of the given type.
func IsType(err error, t ErrorType) bool {
	var structuredErr *Error
	if errors.As(err, &structuredErr) {
		return structuredErr.Type == t
	}
	return false
}

// IsInvalidTransition reports whether err is a local lifecycle rule violation.
func IsInvalidTransition(err error) bool { return IsType(err, TypeInvalidTransition) }

// IsAuthentication reports whether err is an authentication error.
func IsAuthentication(err error) bool { return IsType(err, TypeAuthentication) }

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool { return IsType(err, TypeValidation) }

// IsNetwork reports whether err is a network error.
func IsNetwork(err error) bool { return IsType(err, TypeNetwork) }

// TransitionTriple extracts the (from, to, actor) triple from an invalid
// transition error. ok is false for any other error.
func TransitionTriple(err error) (from, to, actor string, ok bool) {
	var structuredErr *Error
	if !errors.As(err, &structuredErr) || structuredErr.Type != TypeInvalidTransition {
		return "", "", "", false
	}
	from, _ = structuredErr.Context["from"].(string)
	to, _ = structuredErr.Context["to"].(string)
	actor, _ = structuredErr.Context["actor"].(string)
	return from, to, actor, true
}

// AsStructuredError converts any error into a structured Error.
// If err is already an *Error, returns it unchanged.
// Otherwise wraps it as a network error.
func AsStructuredError(err error) *Error {
	if err == nil {
		return nil
	}

	var structuredErr *Error
	if errors.As(err, &structuredErr) {
		return structuredErr
	}

	return NetworkError("backend call failed", err)
}
