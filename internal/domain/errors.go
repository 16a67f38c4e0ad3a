package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
type HTTPError interface {
	error
	StatusCode() int
}

// Domain error types implementing HTTPError interface
type (
	// NotFoundError indicates a resource was not found
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input
	ValidationError struct {
		Message string
	}

	// NetworkError indicates the remote resource could not be reached
	// or answered with a server-side failure
	NetworkError struct {
		Message string
		Status  int // 0 when the request never got a response
	}
)

// Error implementations
func (e *NotFoundError) Error() string   { return e.Message }
func (e *ValidationError) Error() string { return e.Message }
func (e *NetworkError) Error() string    { return e.Message }

// StatusCode implementations (HTTPError interface)
func (e *NotFoundError) StatusCode() int   { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int { return http.StatusBadRequest }
func (e *NetworkError) StatusCode() int    { return http.StatusBadGateway }

// Is allows errors.Is() to match the typed errors against their sentinels
func (e *NotFoundError) Is(target error) bool   { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }
func (e *NetworkError) Is(target error) bool    { return target == ErrNetwork }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("already exists")
	ErrValidation = errors.New("validation failed")
	ErrNetwork    = errors.New("network failure")
)

// ConflictError represents a resource conflict with details about the existing resource
type ConflictError struct {
	Message      string // Human-readable error message
	ResourceType string // Type of resource (document, folder)
	ResourceID   string // ID of the existing/conflicting resource
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return e.Message
}

// StatusCode implements the HTTPError interface
func (e *ConflictError) StatusCode() int {
	return http.StatusConflict
}

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// UnresolvedReferenceError is returned when a relation field names an id
// that is not present in the collection it must be resolved against.
type UnresolvedReferenceError struct {
	Field string
	ID    string
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("%s: no entity with id %q", e.Field, e.ID)
}

// Is allows errors.Is() to treat an unresolved reference as a validation failure
func (e *UnresolvedReferenceError) Is(target error) bool {
	return target == ErrValidation
}

// Kind classifies an error into the coarse taxonomy views care about.
type Kind string

const (
	KindNone       Kind = ""
	KindNotFound   Kind = "not_found"
	KindValidation Kind = "validation"
	KindNetwork    Kind = "network"
	KindOther      Kind = "other"
)

// KindOf returns the taxonomy bucket for err.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrValidation), errors.Is(err, ErrConflict):
		return KindValidation
	case errors.Is(err, ErrNetwork):
		return KindNetwork
	default:
		return KindOther
	}
}
