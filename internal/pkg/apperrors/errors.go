package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an error so the HTTP layer can map it to a status code
// without inspecting storage internals.
type Kind uint8

const (
	// KindInternal is the zero value, used for anything unclassified
	KindInternal Kind = iota
	// KindValidation means the input was rejected before reaching storage
	KindValidation
	// KindStorageRead means a query against the store failed
	KindStorageRead
	// KindStorageWrite means an insert or commit failed and was rolled back
	KindStorageWrite
	// KindStorageUnavailable means the store could not be reached at all
	KindStorageUnavailable
)

// String returns a short name for logging
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindStorageRead:
		return "storage_read"
	case KindStorageWrite:
		return "storage_write"
	case KindStorageUnavailable:
		return "storage_unavailable"
	default:
		return "internal"
	}
}

// Common errors
var (
	ErrValidationFailed = errors.New("validation failed")
	ErrNilCourse        = errors.New("course is nil")
)

// Error carries a Kind and the operation that failed alongside the cause
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

// Error implements error interface
func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap implements errors.Unwrap interface
func (e *Error) Unwrap() error {
	return e.Err
}

// E builds an Error of the given kind for op
func E(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf returns the Kind of the first *Error in err's chain, or KindInternal
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	if errors.Is(err, ErrValidationFailed) {
		return KindValidation
	}
	return KindInternal
}
