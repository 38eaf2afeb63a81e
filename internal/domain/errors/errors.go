package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrFetchFailed  = errors.New("external fetch failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrStoreClosed  = errors.New("store closed")
)

// ValidationError reports malformed input rejected before any write.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// Validation creates a new validation error
func Validation(field, value, reason string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Reason: reason}
}

// IntegrityError refuses a project deletion that would orphan rows in a
// related partition. It names the blocking repositories so the caller can
// unlink them first.
type IntegrityError struct {
	ProjectID    string
	Repositories []string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("cannot delete project %q: %d repositories still linked (%s)",
		e.ProjectID, len(e.Repositories), strings.Join(e.Repositories, ", "))
}

// PersistenceError wraps a store I/O failure. Batched operations are
// never left partially applied.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Persistence wraps err with the failing operation name.
func Persistence(op string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Err: err}
}

// FetchError distinguishes "could not determine the claim" from a
// confirmed absence; the two must never be conflated.
type FetchError struct {
	Target string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch failed for %s: %v", e.Target, e.Err)
}

func (e *FetchError) Unwrap() []error { return []error{ErrFetchFailed, e.Err} }

// Fetch creates a new fetch error
func Fetch(target string, err error) *FetchError {
	return &FetchError{Target: target, Err: err}
}

// IsNotFound reports whether err is the not-found sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation reports whether err is a validation rejection.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsIntegrity reports whether err is an integrity refusal.
func IsIntegrity(err error) bool {
	var ie *IntegrityError
	return errors.As(err, &ie)
}
