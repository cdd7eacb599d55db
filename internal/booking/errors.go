// Package booking implements the availability and booking allocation
// engine: resolving operating hours, enumerating candidate slots,
// matching tables by capacity, detecting interval conflicts, planning
// per-restaurant availability and committing reservations without
// double-assigning a table.  The package is storage-agnostic; it
// speaks to persistence only through the Store interfaces defined in
// store.go.
package booking

import (
    "errors"
    "fmt"
)

// ErrNotFound is returned when a referenced restaurant or reservation
// does not exist.  It is distinct from "no availability", which is a
// valid empty result and never an error.  Handlers should translate
// this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a booking attempt lost the race for a
// table, or when a cancellation targets a reservation that is already
// cancelled.  Losing the race is the expected outcome of contention,
// not a fault; callers should re-search and pick another slot rather
// than retry blindly.  Handlers should translate this into 409.
var ErrConflict = errors.New("conflict")

// ValidationError reports malformed or semantically invalid input,
// such as a bad time string or a non-positive party size.  It is
// surfaced to the caller immediately and never retried.
type ValidationError struct {
    Field  string // input field at fault
    Reason string // human-readable explanation
}

func (e *ValidationError) Error() string {
    return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// invalid builds a *ValidationError; shorthand used throughout the package.
func invalid(field, reason string) error {
    return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
    var ve *ValidationError
    return errors.As(err, &ve)
}
