package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrInvalidDateRange covers check-out on or before check-in and
	// unparsable dates in a range position.
	ErrInvalidDateRange = errors.New("check-out date must be after check-in date")

	// ErrInvalidInput covers business-rule violations outside field
	// validation, such as an override rate outside the configured bounds.
	ErrInvalidInput = errors.New("invalid input")

	ErrNotFound = errors.New("booking not found")

	// ErrDatesUnavailable is returned when a candidate stay overlaps an
	// existing booking.
	ErrDatesUnavailable = errors.New("the selected dates are not available")
)

// ValidationError reports malformed or missing request fields with
// per-field detail.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

func (e *ValidationError) Add(field, msg string) {
	e.Fields[field] = msg
}

func (e *ValidationError) Empty() bool { return len(e.Fields) == 0 }

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	return "validation failed: " + strings.Join(names, ", ")
}

// StorageError wraps a persistence-layer failure. Fatal to the request,
// never to the process.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
