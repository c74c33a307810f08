package core

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates no task in the list has the requested id.
	ErrNotFound = errors.New("task not found")

	// ErrMalformedDocument indicates the stored task list is not a sequence of objects.
	ErrMalformedDocument = errors.New("malformed task document")

	// ErrInvalidField indicates a stored entry has a missing or invalid field.
	ErrInvalidField = errors.New("invalid task field")

	ErrInvalidImportance = errors.New("importance must be 'high' or 'low'")
	ErrInvalidUrgency    = errors.New("urgency must be 'high' or 'low'")
)

// FieldError describes an invalid field of one stored entry.
// It matches both ErrInvalidField and the underlying reason with errors.Is.
type FieldError struct {
	Index int    // position of the entry in the stored list
	Field string // field name as persisted
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: entry %d: %s: %v", ErrInvalidField, e.Index, e.Field, e.Err)
}

func (e *FieldError) Unwrap() []error {
	return []error{ErrInvalidField, e.Err}
}
