package errors

import "errors"

var (
	ErrNotFound = errors.New("schedule not found")

	ErrInvalidID = errors.New("invalid schedule ID format")

	// ErrDuplicateLocation is returned when a second schedule is created for
	// a location that already has one.
	ErrDuplicateLocation = errors.New("schedule already exists for location")
)
