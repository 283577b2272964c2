package store

import "errors"

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested task does not exist in
	// the store.
	ErrNotFound = errors.New("task not found")

	// ErrDisconnected is returned when the backing database connection
	// could not be established. A store in this state degrades every
	// operation to an error Result instead of faulting.
	ErrDisconnected = errors.New("database connection unavailable")

	// ErrInvalidEntity is returned when a write is rejected by a
	// schema constraint (length bound, null violation). Check the
	// wrapped error for specifics.
	ErrInvalidEntity = errors.New("invalid task")

	// ErrDuplicate is returned when an operation would violate a
	// unique constraint.
	ErrDuplicate = errors.New("task already exists")
)
