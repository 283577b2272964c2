// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrInvalidID is returned when a task id is not a positive integer.
	ErrInvalidID = errors.New("invalid task id")

	// ErrContentEmpty is returned when a task's content is empty.
	ErrContentEmpty = errors.New("task content cannot be empty")

	// ErrTitleTooLong is returned when a task title exceeds TitleMaxLen.
	ErrTitleTooLong = errors.New("task title exceeds 64 characters")

	// ErrContentTooLong is returned when task content exceeds ContentMaxLen.
	ErrContentTooLong = errors.New("task content exceeds 255 characters")
)
