// Package storage holds the errors shared by storage backends.
package storage

import "errors"

var (
	// ErrNotFound is returned when a requested row doesn't exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a unique key is already taken.
	ErrConflict = errors.New("conflict")
)
