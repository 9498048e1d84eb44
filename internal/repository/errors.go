package repository

import "errors"

// Shared repository sentinel errors. Handlers map these onto the response
// error taxonomy.
var (
	// ErrNotFound is returned when the targeted row does not exist.
	ErrNotFound = errors.New("row not found")
	// ErrInsufficientHours is returned when a class would overdraw the
	// student's remaining hours balance.
	ErrInsufficientHours = errors.New("student has insufficient remaining hours")
	// ErrStaleStatus is returned when a compare-and-set status update finds
	// the row no longer in the expected state.
	ErrStaleStatus = errors.New("class status changed concurrently")
)
