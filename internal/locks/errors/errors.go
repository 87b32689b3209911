package errors

import "errors"

var (
	// ErrLockNotFound means no record exists for the month. Callers treat it
	// as open.
	ErrLockNotFound = errors.New("month lock not found")

	ErrInvalidMonth = errors.New("invalid month key")
)
