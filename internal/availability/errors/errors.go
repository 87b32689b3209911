package errors

import "errors"

var (
	ErrConstraintNotFound = errors.New("availability constraint not found")

	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidStatus = errors.New("invalid availability status")
	ErrInvalidRange  = errors.New("invalid date range")
)
