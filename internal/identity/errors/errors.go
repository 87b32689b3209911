package errors

import "errors"

var (
	ErrUserNotFound = errors.New("user not found")

	ErrDoctorNotFound = errors.New("doctor not found")

	// ErrDoctorNotLinked means the user exists but has no doctor profile.
	ErrDoctorNotLinked = errors.New("user has no linked doctor")
)
