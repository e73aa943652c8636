package services

import "errors"

// Sentinel errors returned by the domain services. Controllers map them onto
// the JSON envelope; anything else is treated as a storage failure.
var (
	// ErrUserNotFound means the authenticated user row no longer exists.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidAction means the action type is neither PERSIST nor TAKEOFF.
	ErrInvalidAction = errors.New("invalid action type")
	// ErrAlreadyCheckedIn means a PERSIST record already exists for today.
	ErrAlreadyCheckedIn = errors.New("already checked in today")
	// ErrInvalidCount means a wooden-fish tap batch was zero or negative.
	ErrInvalidCount = errors.New("count must be positive")
)
