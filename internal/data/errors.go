package data

import "errors"

var (
	// ErrIdeaNotFound is returned when an idea does not exist.
	ErrIdeaNotFound = errors.New("idea not found")
	// ErrUserNotFound is returned when a mirrored user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserExists is returned when creating a mirrored user that is already present.
	ErrUserExists = errors.New("user already exists")
)
