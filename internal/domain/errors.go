package domain

import "errors"

var (
	// ErrNotFound is returned when a user or file does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUsernameTaken is returned when registering an existing username.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrInvalidCredentials is returned when a login does not check out.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
