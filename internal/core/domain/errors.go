package domain

import "errors"

// Sentinel errors returned by the core services. All are terminal and
// user-visible; the HTTP layer maps them to status codes centrally.
var (
	ErrInvalidArguments = errors.New("invalid arguments")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrUsernameTaken    = errors.New("username already exists")

	// ErrInvalidCredentials covers both unknown-username and wrong-password
	// so the error surface never reveals which half was wrong.
	ErrInvalidCredentials = errors.New("invalid username or password")

	ErrUnauthenticated = errors.New("authentication required")
	ErrUnauthorized    = errors.New("access forbidden")

	ErrUserNotFound      = errors.New("user not found")
	ErrWorkspaceNotFound = errors.New("workspace not found")

	ErrTooManyAttempts = errors.New("too many failed login attempts")
)
