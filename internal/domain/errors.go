package domain

import "errors"

var (
	// ErrInvalidInput is returned when a required identifier is missing or a number is not finite.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUserNotFound is returned when the user record does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailNotFound is returned when no user is registered under an email address.
	ErrEmailNotFound = errors.New("no user with that email")
	// ErrEmailTaken is returned when registering an email that already has a user.
	ErrEmailTaken = errors.New("email already registered")
	// ErrConflict indicates the user record changed between load and save.
	ErrConflict = errors.New("user record modified concurrently")
	// ErrUnknownQuizType indicates a quiz type with no progress field.
	ErrUnknownQuizType = errors.New("invalid quiz type")
	// ErrInvalidResetToken is returned for missing, used or expired password reset tokens.
	ErrInvalidResetToken = errors.New("invalid or expired token")
)
