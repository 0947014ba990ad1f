package ratelimit

import "errors"

var (
	// ErrEmptyKey is returned when an attempt is checked against an empty key.
	ErrEmptyKey = errors.New("rate limit key must not be empty")
	// ErrInvalidAttempts is returned when maxAttempts is zero or negative.
	ErrInvalidAttempts = errors.New("max attempts must be positive")
	// ErrInvalidWindow is returned when a window or max age is zero or negative.
	ErrInvalidWindow = errors.New("window duration must be positive")
)
