package authguard

import "errors"

var (
	// ErrGuardNotReady is returned when a nil or unbuilt Guard is used.
	ErrGuardNotReady = errors.New("guard not initialized")
	// ErrRateLimited signals a sliding-window denial from [Guard.Protect].
	ErrRateLimited = errors.New("rate limited")
	// ErrInvalidEmail signals a structurally unacceptable email address.
	ErrInvalidEmail = errors.New("invalid email address")
	// ErrWeakPassword signals a password that fails the credential policy.
	ErrWeakPassword = errors.New("password does not meet policy")
	// ErrNilOperation is returned when Protect is called without an operation.
	ErrNilOperation = errors.New("nil protected operation")

	// ErrConfigMaxAttempts rejects a non-positive attempt budget at Build time.
	ErrConfigMaxAttempts = errors.New("config: max attempts must be positive")
	// ErrConfigWindow rejects a non-positive window at Build time.
	ErrConfigWindow = errors.New("config: window duration must be positive")
	// ErrConfigCleanupMaxAge rejects a non-positive retention horizon at Build time.
	ErrConfigCleanupMaxAge = errors.New("config: cleanup max age must be positive")
	// ErrConfigCleanupHorizon rejects a retention horizon shorter than the window.
	ErrConfigCleanupHorizon = errors.New("config: cleanup max age must not be shorter than the window")
	// ErrCleanupInterval rejects a non-positive sweep interval.
	ErrCleanupInterval = errors.New("cleanup interval must be positive")
)
