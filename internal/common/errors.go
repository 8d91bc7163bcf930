// Package common defines shared constants and sentinel errors used across
// client and server layers of Lightway. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal        = errors.New("internal error")
	ErrorUnauthorized    = errors.New("unauthorized")
	ErrInvalidTransition = errors.New("invalid state transition")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Letter errors.
	ErrEmptyContent        = errors.New("content must not be empty")
	ErrLetterTooLong       = errors.New("letter content is too long")
	ErrOpenDateNotInFuture = errors.New("open date must be in the future")
	ErrOpenDateTooFar      = errors.New("open date is too far in the future")
	ErrLetterDestroyed     = errors.New("letter has been destroyed")

	// Gallery errors.
	ErrInvalidIdentity  = errors.New("identity is invalid or expired")
	ErrContentTooLong   = errors.New("content is too long")
	ErrApplauseLimit    = errors.New("applause limit reached")
	ErrAlreadyApplauded = errors.New("already applauded")
)
