package transport

import (
	"context"
	"errors"
)

// Common transport errors
var (
	// ErrEntityNotFound indicates that a topic or subscription does not exist
	ErrEntityNotFound = errors.New("messaging entity not found")

	// ErrLockLost indicates that the message lock expired before settlement
	ErrLockLost = errors.New("message lock lost")

	// ErrReceiveDisabled indicates that the subscription is disabled
	ErrReceiveDisabled = errors.New("subscription receive disabled")

	// ErrClosed indicates that the broker connection is closed
	ErrClosed = errors.New("broker connection closed")

	// ErrInvalidFilter indicates a filter expression that cannot be parsed
	ErrInvalidFilter = errors.New("invalid filter")
)

// IsTransient reports whether retrying the same call may succeed
func IsTransient(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, ErrEntityNotFound),
		errors.Is(err, ErrLockLost),
		errors.Is(err, ErrReceiveDisabled),
		errors.Is(err, ErrClosed),
		errors.Is(err, ErrInvalidFilter),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return false
	default:
		return true
	}
}
