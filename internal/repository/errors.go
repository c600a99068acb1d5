package repository

import (
	"errors"
	"strings"
)

// Common repository errors
var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEntry = errors.New("duplicate entry")
	ErrInvalidInput   = errors.New("invalid input")

	// ErrNotActionable is returned when a status transition is attempted on an
	// action that is already in a terminal state.
	ErrNotActionable = errors.New("action is not in suggested state")

	// ErrHasPendingActions is returned when a message deletion is blocked by
	// actions still awaiting review.
	ErrHasPendingActions = errors.New("message has suggested actions awaiting review")
)

// isDuplicateKeyError checks if the error is a duplicate key violation
func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "duplicate key") ||
		strings.Contains(errStr, "UNIQUE constraint") ||
		strings.Contains(errStr, "23505") // PostgreSQL unique violation code
}
