package errors

import (
	"errors"
)

// Domain-specific error types
var (
	// ErrNotFound indicates a resource was not found
	ErrNotFound = errors.New("resource not found")

	// ErrDuplicateEntry indicates a unique constraint violation
	ErrDuplicateEntry = errors.New("duplicate entry")

	// ErrInvalidInput indicates invalid input data
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotActionable indicates a decision was attempted on an action that is
	// already in a terminal state (applied or rejected)
	ErrNotActionable = errors.New("action is not actionable")

	// ErrUnsupportedActionKind indicates the applier has no handler for the
	// action's kind
	ErrUnsupportedActionKind = errors.New("unsupported action kind")

	// ErrInvalidPayload indicates an action payload does not have the shape
	// its kind requires
	ErrInvalidPayload = errors.New("invalid action payload")

	// ErrMessageHasPendingActions indicates a message cannot be deleted while
	// it still has suggested actions
	ErrMessageHasPendingActions = errors.New("message has pending actions")

	// ErrNoAccountsConfigured indicates no mail accounts are configured
	ErrNoAccountsConfigured = errors.New("no mail accounts configured")

	// ErrClassifierNotConfigured indicates the classification service has no
	// API key
	ErrClassifierNotConfigured = errors.New("classifier not configured")

	// ErrMailerNotConfigured indicates the outbound mail transport has no
	// API key
	ErrMailerNotConfigured = errors.New("mailer not configured")

	// ErrUnauthorized indicates unauthorized access
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInternal indicates an internal server error
	ErrInternal = errors.New("internal server error")
)

// Error codes for API responses
const (
	CodeNotFound              = "NOT_FOUND"
	CodeDuplicateEntry        = "DUPLICATE_ENTRY"
	CodeInvalidInput          = "INVALID_INPUT"
	CodeNotActionable         = "NOT_ACTIONABLE"
	CodeUnsupportedActionKind = "UNSUPPORTED_ACTION_KIND"
	CodePendingActions        = "PENDING_ACTIONS"
	CodeNotConfigured         = "NOT_CONFIGURED"
	CodeUnauthorized          = "UNAUTHORIZED"
	CodeInternalError         = "INTERNAL_ERROR"
)

// AppError represents an application error with context
type AppError struct {
	Err     error
	Message string
	Code    string
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError
func NewAppError(err error, message string, code string) *AppError {
	return &AppError{
		Err:     err,
		Message: message,
		Code:    code,
	}
}

// GetErrorCode returns the API error code for an error
func GetErrorCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrDuplicateEntry):
		return CodeDuplicateEntry
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidPayload):
		return CodeInvalidInput
	case errors.Is(err, ErrNotActionable):
		return CodeNotActionable
	case errors.Is(err, ErrUnsupportedActionKind):
		return CodeUnsupportedActionKind
	case errors.Is(err, ErrMessageHasPendingActions):
		return CodePendingActions
	case errors.Is(err, ErrNoAccountsConfigured),
		errors.Is(err, ErrClassifierNotConfigured),
		errors.Is(err, ErrMailerNotConfigured):
		return CodeNotConfigured
	case errors.Is(err, ErrUnauthorized):
		return CodeUnauthorized
	default:
		return CodeInternalError
	}
}
