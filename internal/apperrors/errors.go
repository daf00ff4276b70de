package apperrors

import "errors"

// Sentinel errors for the poll engine. Services return these (possibly
// wrapped); handlers match with errors.Is to pick an HTTP status. Validation
// and authorization failures are detected before any write and are never
// retried.
var (
	ErrUnauthenticated = errors.New("no authenticated user")
	ErrForbidden       = errors.New("not allowed")
	ErrNotFound        = errors.New("not found")
	ErrInvalidOption   = errors.New("option does not belong to poll")
)

// ValidationError carries a user-facing message about malformed input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidation builds a ValidationError with the given message.
func NewValidation(msg string) error {
	return &ValidationError{Message: msg}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
