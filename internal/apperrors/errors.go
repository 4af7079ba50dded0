package apperrors

import (
	"errors"
	"fmt"
)

// These sentinel errors define the application-level error conditions. They are
// wrapped with context via the Wrap helper and checked with errors.Is at the
// request boundary, where they are translated into HTTP status codes.
var (
	// ErrValidation indicates caller-supplied data failed a required-field or
	// format check. Recoverable by the caller resubmitting corrected input.
	ErrValidation = errors.New("validation failed")
	// ErrConfiguration indicates the server is missing required operational
	// configuration (admin token, mail transport, owner address).
	ErrConfiguration = errors.New("missing configuration")
	// ErrStorage indicates the persistence layer failed to read or write.
	ErrStorage = errors.New("storage error")
	// ErrNotification indicates the mail transport rejected or failed a send.
	// The associated lead is already durably stored when this is returned.
	ErrNotification = errors.New("notification error")
	// ErrUnauthorized indicates the admin token is missing or incorrect.
	ErrUnauthorized = errors.New("unauthorized")
)

// Wrap annotates a sentinel error with a formatted message while keeping the
// sentinel reachable through errors.Is.
func Wrap(sentinel error, format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, sentinel)...)
}

// validationError carries a client-facing message verbatim. The request
// boundary puts Error() into the response envelope, so the text must not be
// decorated with the sentinel's own wording.
type validationError struct {
	msg string
}

func (e *validationError) Error() string {
	return e.msg
}

func (e *validationError) Unwrap() error {
	return ErrValidation
}

// NewValidation returns a validation error whose message is exactly msg,
// still matching ErrValidation through errors.Is.
func NewValidation(msg string) error {
	return &validationError{msg: msg}
}

// IsValidation checks if the error is or wraps ErrValidation.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsConfiguration checks if the error is or wraps ErrConfiguration.
func IsConfiguration(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

// IsStorage checks if the error is or wraps ErrStorage.
func IsStorage(err error) bool {
	return errors.Is(err, ErrStorage)
}

// IsNotification checks if the error is or wraps ErrNotification.
func IsNotification(err error) bool {
	return errors.Is(err, ErrNotification)
}

// IsUnauthorized checks if the error is or wraps ErrUnauthorized.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}
