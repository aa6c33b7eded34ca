package registration

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidEvent        = errors.New("invalid event")
	ErrInvalidPayload      = errors.New("invalid payload")
	ErrRegistrationsClosed = errors.New("registrations closed")
	ErrCapacityExceeded    = errors.New("capacity exceeded")
	ErrStoreUnavailable    = errors.New("store unavailable")
	ErrUnexpected          = errors.New("unexpected error")
)

// Error is returned by the service for every rejected request. Kind is one
// of the sentinel errors above and Message is safe to show to users.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newError(kind error, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Message returns the user-facing message carried by err, or a generic one.
func Message(err error) string {
	var regErr *Error
	if errors.As(err, &regErr) && regErr.Message != "" {
		return regErr.Message
	}
	return "Server error. Please try again later."
}

// Unexpected wraps a failure outside the taxonomy above.
func Unexpected(err error) *Error {
	return newError(ErrUnexpected, "Server error. Please try again later.", err)
}
