package domain

import (
	"errors"
	"fmt"
)

// ErrKeyNotFound is returned when a key cannot be found in a key-value store.
var ErrKeyNotFound = errors.New("key not found")

// ErrEmailMismatch is emitted when the email and its confirmation differ at submit time.
var ErrEmailMismatch = errors.New("email doesn't match confirmation")

// ErrSubmitInFlight is returned when a submit is requested while another one is pending.
var ErrSubmitInFlight = errors.New("registration already in flight")

// ErrUnexpectedEvent is returned when a navigation event does not apply to the current screen.
var ErrUnexpectedEvent = errors.New("unexpected navigation event")

// ErrNotRegistered is returned when cancelling an invitation nobody holds.
var ErrNotRegistered = errors.New("no registration to cancel")

// ErrAlreadyRegistered is returned by the roster when the email is already on the waitlist.
var ErrAlreadyRegistered = errors.New("email already registered")

// ErrWaitlistFull is returned by the roster when its capacity is reached.
var ErrWaitlistFull = errors.New("slot full")

// ErrorKind classifies a RegistrationError.
type ErrorKind string

const (
	KindServerMessage   ErrorKind = "server_message"
	KindNetworkFailure  ErrorKind = "network_failure"
	KindInternalFailure ErrorKind = "internal_failure"
)

// RegistrationError is a failed registration submission.
type RegistrationError struct {
	Kind    ErrorKind
	Message string // Server-provided text, only set for KindServerMessage.
	Err     error
}

func (e *RegistrationError) Error() string {
	switch e.Kind {
	case KindServerMessage:
		return fmt.Sprintf("registration rejected: %s", e.Message)
	case KindNetworkFailure:
		if e.Err != nil {
			return fmt.Sprintf("registration network failure: %v", e.Err)
		}
		return "registration network failure"
	default:
		if e.Err != nil {
			return fmt.Sprintf("registration internal failure: %v", e.Err)
		}
		return "registration internal failure"
	}
}

func (e *RegistrationError) Unwrap() error {
	return e.Err
}

// ServerMessage builds a server-rejected registration error.
func ServerMessage(message string) *RegistrationError {
	return &RegistrationError{Kind: KindServerMessage, Message: message}
}

// NetworkFailure builds a transport-level registration error.
func NetworkFailure(cause error) *RegistrationError {
	return &RegistrationError{Kind: KindNetworkFailure, Err: cause}
}

// InternalFailure builds an error for a request that could not be constructed.
func InternalFailure(cause error) *RegistrationError {
	return &RegistrationError{Kind: KindInternalFailure, Err: cause}
}

// IsServerMessage reports whether err carries a server-provided message, and returns it.
func IsServerMessage(err error) (string, bool) {
	var regErr *RegistrationError
	if errors.As(err, &regErr) && regErr.Kind == KindServerMessage {
		return regErr.Message, true
	}
	return "", false
}

// UserMessage returns the text shown to the user for a failed submission.
// Only server messages are surfaced verbatim.
func UserMessage(err error) string {
	if msg, ok := IsServerMessage(err); ok {
		return msg
	}
	return GenericFailureMessage
}
