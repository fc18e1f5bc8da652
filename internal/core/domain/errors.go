package domain

import "errors"

var (
	ErrValidation         = errors.New("validation error")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrForbidden          = errors.New("access forbidden")
	ErrUserNotFound       = errors.New("user not found")
	ErrFeedbackNotFound   = errors.New("feedback not found")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrGatewayFailure     = errors.New("failed to send email, please try again later")
	ErrRequestThrottled   = errors.New("feedback already requested recently")
)

// Error attaches a caller-facing message to one of the sentinel kinds above.
// errors.Is matches on the kind; Error returns only the message.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }
func (e *Error) Unwrap() error { return e.Kind }

// Wrap returns an *Error of the given kind.
func Wrap(kind error, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}

// Invalid returns a validation error with msg.
func Invalid(msg string) error { return Wrap(ErrValidation, msg) }

// Denied returns an access-control error with msg.
func Denied(msg string) error { return Wrap(ErrForbidden, msg) }
