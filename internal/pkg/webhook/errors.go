package webhook

import (
	"errors"
)

// Error kinds. Every failure surfaced by a pipeline wraps exactly one of them.
var (
	ErrConfiguration  = errors.New("configuration error")
	ErrAuthentication = errors.New("authentication error")
	ErrDecode         = errors.New("decode error")
	ErrCorrelation    = errors.New("correlation error")
	ErrNotFound       = errors.New("not found")
	ErrDuplicate      = errors.New("duplicate")
	ErrStore          = errors.New("store error")
)

var kinds = []error{
	ErrConfiguration,
	ErrAuthentication,
	ErrDecode,
	ErrCorrelation,
	ErrNotFound,
	ErrDuplicate,
	ErrStore,
}

// Error carries a kind, the message returned to the provider and an optional cause.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

func NewError(kind error, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

func ConfigurationError(message string) error {
	return NewError(ErrConfiguration, message, nil)
}

func AuthenticationError(message string) error {
	return NewError(ErrAuthentication, message, nil)
}

func DecodeError(message string, cause error) error {
	return NewError(ErrDecode, message, cause)
}

func CorrelationError(message string) error {
	return NewError(ErrCorrelation, message, nil)
}

func NotFoundError(message string, cause error) error {
	return NewError(ErrNotFound, message, cause)
}

func DuplicateError(message string, cause error) error {
	return NewError(ErrDuplicate, message, cause)
}

func StoreError(message string, cause error) error {
	return NewError(ErrStore, message, cause)
}

// KindOf returns the kind of err. The outermost *Error wins; unclassified
// errors count as store failures.
func KindOf(err error) error {
	if err == nil {
		return nil
	}
	var werr *Error
	if errors.As(err, &werr) && werr.Kind != nil {
		return werr.Kind
	}
	for _, k := range kinds {
		if errors.Is(err, k) {
			return k
		}
	}
	return ErrStore
}

// Message returns the provider-facing message of err.
func Message(err error) string {
	var werr *Error
	if errors.As(err, &werr) && werr.Message != "" {
		return werr.Message
	}
	return err.Error()
}
