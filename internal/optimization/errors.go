package optimization

import (
	"errors"
	"fmt"
)

// Kind classifies optimization errors.
type Kind string

const (
	// KindInvalidConfiguration marks schedule parameters outside the legal
	// input ranges.
	KindInvalidConfiguration Kind = "invalid_configuration"

	// KindInternal marks wrapped failures inside the solver.
	KindInternal Kind = "internal"
)

// ErrInvalidConfiguration is the sentinel matched by errors.Is for
// configuration rejections.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Error represents an optimization error with operation and component
// context that can be wrapped with additional information.
type Error struct {
	// Kind classifies the error.
	Kind Kind
	// Message describes the error that occurred.
	Message string
	// Op is the operation that caused the error.
	Op string
	// Component is the component where the error occurred.
	Component string
	// Err is the underlying error that triggered this one, if any.
	Err error
}

// Error returns the string representation of the error.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	var prefix string
	switch {
	case e.Component != "" && e.Op != "":
		prefix = fmt.Sprintf("%s: %s", e.Component, e.Op)
	case e.Component != "":
		prefix = e.Component
	case e.Op != "":
		prefix = e.Op
	}

	msg := e.Message
	if e.Err != nil {
		if msg != "" {
			msg = fmt.Sprintf("%s: %v", msg, e.Err)
		} else {
			msg = e.Err.Error()
		}
	}

	if prefix != "" {
		return fmt.Sprintf("%s: %s", prefix, msg)
	}
	return msg
}

// Unwrap returns the underlying error, if any. Invalid-configuration errors
// unwrap to ErrInvalidConfiguration so callers can match with errors.Is.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	if e.Err == nil && e.Kind == KindInvalidConfiguration {
		return ErrInvalidConfiguration
	}
	return e.Err
}

// WithOperation adds operation context to the error.
func (e *Error) WithOperation(op string) *Error {
	e.Op = op
	return e
}

// WithComponent adds component context to the error.
func (e *Error) WithComponent(component string) *Error {
	e.Component = component
	return e
}

// NewInvalidConfiguration creates an invalid-configuration error with the
// given message.
func NewInvalidConfiguration(message string) *Error {
	return &Error{
		Kind:    KindInvalidConfiguration,
		Message: message,
	}
}

// NewErrorf creates a new internal optimization error with a formatted
// message.
func NewErrorf(format string, args ...interface{}) *Error {
	return &Error{
		Kind:    KindInternal,
		Message: fmt.Sprintf(format, args...),
	}
}

// WrapError wraps an existing error with additional context. If err is nil,
// WrapError returns nil.
func WrapError(err error, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		Kind:    KindInternal,
		Message: message,
		Err:     err,
	}
}

// IsInvalidConfiguration reports whether err is a configuration rejection.
func IsInvalidConfiguration(err error) bool {
	return errors.Is(err, ErrInvalidConfiguration)
}
