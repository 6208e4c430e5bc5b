package errors

import (
	"fmt"
)

// Error is an error carrying an http status code. The code decides the kind
// sent to clients, the reason refines it.
type Error interface {
	error

	Code() int
	Kind() string
	Reason() string
	Message() string
	Cause() error
}

// DefaultCode is used when no code is given: 500, Internal Server Error.
var DefaultCode = 500

type codedError struct {
	code   int
	reason string
	msg    string
	cause  error
}

func (err *codedError) Error() string {
	if err.cause == nil {
		return err.msg
	}

	return fmt.Sprintf("%s: %v", err.msg, err.cause)
}

func (err *codedError) Code() int {
	return err.code
}

func (err *codedError) Kind() string {
	return KindOf(err.code)
}

// Reason is an optional, more specific identifier than the kind, e.g.
// already_subscribed for a conflict.
func (err *codedError) Reason() string {
	return err.reason
}

func (err *codedError) Message() string {
	return err.msg
}

func (err *codedError) Cause() error {
	return err.cause
}

func (err *codedError) Unwrap() error {
	return err.cause
}

// ErrorEnricher sets one property of an error. Enrichers return nil for a nil
// error and turn any other error into an Error.
type ErrorEnricher func(error) error

// coded returns err itself when it was built by this package, a copy with the
// default code otherwise.
func coded(err error) *codedError {
	if err, ok := err.(*codedError); ok {
		return err
	}
	return &codedError{msg: err.Error(), code: DefaultCode}
}

func WithCode(code int) ErrorEnricher {
	return func(err error) error {
		if err == nil {
			return nil
		}

		e := coded(err)
		e.code = code
		return e
	}
}

func WithReason(reason string) ErrorEnricher {
	return func(err error) error {
		if err == nil {
			return nil
		}

		e := coded(err)
		e.reason = reason
		return e
	}
}

// WithCause sets the error wrapped by err. A plain err takes the code of the
// cause, an Error keeps its own.
func WithCause(cause error) ErrorEnricher {
	return func(err error) error {
		if err == nil {
			return nil
		}

		_, wasCoded := err.(*codedError)
		e := coded(err)
		e.cause = cause
		if !wasCoded {
			e.code = Code(cause)
		}
		return e
	}
}

// New returns an error with msg and DefaultCode, then applies fs in order.
func New(msg string, fs ...ErrorEnricher) error {
	var err error = &codedError{
		msg:  msg,
		code: DefaultCode,
	}

	for _, f := range fs {
		err = f(err)
	}

	return err
}
