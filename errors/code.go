package errors

import (
	stderrors "errors"
	"net/http"
)

func BadRequest() ErrorEnricher   { return WithCode(http.StatusBadRequest) }
func Unauthorized() ErrorEnricher { return WithCode(http.StatusUnauthorized) }
func Forbidden() ErrorEnricher    { return WithCode(http.StatusForbidden) }
func NotFound() ErrorEnricher     { return WithCode(http.StatusNotFound) }
func Conflict() ErrorEnricher     { return WithCode(http.StatusConflict) }

// Kinds are the machine readable error categories sent to clients.
const (
	KindValidation      = "validation"
	KindUnauthenticated = "unauthenticated"
	KindForbidden       = "forbidden"
	KindNotFound        = "not_found"
	KindConflict        = "conflict"
	KindInternal        = "internal"
)

// KindOf maps a status code onto its kind. Unknown codes are internal.
func KindOf(code int) string {
	switch code {
	case http.StatusBadRequest:
		return KindValidation
	case http.StatusUnauthorized:
		return KindUnauthenticated
	case http.StatusForbidden:
		return KindForbidden
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusConflict:
		return KindConflict
	}
	return KindInternal
}

// Code returns the status code of the first Error in the chain of err,
// DefaultCode if there is none.
func Code(err error) int {
	var e Error
	if stderrors.As(err, &e) {
		return e.Code()
	}
	return DefaultCode
}

// Kind returns the kind of err, see KindOf.
func Kind(err error) string {
	return KindOf(Code(err))
}
