package apperr

import (
	"errors"
	"net/http"
)

// Error carries an HTTP status alongside the user-facing message. Err holds
// the underlying cause for logs only; it never reaches the response body.
type Error struct {
	Code int
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e *Error) Unwrap() error { return e.Err }

func BadRequest(msg string) error   { return &Error{Code: http.StatusBadRequest, Msg: msg} }
func Unauthorized(msg string) error { return &Error{Code: http.StatusUnauthorized, Msg: msg} }
func Forbidden(msg string) error    { return &Error{Code: http.StatusForbidden, Msg: msg} }
func NotFound(msg string) error     { return &Error{Code: http.StatusNotFound, Msg: msg} }

// Conflict maps to 400: duplicate email is reported the same way the other
// input errors are.
func Conflict(msg string) error { return &Error{Code: http.StatusBadRequest, Msg: msg} }

func Internal(msg string, err error) error {
	return &Error{Code: http.StatusInternalServerError, Msg: msg, Err: err}
}

// Status resolves any error to the HTTP status it should produce.
func Status(err error) int {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code
	}
	return http.StatusInternalServerError
}

// Message is the user-facing text for err. Non-*Error values collapse to a
// generic message so internal detail cannot leak.
func Message(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Msg
	}
	return "Server error. Please try again."
}

// Cause is the error the server log should carry: the wrapped underlying
// failure when there is one, err itself otherwise.
func Cause(err error) error {
	var ae *Error
	if errors.As(err, &ae) && ae.Err != nil {
		return ae.Err
	}
	return err
}
