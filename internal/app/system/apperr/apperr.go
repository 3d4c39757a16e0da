// Package apperr is the error taxonomy shared by stores and handlers.
//
// Handlers classify failures into a Kind; respond.Error turns the Kind into
// the HTTP status and envelope. Raw driver errors stay in Err and are only
// ever surfaced to clients as a message string.
package apperr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies an error for the HTTP boundary.
type Kind int

const (
	Internal Kind = iota
	Validation
	NotFound
	Conflict
	Precondition
	RateLimited
)

// Status returns the HTTP status code for k.
func (k Kind) Status() int {
	switch k {
	case Validation, Precondition:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	case RateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified error.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Invalid reports a missing or malformed request field.
func Invalid(format string, args ...any) *Error {
	return &Error{Kind: Validation, Message: fmt.Sprintf(format, args...)}
}

// MissingFields names every missing required field.
func MissingFields(fields ...string) *Error {
	return &Error{Kind: Validation, Message: "Missing required field(s): " + strings.Join(fields, ", ")}
}

// NotFoundf reports an absent document.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Kind: NotFound, Message: fmt.Sprintf(format, args...)}
}

// Conflictf reports a duplicate key or a terminal-state violation.
func Conflictf(format string, args ...any) *Error {
	return &Error{Kind: Conflict, Message: fmt.Sprintf(format, args...)}
}

// Preconditionf reports a request that cannot apply to the current state.
func Preconditionf(format string, args ...any) *Error {
	return &Error{Kind: Precondition, Message: fmt.Sprintf(format, args...)}
}

// Wrap marks err as an internal failure of operation.
func Wrap(err error, message string) *Error {
	return &Error{Kind: Internal, Message: message, Err: err}
}

// From classifies any error. Classified errors pass through; context
// expiry and everything else become Internal.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: Internal, Message: "Request timed out", Err: err}
	}
	return &Error{Kind: Internal, Message: "Internal server error", Err: err}
}

// Is reports whether err is classified as k.
func Is(err error, k Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == k
}
