// Package apperr defines the error taxonomy shared by every service in the
// claims engine. Handlers inspect errors with errors.As and translate them to
// HTTP status codes; anything outside the taxonomy is treated as internal.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

type Kind int

const (
	KindValidation Kind = iota
	KindNotFound
	KindAuthorization
	KindInternal
)

// Error carries the kind plus enough detail to identify the offending field
// or resource. Internal errors keep the cause server-side only.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Validation reports client-correctable input problems.
func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFound reports a missing tenant/claim/resource.
func NotFound(resource, id string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s %s not found", resource, id)}
}

// Authorization reports insufficient scopes. The message names only the
// minimal required scope set, nothing about what the caller holds.
func Authorization(required ...string) *Error {
	return &Error{Kind: KindAuthorization, Message: fmt.Sprintf("required scope: %s", strings.Join(required, " or "))}
}

// Internal wraps a store or sink failure. The cause is logged server-side;
// callers only ever see the opaque message.
func Internal(cause error) *Error {
	return &Error{Kind: KindInternal, Message: "internal error", cause: cause}
}

// KindOf returns the kind of err, or KindInternal when err is not an *Error.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool { return KindOf(err) == KindValidation }

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// IsAuthorization reports whether err is an authorization error.
func IsAuthorization(err error) bool { return KindOf(err) == KindAuthorization }
