// Package apperr defines the error taxonomy exposed by the API: every error
// that reaches a handler is either one of these kinds or treated as internal.
package apperr

import "fmt"

// Kind classifies an error into the HTTP-facing taxonomy.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindUnauthorized
	KindNotFound
)

// FieldError is a single validation violation on one payload field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error carries a kind, a client-safe message and optional field violations.
type Error struct {
	Kind    Kind
	Message string
	Fields  []FieldError
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Validation builds a ValidationFailed error from field violations.
func Validation(fields []FieldError) *Error {
	return &Error{Kind: KindValidation, Message: "Validation failed", Fields: fields}
}

// Conflict reports a uniqueness violation, such as a duplicate email.
func Conflict(msg string) *Error { return &Error{Kind: KindConflict, Message: msg} }

// Unauthorized reports missing or invalid credentials.
func Unauthorized(msg string) *Error { return &Error{Kind: KindUnauthorized, Message: msg} }

// NotFound reports a resource that is missing or not owned by the caller.
// Both cases produce the same error so callers cannot tell them apart.
func NotFound(msg string) *Error { return &Error{Kind: KindNotFound, Message: msg} }

// Internal wraps an unexpected failure with a client-safe message.
func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}
