// Package apperr defines the user-visible error conditions of the catalog.
//
// Every failure that reaches the HTTP layer is an *Error tagged with a Kind.
// The error responder dispatches on the Kind and renders with the carried
// Status; a zero Status means "let the renderer pick its default".
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type Kind string

const (
	KindValidation    Kind = "validation"
	KindNotFound      Kind = "not_found"
	KindEmptyResult   Kind = "empty_result"
	KindRouteNotFound Kind = "route_not_found"
	KindInternal      Kind = "internal"
)

// FieldError is a single field-level rejection.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"` // e.g. "required", "invalid"
	Message string `json:"message"`
}

type Error struct {
	Kind    Kind
	Status  int
	Message string
	Fields  []FieldError
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	if len(e.Fields) > 0 {
		msgs := make([]string, 0, len(e.Fields))
		for _, f := range e.Fields {
			msgs = append(msgs, f.Message)
		}
		return fmt.Sprintf("%s: %s", e.Message, strings.Join(msgs, "; "))
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error by Kind, so errors.Is(err, &Error{Kind: KindNotFound}) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

// FieldMap indexes field errors by field name for templates.
func (e *Error) FieldMap() map[string]string {
	m := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		if _, exists := m[f.Field]; !exists {
			m[f.Field] = f.Message
		}
	}
	return m
}

// --- Constructors ---

func Validation(fields ...FieldError) *Error {
	return &Error{Kind: KindValidation, Status: http.StatusUnprocessableEntity, Message: "Validation error", Fields: fields}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Status: http.StatusNotFound, Message: message}
}

// EmptyResult carries no status: the error page renders with the default 200.
func EmptyResult(message string) *Error {
	return &Error{Kind: KindEmptyResult, Message: message}
}

func RouteNotFound() *Error {
	return &Error{Kind: KindRouteNotFound, Status: http.StatusNotFound, Message: "Page not found"}
}

func Internal(err error, message string) *Error {
	return &Error{Kind: KindInternal, Status: http.StatusInternalServerError, Message: message, Err: err}
}

// --- Inspection ---

// As returns the *Error in err's chain, if any.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf returns the Kind of err, or KindInternal for untagged errors.
func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.Kind
	}
	return KindInternal
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool {
	return KindOf(err) == KindValidation
}

// Wrap tags an arbitrary error as internal unless it already carries a kind.
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}
	if e, ok := As(err); ok {
		return e
	}
	return Internal(err, message)
}
