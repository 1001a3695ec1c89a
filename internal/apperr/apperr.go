// Package apperr defines the error taxonomy shared by all stores and
// handlers: not-found, validation, conflict and storage errors. Each
// error carries a stable kind tag, a message key resolved through i18n
// at the HTTP boundary, and optional field-level details.
package apperr

import (
	"fmt"
	"net/http"
)

// Kind is the stable error-kind tag surfaced to API clients.
type Kind string

const (
	KindNotFound   Kind = "not_found"
	KindValidation Kind = "validation"
	KindConflict   Kind = "conflict"
	KindStorage    Kind = "storage"
)

// Error is the application error type. MessageKey is an i18n catalog key,
// not a user-facing string; translation happens in the handler layer.
type Error struct {
	Kind       Kind
	MessageKey string
	Details    map[string]any
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.MessageKey, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.MessageKey)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Status maps the error kind to an HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// NotFound reports that the entity of the given kind does not exist.
// The message key follows the "<resource>_not_found" catalog convention.
func NotFound(resource, id string) *Error {
	return &Error{
		Kind:       KindNotFound,
		MessageKey: resource + "_not_found",
		Details:    map[string]any{"resource": resource, "id": id},
	}
}

// Validation reports a field-level constraint violation.
func Validation(key string, details map[string]any) *Error {
	return &Error{Kind: KindValidation, MessageKey: key, Details: details}
}

// Conflict reports a business-rule violation blocking the operation,
// e.g. deleting a property that still owns dependents.
func Conflict(key string, details map[string]any) *Error {
	return &Error{Kind: KindConflict, MessageKey: key, Details: details}
}

// Storage wraps an unexpected datastore or filesystem failure. It is the
// only kind treated as fatal for the current request.
func Storage(op string, err error) *Error {
	return &Error{
		Kind:       KindStorage,
		MessageKey: "storage_error",
		Details:    map[string]any{"operation": op},
		Err:        err,
	}
}
