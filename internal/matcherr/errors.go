// Package matcherr defines the closed set of domain failures a handler may return.
// Each failure maps to one api.ErrorType on the wire.
package matcherr

import (
	"errors"
	"fmt"

	"github.com/iudanet/matchsync/pkg/api"
	"github.com/iudanet/matchsync/pkg/models"
)

// Error is a categorized handler failure
type Error struct {
	Err         error        // Err исходная ошибка, если есть
	NewData     *models.Data // NewData текущие данные для HasBeenUpdated
	Type        api.ErrorType
	Message     string
	NewKeyValue string // NewKeyValue новое значение ключа для Moved
	NewCheckSum string // NewCheckSum текущая контрольная сумма для HasBeenUpdated
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Type)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error by type, so errors.Is(err, &Error{Type: api.ErrorNotFound}) works
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Message == "" && t.Type == e.Type
}

// New creates an error of the given type. format is a fmt format string;
// without args it is used verbatim, so text with a literal % survives.
// A type outside api.ErrorTypes becomes AdapterDidNotHandleException.
func New(errorType api.ErrorType, format string, args ...any) *Error {
	message := format
	if len(args) > 0 {
		message = fmt.Sprintf(format, args...)
	}
	if _, err := api.ParseErrorType(string(errorType)); err != nil {
		return &Error{
			Type:    api.ErrorAdapterDidNotHandleException,
			Message: fmt.Sprintf("unknown error type %q: %s", errorType, message),
			Err:     err,
		}
	}
	return &Error{Type: errorType, Message: message}
}

// NotFound reports that no object exists for the key
func NotFound(key models.Key) *Error {
	return New(api.ErrorNotFound, "The object %s was not found.", key)
}

// BadRequest reports a request the adapter cannot accept
func BadRequest(format string, args ...any) *Error {
	return New(api.ErrorBadRequest, format, args...)
}

// Forbidden reports an operation not allowed for the object
func Forbidden(format string, args ...any) *Error {
	return New(api.ErrorForbidden, format, args...)
}

// NotImplemented reports a request type the adapter does not support
func NotImplemented(format string, args ...any) *Error {
	return New(api.ErrorNotImplemented, format, args...)
}

// Frozen reports an object that temporarily cannot be changed
func Frozen(format string, args ...any) *Error {
	return New(api.ErrorFrozen, format, args...)
}

// NotAcceptable reports data the client refuses to store
func NotAcceptable(format string, args ...any) *Error {
	return New(api.ErrorNotAcceptable, format, args...)
}

// Gone reports an object that has been permanently removed
func Gone(key models.Key) *Error {
	return New(api.ErrorGone, "The object %s/%s/%s has been permanently removed.",
		key.ClientName, key.EntityName, key.Value)
}

// Moved reports that the object now lives under a new key value
func Moved(oldKey models.Key, newKeyValue string) *Error {
	e := New(api.ErrorMoved, "Redirection for %s to new key value %s", oldKey, newKeyValue)
	e.NewKeyValue = newKeyValue
	return e
}

// HasBeenUpdated reports that the stored object changed since the hub read it.
// current may be nil when only the checksum is known.
func HasBeenUpdated(newCheckSum string, current *models.Data) *Error {
	e := New(api.ErrorHasBeenUpdated, "The object has been updated, current check sum is %s", newCheckSum)
	e.NewCheckSum = newCheckSum
	e.NewData = current
	return e
}

// InternalServerError wraps a failure of the client system itself
func InternalServerError(err error) *Error {
	return &Error{Type: api.ErrorInternalServerError, Message: fmt.Sprintf("%+v", err), Err: err}
}

// Wrap attaches a cause to a categorized error
func Wrap(errorType api.ErrorType, err error, format string, args ...any) *Error {
	e := New(errorType, format, args...)
	e.Err = err
	return e
}

// As extracts *Error from an error chain
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// TypeOf returns the error type, or "" for errors outside the taxonomy
func TypeOf(err error) api.ErrorType {
	if e, ok := As(err); ok {
		return e.Type
	}
	return ""
}
