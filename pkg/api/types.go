package api

import (
	"errors"
	"fmt"
)

// ErrUnknownType is returned when a wire discriminator holds an unrecognized value
var ErrUnknownType = errors.New("unknown type")

// RequestType тип запроса от хаба
type RequestType string

// ResponseType тип ответа адаптера
type ResponseType string

// EventType тип события от адаптера
type EventType string

// ErrorType категория ошибки в ответе Failure
type ErrorType string

const (
	RequestCreate RequestType = "Create"
	RequestUpdate RequestType = "Update"
	RequestGet    RequestType = "Get"
)

const (
	ResponseSuccess ResponseType = "Success"
	ResponseFailure ResponseType = "Failure"
)

const (
	EventUpdated EventType = "Updated"
	EventDeleted EventType = "Deleted"
	EventMoved   EventType = "Moved"
)

const (
	ErrorNotFound                     ErrorType = "NotFound"
	ErrorBadRequest                   ErrorType = "BadRequest"
	ErrorForbidden                    ErrorType = "Forbidden"
	ErrorNotImplemented               ErrorType = "NotImplemented"
	ErrorFrozen                       ErrorType = "Frozen"
	ErrorNotAcceptable                ErrorType = "NotAcceptable"
	ErrorGone                         ErrorType = "Gone"
	ErrorMoved                        ErrorType = "Moved"
	ErrorHasBeenUpdated               ErrorType = "HasBeenUpdated"
	ErrorInternalServerError          ErrorType = "InternalServerError"
	ErrorAdapterDidNotHandleException ErrorType = "AdapterDidNotHandleException"
)

// ErrorTypes lists every error type in wire order
var ErrorTypes = []ErrorType{
	ErrorNotFound,
	ErrorBadRequest,
	ErrorForbidden,
	ErrorNotImplemented,
	ErrorFrozen,
	ErrorNotAcceptable,
	ErrorGone,
	ErrorMoved,
	ErrorHasBeenUpdated,
	ErrorInternalServerError,
	ErrorAdapterDidNotHandleException,
}

// ParseRequestType translates a wire string
func ParseRequestType(s string) (RequestType, error) {
	switch t := RequestType(s); t {
	case RequestCreate, RequestUpdate, RequestGet:
		return t, nil
	default:
		return "", fmt.Errorf("%w: request type %q", ErrUnknownType, s)
	}
}

// ParseResponseType translates a wire string
func ParseResponseType(s string) (ResponseType, error) {
	switch t := ResponseType(s); t {
	case ResponseSuccess, ResponseFailure:
		return t, nil
	default:
		return "", fmt.Errorf("%w: response type %q", ErrUnknownType, s)
	}
}

// ParseEventType translates a wire string
func ParseEventType(s string) (EventType, error) {
	switch t := EventType(s); t {
	case EventUpdated, EventDeleted, EventMoved:
		return t, nil
	default:
		return "", fmt.Errorf("%w: event type %q", ErrUnknownType, s)
	}
}

// ParseErrorType translates a wire string
func ParseErrorType(s string) (ErrorType, error) {
	for _, t := range ErrorTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: error type %q", ErrUnknownType, s)
}

func (t RequestType) String() string  { return string(t) }
func (t ResponseType) String() string { return string(t) }
func (t EventType) String() string    { return string(t) }
func (t ErrorType) String() string    { return string(t) }

// MarshalText implements encoding.TextMarshaler
func (t RequestType) MarshalText() ([]byte, error) {
	if _, err := ParseRequestType(string(t)); err != nil {
		return nil, err
	}
	return []byte(t), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (t *RequestType) UnmarshalText(b []byte) error {
	v, err := ParseRequestType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (t ResponseType) MarshalText() ([]byte, error) {
	if _, err := ParseResponseType(string(t)); err != nil {
		return nil, err
	}
	return []byte(t), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (t *ResponseType) UnmarshalText(b []byte) error {
	v, err := ParseResponseType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (t EventType) MarshalText() ([]byte, error) {
	if _, err := ParseEventType(string(t)); err != nil {
		return nil, err
	}
	return []byte(t), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (t *EventType) UnmarshalText(b []byte) error {
	v, err := ParseEventType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (t ErrorType) MarshalText() ([]byte, error) {
	if _, err := ParseErrorType(string(t)); err != nil {
		return nil, err
	}
	return []byte(t), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (t *ErrorType) UnmarshalText(b []byte) error {
	v, err := ParseErrorType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
