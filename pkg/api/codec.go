package api

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidMessage indicates a message that decodes but misses mandatory fields
var ErrInvalidMessage = errors.New("invalid message")

type validator interface {
	Validate() error
}

// Encode serializes a message after validating it
func Encode(msg validator) ([]byte, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	b, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %T: %w", msg, err)
	}
	return b, nil
}

func decode[T any, PT interface {
	*T
	validator
}](body []byte) (*T, error) {
	var v T
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %T: %w", v, err)
	}
	if err := PT(&v).Validate(); err != nil {
		return nil, err
	}
	return &v, nil
}

// DecodeRequest parses and validates a Request body
func DecodeRequest(body []byte) (*Request, error) {
	return decode[Request](body)
}

// DecodeResponse parses and validates a Response body
func DecodeResponse(body []byte) (*Response, error) {
	return decode[Response](body)
}

// DecodeEvent parses and validates an Event body
func DecodeEvent(body []byte) (*Event, error) {
	return decode[Event](body)
}
