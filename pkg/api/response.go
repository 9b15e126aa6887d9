package api

import (
	"fmt"

	"github.com/iudanet/matchsync/pkg/models"
)

// Response представляет ответ адаптера на Request.
// Для Failure заполняются ErrorType, Value и Message.
type Response struct {
	Data         *models.Data `json:"data,omitempty"`
	Key          models.Key   `json:"key"`
	ResponseType ResponseType `json:"response_type"`
	RequestType  RequestType  `json:"request_type"`
	ProcessID    string       `json:"process_id"`
	ErrorType    ErrorType    `json:"error_type,omitempty"`
	Value        string       `json:"value,omitempty"` // Value: старое значение ключа для Moved, текущая контрольная сумма для HasBeenUpdated
	Message      string       `json:"message,omitempty"`
}

// NewSuccessResponse creates a Success response correlated with the request
func NewSuccessResponse(req *Request) *Response {
	return &Response{
		ResponseType: ResponseSuccess,
		RequestType:  req.RequestType,
		ProcessID:    req.ProcessID,
		Key:          req.Key,
	}
}

// NewFailureResponse creates a Failure response correlated with the request
func NewFailureResponse(req *Request, errorType ErrorType, message string) *Response {
	return &Response{
		ResponseType: ResponseFailure,
		RequestType:  req.RequestType,
		ProcessID:    req.ProcessID,
		Key:          req.Key,
		ErrorType:    errorType,
		Message:      message,
	}
}

// IsSuccess reports whether the response is a Success
func (r *Response) IsSuccess() bool {
	return r.ResponseType == ResponseSuccess
}

// Validate checks mandatory fields
func (r *Response) Validate() error {
	if _, err := ParseResponseType(string(r.ResponseType)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidMessage, err)
	}
	if _, err := ParseRequestType(string(r.RequestType)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidMessage, err)
	}
	if r.ProcessID == "" {
		return fmt.Errorf("%w: process id is empty", ErrInvalidMessage)
	}
	switch r.ResponseType {
	case ResponseFailure:
		if _, err := ParseErrorType(string(r.ErrorType)); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidMessage, err)
		}
	case ResponseSuccess:
		if r.ErrorType != "" {
			return fmt.Errorf("%w: success response carries error type %s", ErrInvalidMessage, r.ErrorType)
		}
	}
	return nil
}

// Properties returns the routing properties sent alongside the body
func (r *Response) Properties() map[string]string {
	return map[string]string{
		PropertyResponseType: string(r.ResponseType),
		PropertyClientName:   r.Key.ClientName,
		PropertyEntityName:   r.Key.EntityName,
	}
}

func (r *Response) String() string {
	if r.IsSuccess() {
		return fmt.Sprintf("[Response %s %s %s (%s)]", r.ResponseType, r.RequestType, r.Key, r.ProcessID)
	}
	return fmt.Sprintf("[Response %s/%s %s %s (%s): %s]", r.ResponseType, r.ErrorType, r.RequestType, r.Key, r.ProcessID, r.Message)
}
