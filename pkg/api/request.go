package api

import (
	"fmt"

	"github.com/iudanet/matchsync/pkg/models"
)

// Request представляет запрос хаба к адаптеру
type Request struct {
	Data        *models.Data `json:"data,omitempty"` // Data для Create и Update
	Key         models.Key   `json:"key"`
	RequestType RequestType  `json:"request_type"`
	ProcessID   string       `json:"process_id"` // ProcessID возвращается в ответе без изменений
}

// NewRequest creates a request
func NewRequest(requestType RequestType, processID string, key models.Key, data *models.Data) *Request {
	return &Request{
		RequestType: requestType,
		ProcessID:   processID,
		Key:         key,
		Data:        data,
	}
}

// Validate checks mandatory fields
func (r *Request) Validate() error {
	if _, err := ParseRequestType(string(r.RequestType)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidMessage, err)
	}
	if r.ProcessID == "" {
		return fmt.Errorf("%w: process id is empty", ErrInvalidMessage)
	}
	if r.Key.ClientName == "" || r.Key.EntityName == "" {
		return fmt.Errorf("%w: client and entity names are mandatory", ErrInvalidMessage)
	}
	if r.RequestType != RequestCreate && r.Key.Value == "" {
		return fmt.Errorf("%w: key value is mandatory for %s", ErrInvalidMessage, r.RequestType)
	}
	return nil
}

// Properties returns the routing properties sent alongside the body
func (r *Request) Properties() map[string]string {
	return map[string]string{
		PropertyRequestType: string(r.RequestType),
		PropertyClientName:  r.Key.ClientName,
		PropertyEntityName:  r.Key.EntityName,
	}
}

func (r *Request) String() string {
	return fmt.Sprintf("[Request %s %s (%s)]", r.RequestType, r.Key, r.ProcessID)
}
