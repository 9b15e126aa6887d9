package api

import (
	"fmt"
	"time"

	"github.com/iudanet/matchsync/pkg/models"
)

// Event сообщает хабу об изменении объекта на стороне клиента
type Event struct {
	TimeStamp         time.Time    `json:"time_stamp,omitzero"`
	Data              *models.Data `json:"data,omitempty"`
	Key               models.Key   `json:"key"` // Key для Moved - старый ключ
	EventType         EventType    `json:"event_type"`
	NewID             string       `json:"new_id,omitempty"` // NewID новое значение ключа для Moved
	UserName          string       `json:"user_name,omitempty"`
	ExternalReference string       `json:"external_reference,omitempty"`
}

// NewEvent creates an event
func NewEvent(eventType EventType, key models.Key) *Event {
	return &Event{EventType: eventType, Key: key}
}

// Validate checks mandatory fields
func (e *Event) Validate() error {
	if _, err := ParseEventType(string(e.EventType)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidMessage, err)
	}
	if err := e.Key.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidMessage, err)
	}
	if e.EventType == EventMoved && e.NewID == "" {
		return fmt.Errorf("%w: moved event without new id", ErrInvalidMessage)
	}
	return nil
}

// Properties returns the routing properties sent alongside the body
func (e *Event) Properties() map[string]string {
	return map[string]string{
		PropertyEventType:  string(e.EventType),
		PropertyClientName: e.Key.ClientName,
		PropertyEntityName: e.Key.EntityName,
	}
}

func (e *Event) String() string {
	if e.NewID != "" {
		return fmt.Sprintf("[Event %s %s (to %s)]", e.EventType, e.Key, e.NewID)
	}
	return fmt.Sprintf("[Event %s %s]", e.EventType, e.Key)
}
