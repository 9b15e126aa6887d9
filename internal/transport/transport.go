// Package transport describes the publish/subscribe broker the adapter runs on.
//
// A topic fans messages out to subscriptions. A subscription may carry a
// Filter over message properties. Receiving is peek-lock: a received message
// stays invisible until it is completed, abandoned, dead-lettered or its lock
// expires.
package transport

import (
	"context"
	"time"
)

//go:generate moq -out transport_mock.go . Sender Receiver Broker

// Значения по умолчанию для подписок
const (
	DefaultLockDuration     = 60 * time.Second
	DefaultMaxDeliveryCount = 10
)

// Message is one received message
type Message struct {
	EnqueuedAt    time.Time
	Properties    map[string]string
	ID            string
	LockToken     string // LockToken идентифицирует текущую блокировку у брокера
	Body          []byte
	DeliveryCount int
}

// Property returns a routing property, "" when missing
func (m *Message) Property(name string) string {
	return m.Properties[name]
}

// EntityStatus is the status of a subscription
type EntityStatus string

const (
	StatusActive   EntityStatus = "Active"
	StatusDisabled EntityStatus = "Disabled"
)

// SubscriptionDescription describes a subscription and its counters
type SubscriptionDescription struct {
	Filter                 *Filter       `json:"filter,omitempty" yaml:"filter,omitempty"`
	Topic                  string        `json:"topic" yaml:"topic"`
	Name                   string        `json:"name" yaml:"name"`
	Status                 EntityStatus  `json:"status" yaml:"status"`
	LockDuration           time.Duration `json:"lock_duration" yaml:"lock_duration"`
	MaxDeliveryCount       int           `json:"max_delivery_count" yaml:"max_delivery_count"`
	ActiveMessageCount     int64         `json:"active_message_count" yaml:"active_message_count"`
	DeadLetterMessageCount int64         `json:"dead_letter_message_count" yaml:"dead_letter_message_count"`
}

// WithDefaults fills zero fields with defaults
func (d SubscriptionDescription) WithDefaults() SubscriptionDescription {
	if d.LockDuration <= 0 {
		d.LockDuration = DefaultLockDuration
	}
	if d.MaxDeliveryCount <= 0 {
		d.MaxDeliveryCount = DefaultMaxDeliveryCount
	}
	if d.Status == "" {
		d.Status = StatusActive
	}
	return d
}

// TopicDescription describes a topic
type TopicDescription struct {
	Name              string `json:"name" yaml:"name"`
	SubscriptionCount int    `json:"subscription_count" yaml:"subscription_count"`
}

// Sender publishes messages to one topic
type Sender interface {
	Send(ctx context.Context, body []byte, properties map[string]string) error
}

// Receiver reads from one subscription in peek-lock mode
type Receiver interface {
	// Receive waits up to wait for a message. It returns (nil, nil) when none arrived.
	Receive(ctx context.Context, wait time.Duration) (*Message, error)
	// Complete removes the message. ErrLockLost means the lock expired first.
	Complete(ctx context.Context, msg *Message) error
	// Abandon releases the lock so the message is redelivered
	Abandon(ctx context.Context, msg *Message) error
	// DeadLetter moves the message to the dead-letter queue of the subscription
	DeadLetter(ctx context.Context, msg *Message, reason string) error
	Close() error
}

// Administrator provisions topics and subscriptions
type Administrator interface {
	CreateTopicIfMissing(ctx context.Context, topic string) error
	GetTopic(ctx context.Context, topic string) (*TopicDescription, error)
	DeleteTopic(ctx context.Context, topic string) error

	// CreateSubscriptionIfMissing creates the subscription, or returns the existing one unchanged
	CreateSubscriptionIfMissing(ctx context.Context, desc SubscriptionDescription) (*SubscriptionDescription, error)
	GetSubscription(ctx context.Context, topic, name string) (*SubscriptionDescription, error)
	UpdateSubscription(ctx context.Context, desc SubscriptionDescription) error
	DeleteSubscription(ctx context.Context, topic, name string) error
	ListSubscriptions(ctx context.Context, topic string) ([]SubscriptionDescription, error)

	// DeadLetters returns dead-lettered messages, removing them when purge is set
	DeadLetters(ctx context.Context, topic, name string, purge bool) ([]*Message, error)
}

// Broker is a full broker connection
type Broker interface {
	Administrator
	Sender(topic string) Sender
	Receiver(topic, subscription string) Receiver
	Close() error
}
