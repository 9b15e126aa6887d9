package adapter

import (
	"context"
	"time"

	"github.com/iudanet/matchsync/pkg/api"
	"github.com/iudanet/matchsync/pkg/models"
)

// EventOption sets an optional field of an event
type EventOption func(*api.Event)

// WithUserName sets the user that made the change
func WithUserName(name string) EventOption {
	return func(e *api.Event) {
		e.UserName = name
	}
}

// WithTimeStamp sets when the change was made. It is sent in UTC.
func WithTimeStamp(t time.Time) EventOption {
	return func(e *api.Event) {
		e.TimeStamp = t.UTC()
	}
}

// WithExternalReference sets a reference to the change in the client system
func WithExternalReference(ref string) EventOption {
	return func(e *api.Event) {
		e.ExternalReference = ref
	}
}

// WithData attaches the changed data
func WithData(data *models.Data) EventOption {
	return func(e *api.Event) {
		e.Data = data
	}
}

// EventPublisher tells the hub about local changes of one client
type EventPublisher struct {
	conn       *Connection
	clientName string
}

// Events returns a publisher for clientName
func (c *Connection) Events(clientName string) *EventPublisher {
	return &EventPublisher{conn: c, clientName: clientName}
}

func (p *EventPublisher) publish(ctx context.Context, ev *api.Event, opts []EventOption) error {
	for _, opt := range opts {
		opt(ev)
	}
	return p.conn.SendEvent(ctx, ev)
}

// SendUpdated reports that an object was changed
func (p *EventPublisher) SendUpdated(ctx context.Context, entityName, keyValue string, opts ...EventOption) error {
	ev := api.NewEvent(api.EventUpdated, models.NewKey(p.clientName, entityName, keyValue))
	return p.publish(ctx, ev, opts)
}

// SendDeleted reports that an object was removed
func (p *EventPublisher) SendDeleted(ctx context.Context, entityName, keyValue string, opts ...EventOption) error {
	ev := api.NewEvent(api.EventDeleted, models.NewKey(p.clientName, entityName, keyValue))
	return p.publish(ctx, ev, opts)
}

// SendMoved reports that an object got a new key value
func (p *EventPublisher) SendMoved(ctx context.Context, entityName, oldKeyValue, newKeyValue string, opts ...EventOption) error {
	ev := api.NewEvent(api.EventMoved, models.NewKey(p.clientName, entityName, oldKeyValue))
	ev.NewID = newKeyValue
	return p.publish(ctx, ev, opts)
}
