// Package adapter hosts the dispatch engine on a broker connection.
//
// A Connection is created once per process and owns the senders of the
// Request, Response and Event topics. Subscriptions, the event publisher
// and the hub helper all share it.
package adapter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/iudanet/matchsync/internal/retry"
	"github.com/iudanet/matchsync/internal/transport"
	"github.com/iudanet/matchsync/internal/transport/signing"
	"github.com/iudanet/matchsync/pkg/api"
)

// Connection is the broker connection of an adapter or a hub
type Connection struct {
	broker    transport.Broker
	logger    *slog.Logger
	signer    *signing.Signer
	requests  transport.Sender
	responses transport.Sender
	events    transport.Sender
	policy    retry.Policy
}

// Option configures a Connection
type Option func(*Connection)

// WithRetryPolicy sets the policy for transient broker failures
func WithRetryPolicy(policy retry.Policy) Option {
	return func(c *Connection) {
		c.policy = policy
	}
}

// WithSigner signs sent messages and verifies received ones
func WithSigner(signer *signing.Signer) Option {
	return func(c *Connection) {
		c.signer = signer
	}
}

// Connect wraps broker and makes sure the Request, Response and Event topics exist
func Connect(ctx context.Context, broker transport.Broker, logger *slog.Logger, opts ...Option) (*Connection, error) {
	c := &Connection{
		logger: logger,
		policy: retry.DefaultPolicy(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.broker = transport.NewRetryingBroker(broker, c.policy)

	for _, topic := range []string{api.TopicRequest, api.TopicResponse, api.TopicEvent} {
		if err := c.broker.CreateTopicIfMissing(ctx, topic); err != nil {
			return nil, fmt.Errorf("failed to create topic %s: %w", topic, err)
		}
	}

	c.requests = c.sender(api.TopicRequest)
	c.responses = c.sender(api.TopicResponse)
	c.events = c.sender(api.TopicEvent)

	logger.Debug("Connected to broker", "signed", c.signer != nil)
	return c, nil
}

func (c *Connection) sender(topic string) transport.Sender {
	s := c.broker.Sender(topic)
	if c.signer != nil {
		s = c.signer.Sender(s)
	}
	return s
}

func (c *Connection) receiver(topic, subscription string) transport.Receiver {
	r := c.broker.Receiver(topic, subscription)
	if c.signer != nil {
		r = c.signer.Receiver(r, c.logger)
	}
	return r
}

// Broker returns the retrying broker behind the connection
func (c *Connection) Broker() transport.Broker {
	return c.broker
}

// Responses returns the sender of the Response topic
func (c *Connection) Responses() transport.Sender {
	return c.responses
}

// Logger returns the connection logger
func (c *Connection) Logger() *slog.Logger {
	return c.logger
}

type message interface {
	Validate() error
	Properties() map[string]string
}

func send(ctx context.Context, s transport.Sender, msg message) error {
	body, err := api.Encode(msg)
	if err != nil {
		return err
	}
	return s.Send(ctx, body, msg.Properties())
}

// SendRequest publishes a request on the Request topic
func (c *Connection) SendRequest(ctx context.Context, req *api.Request) error {
	if err := send(ctx, c.requests, req); err != nil {
		return fmt.Errorf("failed to send request %s: %w", req.ProcessID, err)
	}
	c.logger.Debug("Request sent", "process_id", req.ProcessID, "key", req.Key.String())
	return nil
}

// SendResponse publishes a response on the Response topic
func (c *Connection) SendResponse(ctx context.Context, resp *api.Response) error {
	if err := send(ctx, c.responses, resp); err != nil {
		return fmt.Errorf("failed to send response %s: %w", resp.ProcessID, err)
	}
	return nil
}

// SendEvent publishes an event on the Event topic
func (c *Connection) SendEvent(ctx context.Context, ev *api.Event) error {
	if err := send(ctx, c.events, ev); err != nil {
		return fmt.Errorf("failed to send event: %w", err)
	}
	c.logger.Debug("Event sent", "event_type", ev.EventType, "key", ev.Key.String())
	return nil
}

// Close closes the broker
func (c *Connection) Close() error {
	return c.broker.Close()
}
