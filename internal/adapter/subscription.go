package adapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/iudanet/matchsync/internal/dispatch"
	"github.com/iudanet/matchsync/internal/retry"
	"github.com/iudanet/matchsync/internal/transport"
	"github.com/iudanet/matchsync/internal/validation"
	"github.com/iudanet/matchsync/pkg/api"
)

// ErrNoMatchingRequest is returned by ProcessOneMessage when no waiting request matches
var ErrNoMatchingRequest = errors.New("no matching request")

// SubscriptionOptions configures a new subscription. Zero values use broker defaults.
type SubscriptionOptions struct {
	LockDuration     time.Duration
	MaxDeliveryCount int
}

// Subscription receives the messages of one client (and optionally one entity) from a topic
type Subscription struct {
	conn     *Connection
	receiver transport.Receiver
	logger   *slog.Logger
	desc     transport.SubscriptionDescription
}

// Subscribe creates (if missing) the request subscription of a client and entity.
// An empty entityName subscribes to every entity of the client.
func (c *Connection) Subscribe(ctx context.Context, clientName, entityName string, opts SubscriptionOptions) (*Subscription, error) {
	return c.SubscribeTopic(ctx, api.TopicRequest, clientName, entityName, opts)
}

// SubscribeTopic creates (if missing) a subscription on topic filtered by client and entity.
// An empty clientName subscribes to everything (AllClients).
func (c *Connection) SubscribeTopic(ctx context.Context, topic, clientName, entityName string, opts SubscriptionOptions) (*Subscription, error) {
	desc, err := subscriptionDescription(topic, clientName, entityName, opts)
	if err != nil {
		return nil, err
	}

	s := &Subscription{
		conn:   c,
		desc:   desc,
		logger: c.logger.With("topic", topic, "subscription", desc.Name),
	}
	if err := s.Recreate(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func subscriptionDescription(topic, clientName, entityName string, opts SubscriptionOptions) (transport.SubscriptionDescription, error) {
	desc := transport.SubscriptionDescription{
		Topic:            topic,
		Name:             api.SubscriptionName(clientName, entityName),
		LockDuration:     opts.LockDuration,
		MaxDeliveryCount: opts.MaxDeliveryCount,
	}

	var conditions []transport.Condition
	if clientName != "" {
		if err := validation.ValidateName("client name", clientName); err != nil {
			return desc, err
		}
		conditions = append(conditions, transport.Equals(api.PropertyClientName, clientName))
	}
	if entityName != "" {
		if clientName == "" {
			return desc, fmt.Errorf("%w: entity %s without client", validation.ErrInvalidName, entityName)
		}
		if err := validation.ValidateName("entity name", entityName); err != nil {
			return desc, err
		}
		conditions = append(conditions, transport.Equals(api.PropertyEntityName, entityName))
	}
	if len(conditions) > 0 {
		desc.Filter = transport.NewFilter(conditions...)
	}
	return desc, nil
}

// Name returns the subscription name
func (s *Subscription) Name() string {
	return s.desc.Name
}

// Topic returns the topic name
func (s *Subscription) Topic() string {
	return s.desc.Topic
}

// Receiver returns the receiver of the subscription
func (s *Subscription) Receiver() transport.Receiver {
	return s.receiver
}

// Recreate creates the subscription if it was deleted and opens a new receiver
func (s *Subscription) Recreate(ctx context.Context) error {
	current, err := s.conn.broker.CreateSubscriptionIfMissing(ctx, s.desc)
	if err != nil {
		return fmt.Errorf("failed to create subscription %s/%s: %w", s.desc.Topic, s.desc.Name, err)
	}
	if s.receiver != nil {
		_ = s.receiver.Close()
	}
	s.receiver = s.conn.receiver(current.Topic, current.Name)
	s.logger.Debug("Subscription ready", "filter", current.Filter.String())
	return nil
}

// ProcessRequests runs engine over the subscription until ctx is cancelled
func (s *Subscription) ProcessRequests(ctx context.Context, engine *dispatch.Engine, opts dispatch.ServeOptions) error {
	return engine.Serve(ctx, s.receiver, opts)
}

// Run keeps ProcessRequests alive until ctx is cancelled. A deleted
// subscription is recreated; every failure doubles the pause before the
// next attempt, a session that handled messages resets it.
func (s *Subscription) Run(ctx context.Context, engine *dispatch.Engine, opts dispatch.ServeOptions, recovery *retry.Recovery) error {
	return recovery.Run(ctx, func(ctx context.Context) (bool, error) {
		before := engine.Stats().Received
		err := s.ProcessRequests(ctx, engine, opts)
		progressed := engine.Stats().Received > before

		if errors.Is(err, transport.ErrEntityNotFound) {
			s.logger.Warn("Subscription not found, recreating", slog.Any("error", err))
			if rerr := s.Recreate(ctx); rerr != nil {
				return progressed, errors.Join(err, rerr)
			}
		}
		return progressed, err
	})
}

// Expectation selects the request ProcessOneMessage should handle. Empty fields match anything.
type Expectation struct {
	RequestType api.RequestType
	ClientName  string
	EntityName  string
	KeyValue    string
}

// Matches reports whether req satisfies the expectation
func (e Expectation) Matches(req *api.Request) bool {
	if e.RequestType != "" && e.RequestType != req.RequestType {
		return false
	}
	// имена сравниваются без учета регистра, как в ключах
	if e.ClientName != "" && !strings.EqualFold(e.ClientName, req.Key.ClientName) {
		return false
	}
	if e.EntityName != "" && !strings.EqualFold(e.EntityName, req.Key.EntityName) {
		return false
	}
	return e.KeyValue == "" || e.KeyValue == req.Key.Value
}

type skipped struct {
	properties map[string]string
	body       []byte
}

// ProcessOneMessage handles the first waiting request that matches expect.
// Requests received before it are completed and sent again afterwards, so
// they stay available to other consumers. It does not block: when no
// waiting request matches, ErrNoMatchingRequest is returned.
func (s *Subscription) ProcessOneMessage(ctx context.Context, engine *dispatch.Engine, expect Expectation) (dispatch.Outcome, error) {
	var others []skipped
	defer func() {
		for _, m := range others {
			if err := s.conn.requests.Send(ctx, m.body, m.properties); err != nil {
				s.logger.Error("Failed to resend skipped request", slog.Any("error", err))
			}
		}
	}()

	for {
		msg, err := s.receiver.Receive(ctx, 0)
		if err != nil {
			return dispatch.OutcomeAbandoned, fmt.Errorf("failed to receive: %w", err)
		}
		if msg == nil {
			return dispatch.OutcomeAbandoned, ErrNoMatchingRequest
		}

		req, err := api.DecodeRequest(msg.Body)
		if err == nil && expect.Matches(req) {
			return engine.HandleMessage(ctx, s.receiver, msg), nil
		}

		if err := s.receiver.Complete(ctx, msg); err != nil {
			s.logger.Warn("Failed to complete skipped request", "message_id", msg.ID, slog.Any("error", err))
			continue
		}
		others = append(others, skipped{body: msg.Body, properties: msg.Properties})
	}
}

// Description returns the current description with message counts
func (s *Subscription) Description(ctx context.Context) (*transport.SubscriptionDescription, error) {
	return s.conn.broker.GetSubscription(ctx, s.desc.Topic, s.desc.Name)
}

func (s *Subscription) update(ctx context.Context, change func(*transport.SubscriptionDescription)) error {
	desc, err := s.Description(ctx)
	if err != nil {
		return err
	}
	change(desc)
	if err := s.conn.broker.UpdateSubscription(ctx, *desc); err != nil {
		return fmt.Errorf("failed to update subscription %s: %w", s.desc.Name, err)
	}
	return nil
}

// Activate enables receiving from the subscription
func (s *Subscription) Activate(ctx context.Context) error {
	return s.update(ctx, func(d *transport.SubscriptionDescription) {
		d.Status = transport.StatusActive
	})
}

// Disable stops receiving from the subscription; messages keep accumulating
func (s *Subscription) Disable(ctx context.Context) error {
	return s.update(ctx, func(d *transport.SubscriptionDescription) {
		d.Status = transport.StatusDisabled
	})
}

// SetLockDuration changes how long a received message stays locked
func (s *Subscription) SetLockDuration(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("lock duration must be positive, got %s", d)
	}
	return s.update(ctx, func(desc *transport.SubscriptionDescription) {
		desc.LockDuration = d
	})
}

// Length returns the number of active messages
func (s *Subscription) Length(ctx context.Context) (int64, error) {
	desc, err := s.Description(ctx)
	if err != nil {
		return 0, err
	}
	return desc.ActiveMessageCount, nil
}

// FlushDeadLetters removes and returns the dead-lettered messages
func (s *Subscription) FlushDeadLetters(ctx context.Context) ([]*transport.Message, error) {
	return s.conn.broker.DeadLetters(ctx, s.desc.Topic, s.desc.Name, true)
}

// Delete deletes the subscription and closes its receiver
func (s *Subscription) Delete(ctx context.Context) error {
	_ = s.receiver.Close()
	return s.conn.broker.DeleteSubscription(ctx, s.desc.Topic, s.desc.Name)
}

// Close closes the receiver
func (s *Subscription) Close() error {
	return s.receiver.Close()
}
